package user

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByProviderID(ctx context.Context, providerID string) (*User, error)
	Upsert(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id string, role Role) error
	UpdateRecentCities(ctx context.Context, id string, cities []string) error
	DeleteByProviderID(ctx context.Context, providerID string) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{pool: pool}
}

const userColumns = `
	u.id,
	u.provider_id,
	u.username,
	u.email,
	u.image,
	u.role,
	u.recent_searched_cities,
	u.created_at,
	u.updated_at
`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.ProviderID,
		&u.Username,
		&u.Email,
		&u.Image,
		&u.Role,
		&u.RecentSearchedCities,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errs.Wrap(err, "scan user failed")
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM public.users u WHERE u.id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxUserRepository) GetByProviderID(ctx context.Context, providerID string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM public.users u WHERE u.provider_id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, providerID))
}

// Upsert inserts the user or, when the provider id is already known, refreshes
// the profile fields the provider owns. Role and recent searches are local
// state and survive provider updates.
func (r *pgxUserRepository) Upsert(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (provider_id, username, email, image, role, recent_searched_cities)
		VALUES ($1, $2, $3, $4, $5, '{}')
		ON CONFLICT (provider_id) DO UPDATE
		SET username = EXCLUDED.username,
		    email = EXCLUDED.email,
		    image = EXCLUDED.image,
		    updated_at = now()
		RETURNING id, role, recent_searched_cities, created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		u.ProviderID,
		u.Username,
		u.Email,
		u.Image,
		u.Role,
	).Scan(&u.ID, &u.Role, &u.RecentSearchedCities, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return errs.Wrap(err, "upsert user failed")
	}

	return nil
}

func (r *pgxUserRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	const query = `UPDATE public.users SET role = $2, updated_at = now() WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return errs.Wrap(err, "update user role failed")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) UpdateRecentCities(ctx context.Context, id string, cities []string) error {
	const query = `UPDATE public.users SET recent_searched_cities = $2, updated_at = now() WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id, cities)
	if err != nil {
		return errs.Wrap(err, "update recent cities failed")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) DeleteByProviderID(ctx context.Context, providerID string) error {
	const query = `DELETE FROM public.users WHERE provider_id = $1`

	if _, err := r.pool.Exec(ctx, query, providerID); err != nil {
		return errs.Wrap(err, "delete user failed")
	}
	return nil
}

package hotel

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
)

// Repository defines methods for accessing hotel data from storage.
type Repository interface {
	Create(ctx context.Context, h *Hotel) error
	GetByID(ctx context.Context, id string) (*Hotel, error)
	GetByOwner(ctx context.Context, ownerID string) (*Hotel, error)
	List(ctx context.Context) ([]*Hotel, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, h *Hotel) error {
	const query = `
		INSERT INTO public.hotels (owner_id, name, address, city, contact, price_per_night)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		h.OwnerID,
		h.Name,
		h.Address,
		h.City,
		h.Contact,
		h.PricePerNight,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		var e *pgconn.PgError
		// owner_id carries a unique constraint: one hotel per owner.
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyRegistered
		}
		return errs.Wrap(err, "create hotel failed")
	}

	return nil
}

const hotelColumns = `
	h.id,
	h.owner_id,
	u.username,
	u.email,
	h.name,
	h.address,
	h.city,
	h.contact,
	h.price_per_night,
	h.created_at,
	h.updated_at
`

func scanHotel(row pgx.Row) (*Hotel, error) {
	var h Hotel
	if err := row.Scan(
		&h.ID,
		&h.OwnerID,
		&h.OwnerUsername,
		&h.OwnerEmail,
		&h.Name,
		&h.Address,
		&h.City,
		&h.Contact,
		&h.PricePerNight,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errs.Wrap(err, "scan hotel failed")
	}
	return &h, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hotel, error) {
	const query = `
		SELECT ` + hotelColumns + `
		FROM public.hotels h
		JOIN public.users u ON h.owner_id = u.id
		WHERE h.id = $1
	`
	return scanHotel(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByOwner(ctx context.Context, ownerID string) (*Hotel, error) {
	const query = `
		SELECT ` + hotelColumns + `
		FROM public.hotels h
		JOIN public.users u ON h.owner_id = u.id
		WHERE h.owner_id = $1
	`
	return scanHotel(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *pgxRepository) List(ctx context.Context) ([]*Hotel, error) {
	const query = `
		SELECT ` + hotelColumns + `
		FROM public.hotels h
		JOIN public.users u ON h.owner_id = u.id
		ORDER BY h.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrap(err, "list hotels failed")
	}
	defer rows.Close()

	var hotels []*Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}

	return hotels, rows.Err()
}

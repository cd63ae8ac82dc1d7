package room

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
)

// Filter narrows the public room listing.
type Filter struct {
	City          string
	OnlyAvailable bool
}

// Repository defines methods for accessing room data from storage.
type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, error)
	ListByHotel(ctx context.Context, hotelID string) ([]*Room, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var roomSelectColumns = []string{
	"r.id", "r.hotel_id", "h.name", "h.address", "h.city", "h.contact",
	"r.room_type", "r.price_per_night", "r.amenities", "r.images",
	"r.is_available", "r.created_at", "r.updated_at",
}

func scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.HotelID, &rm.HotelName, &rm.HotelAddress, &rm.HotelCity, &rm.HotelContact,
		&rm.RoomType, &rm.PricePerNight, &rm.Amenities, &rm.Images,
		&rm.IsAvailable, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errs.Wrap(err, "scan room failed")
	}
	return &rm, nil
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("hotel_id", "room_type", "price_per_night", "amenities", "images", "is_available").
		Values(rm.HotelID, rm.RoomType, rm.PricePerNight, rm.Amenities, rm.Images, true).
		Suffix("RETURNING id, is_available, created_at, updated_at").
		ToSql()
	if err != nil {
		return errs.Wrap(err, "build create room query failed")
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rm.ID, &rm.IsAvailable, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return errs.Wrap(err, "create room failed")
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomSelectColumns...).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build get room query failed")
	}

	return scanRoom(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(roomSelectColumns...).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id").
		OrderBy("r.created_at DESC")

	if filter.City != "" {
		query = query.Where(squirrel.Eq{"h.city": filter.City})
	}
	if filter.OnlyAvailable {
		query = query.Where(squirrel.Eq{"r.is_available": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build list rooms query failed")
	}

	return r.queryRooms(ctx, sql, args)
}

func (r *pgxRepository) ListByHotel(ctx context.Context, hotelID string) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(roomSelectColumns...).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id").
		Where(squirrel.Eq{"r.hotel_id": hotelID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build list hotel rooms query failed")
	}

	return r.queryRooms(ctx, sql, args)
}

func (r *pgxRepository) queryRooms(ctx context.Context, sql string, args []any) ([]*Room, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errs.Wrap(err, "query rooms failed")
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}

	return rooms, rows.Err()
}

func (r *pgxRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "build set availability query failed")
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return errs.Wrap(err, "set availability failed")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

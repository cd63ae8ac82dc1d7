package booking

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
)

type Repository interface {
	// HasOverlap reports whether any non-cancelled booking for the room
	// intersects [checkIn, checkOut). Back-to-back stays sharing a boundary
	// date do not overlap.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	// CreateIfAvailable inserts the booking only if the room is still free
	// for the requested dates. The check and the insert run in one
	// transaction holding a lock on the room row, so two concurrent requests
	// for overlapping dates cannot both succeed.
	CreateIfAvailable(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetForUser(ctx context.Context, userID, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	// MarkPaid records the payment and returns false without error when the
	// booking was already paid, so settlement callbacks are idempotent.
	MarkPaid(ctx context.Context, id, paymentIntentID string) (bool, error)
	SetCancelled(ctx context.Context, id string, paymentStatus PaymentStatus) error
	// ListByHotelSince returns the hotel's bookings created at or after
	// since, newest first. A nil since means no lower bound.
	ListByHotelSince(ctx context.Context, hotelID string, since *time.Time) ([]*Booking, error)
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var bookingSelectColumns = []string{
	"b.id",
	"b.user_id",
	"b.room_id",
	"r.room_type",
	"r.images",
	"b.hotel_id",
	"h.name",
	"h.address",
	"h.city",
	"b.check_in_date",
	"b.check_out_date",
	"b.guests",
	"b.total_price",
	"b.offer_applied",
	"b.applied_discount",
	"b.status",
	"b.payment_status",
	"COALESCE(b.payment_intent_id, '')",
	"b.booking_reference",
	"b.created_at",
	"b.updated_at",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.RoomID,
		&b.RoomType,
		&b.RoomImages,
		&b.HotelID,
		&b.HotelName,
		&b.HotelAddress,
		&b.HotelCity,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Guests,
		&b.TotalPrice,
		&b.OfferApplied,
		&b.AppliedDiscount,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentIntentID,
		&b.BookingReference,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) selectBookings() sq.SelectBuilder {
	return r.sb.Select(bookingSelectColumns...).
		From("public.bookings b").
		Join("public.rooms r ON r.id = b.room_id").
		Join("public.hotels h ON h.id = b.hotel_id")
}

func (r *repository) overlapQuery(roomID string, checkIn, checkOut time.Time) sq.SelectBuilder {
	return r.sb.Select("1").
		From("public.bookings").
		Where(sq.Eq{"room_id": roomID}).
		Where(sq.NotEq{"status": StatusCancelled}).
		Where(sq.Lt{"check_in_date": checkOut}).
		Where(sq.Gt{"check_out_date": checkIn}).
		Limit(1)
}

func (r *repository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	query, args, err := r.overlapQuery(roomID, checkIn, checkOut).ToSql()
	if err != nil {
		return false, errs.Wrap(err, "build overlap query")
	}
	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrap(err, "query booking overlap")
	}
	return true, nil
}

func (r *repository) CreateIfAvailable(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "begin create booking tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize creations per room. Concurrent requests for the same room
	// queue on this lock and see each other's committed bookings in the
	// overlap check below.
	var roomID string
	err = tx.QueryRow(ctx, "SELECT id FROM public.rooms WHERE id = $1 FOR UPDATE", b.RoomID).Scan(&roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return errs.Wrap(err, "lock room row")
	}

	query, args, err := r.overlapQuery(b.RoomID, b.CheckInDate, b.CheckOutDate).ToSql()
	if err != nil {
		return errs.Wrap(err, "build overlap query")
	}
	var one int
	err = tx.QueryRow(ctx, query, args...).Scan(&one)
	if err == nil {
		return ErrRoomBooked
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(err, "query booking overlap")
	}

	query, args, err = r.sb.Insert("public.bookings").
		Columns(
			"user_id", "room_id", "hotel_id",
			"check_in_date", "check_out_date", "guests",
			"total_price", "offer_applied", "applied_discount",
			"status", "payment_status", "booking_reference",
		).
		Values(
			b.UserID, b.RoomID, b.HotelID,
			b.CheckInDate, b.CheckOutDate, b.Guests,
			b.TotalPrice, b.OfferApplied, b.AppliedDiscount,
			b.Status, b.PaymentStatus, b.BookingReference,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return errs.Wrap(err, "build insert booking query")
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return errs.Wrap(err, "insert booking")
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "commit create booking tx")
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.selectBookings().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build get booking query")
	}
	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errs.Wrap(err, "query booking")
	}
	return b, nil
}

func (r *repository) GetForUser(ctx context.Context, userID, id string) (*Booking, error) {
	query, args, err := r.selectBookings().
		Where(sq.Eq{"b.id": id, "b.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build get user booking query")
	}
	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errs.Wrap(err, "query user booking")
	}
	return b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	query, args, err := r.selectBookings().
		Where(sq.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build list user bookings query")
	}
	return r.queryBookings(ctx, query, args)
}

func (r *repository) ListByHotelSince(ctx context.Context, hotelID string, since *time.Time) ([]*Booking, error) {
	builder := r.selectBookings().
		Where(sq.Eq{"b.hotel_id": hotelID}).
		OrderBy("b.created_at DESC")
	if since != nil {
		builder = builder.Where(sq.GtOrEq{"b.created_at": *since})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "build list hotel bookings query")
	}
	return r.queryBookings(ctx, query, args)
}

func (r *repository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(err, "query bookings")
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scan booking")
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate bookings")
	}
	return bookings, nil
}

func (r *repository) MarkPaid(ctx context.Context, id, paymentIntentID string) (bool, error) {
	query, args, err := r.sb.Update("public.bookings").
		Set("payment_status", PaymentPaid).
		Set("payment_intent_id", sq.Expr("NULLIF(?, '')", paymentIntentID)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"payment_status": PaymentPaid}).
		ToSql()
	if err != nil {
		return false, errs.Wrap(err, "build mark paid query")
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, errs.Wrap(err, "mark booking paid")
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Zero rows means either already paid or no such booking.
	var exists bool
	err = r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, errs.Wrap(err, "check booking exists")
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (r *repository) SetCancelled(ctx context.Context, id string, paymentStatus PaymentStatus) error {
	query, args, err := r.sb.Update("public.bookings").
		Set("status", StatusCancelled).
		Set("payment_status", paymentStatus).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "build cancel booking query")
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return errs.Wrap(err, "cancel booking")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

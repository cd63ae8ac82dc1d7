package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/notification"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

// Refunder issues a refund against a captured payment. Implemented by the
// payment provider; a failure here must not block cancellation.
type Refunder interface {
	Refund(ctx context.Context, paymentIntentID string) error
}

type CreateRequest struct {
	UserID       string
	RoomID       string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Guests       int
	// DiscountPercent is an optional promotional discount. The price itself
	// is always computed server-side from the room's nightly rate.
	DiscountPercent int
}

type Service interface {
	CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	ListForUser(ctx context.Context, userID string) ([]*Booking, error)
	GetForUser(ctx context.Context, userID, bookingID string) (*Booking, error)
	// Cancel marks the booking cancelled and, when it was paid, attempts a
	// refund. Cancellation succeeds even when the refund does not; the
	// payment status then records the pending refund for reconciliation.
	Cancel(ctx context.Context, userID, bookingID string) (*Booking, error)
	HotelRecords(ctx context.Context, ownerID string, window Window) (*Dashboard, error)
}

type service struct {
	repo     Repository
	rooms    room.Service
	hotels   hotel.Service
	refunder Refunder
	notifier notification.Publisher
	now      func() time.Time
}

func NewService(repo Repository, rooms room.Service, hotels hotel.Service, refunder Refunder, notifier notification.Publisher) Service {
	return &service{
		repo:     repo,
		rooms:    rooms,
		hotels:   hotels,
		refunder: refunder,
		notifier: notifier,
		now:      time.Now,
	}
}

func validateDates(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return ErrMissingFields
	}
	if !checkIn.Before(checkOut) {
		return ErrInvalidDateRange
	}
	return nil
}

func (s *service) CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	if roomID == "" {
		return false, ErrMissingFields
	}
	if err := validateDates(checkIn, checkOut); err != nil {
		return false, err
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return false, err
	}
	overlaps, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !overlaps, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.UserID == "" || req.RoomID == "" {
		return nil, ErrMissingFields
	}
	if err := validateDates(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}
	if req.Guests < 1 {
		return nil, ErrInvalidGuests
	}

	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	nights := Nights(req.CheckInDate, req.CheckOutDate)
	quote, err := CalculateQuote(rm.PricePerNight, nights, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	ref, err := NewBookingReference()
	if err != nil {
		return nil, errs.Wrap(err, "generate booking reference")
	}

	b := &Booking{
		UserID:           req.UserID,
		RoomID:           rm.ID,
		HotelID:          rm.HotelID,
		CheckInDate:      req.CheckInDate,
		CheckOutDate:     req.CheckOutDate,
		Guests:           req.Guests,
		TotalPrice:       quote.TotalPrice,
		OfferApplied:     quote.OfferApplied,
		AppliedDiscount:  quote.AppliedDiscount,
		Status:           StatusConfirmed,
		PaymentStatus:    PaymentUnpaid,
		BookingReference: ref,
	}
	if err := s.repo.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}
	// Re-read to pick up the room and hotel join fields.
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetForUser(ctx context.Context, userID, bookingID string) (*Booking, error) {
	return s.repo.GetForUser(ctx, userID, bookingID)
}

func (s *service) Cancel(ctx context.Context, userID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetForUser(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	paymentStatus := b.PaymentStatus
	refundPending := false
	if b.PaymentStatus == PaymentPaid {
		paymentStatus = PaymentRefundInitiated
		refundPending = true
		if b.PaymentIntentID != "" {
			if err := s.refunder.Refund(ctx, b.PaymentIntentID); err != nil {
				// The booking still cancels; the refund stays pending for a
				// later reconciliation run.
				slog.Error("refund failed, leaving payment status pending",
					"booking_id", b.ID, "error", err)
			} else {
				paymentStatus = PaymentRefunded
			}
		}
	}

	if err := s.repo.SetCancelled(ctx, b.ID, paymentStatus); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	b.PaymentStatus = paymentStatus

	if refundPending {
		s.notify(ctx, notification.KeyRefundInitiated, b)
	}
	return b, nil
}

func (s *service) notify(ctx context.Context, routingKey string, b *Booking) {
	err := s.notifier.Publish(ctx, routingKey, notification.BookingNotice{
		BookingID:        b.ID,
		BookingReference: b.BookingReference,
		UserID:           b.UserID,
		HotelName:        b.HotelName,
		RoomType:         b.RoomType,
		CheckInDate:      b.CheckInDate,
		CheckOutDate:     b.CheckOutDate,
		TotalPrice:       b.TotalPrice,
		PaymentStatus:    string(b.PaymentStatus),
	})
	if err != nil {
		slog.Error("publish booking notice failed",
			"routing_key", routingKey, "booking_id", b.ID, "error", err)
	}
}

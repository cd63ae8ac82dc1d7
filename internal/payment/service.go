package payment

import (
	"context"
	"log/slog"

	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/notification"
)

type Service interface {
	// InitiateCheckout creates a hosted checkout session for the caller's
	// booking and returns the page URL. origin is the frontend origin the
	// buyer is redirected back to.
	InitiateCheckout(ctx context.Context, userID, bookingID, origin string) (string, error)
	// HandleWebhook verifies and applies a settlement callback. Unknown
	// event types are acknowledged without effect.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// VerifyManual marks the caller's booking paid without a processor
	// callback, for settlements confirmed out of band.
	VerifyManual(ctx context.Context, userID, bookingID string) (*booking.Booking, error)
}

type service struct {
	bookings booking.Repository
	provider Provider
	notifier notification.Publisher
	currency string
}

func NewService(bookings booking.Repository, provider Provider, notifier notification.Publisher, currency string) Service {
	return &service{
		bookings: bookings,
		provider: provider,
		notifier: notifier,
		currency: currency,
	}
}

func (s *service) InitiateCheckout(ctx context.Context, userID, bookingID, origin string) (string, error) {
	if origin == "" {
		return "", ErrMissingOrigin
	}
	b, err := s.bookings.GetForUser(ctx, userID, bookingID)
	if err != nil {
		return "", err
	}
	if b.IsCancelled() {
		return "", ErrBookingCancelled
	}
	if b.PaymentStatus == booking.PaymentPaid {
		return "", ErrAlreadyPaid
	}

	session, err := s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		BookingID:   b.ID,
		ProductName: b.HotelName + " - " + b.RoomType,
		AmountMinor: b.TotalPrice * 100,
		Currency:    s.currency,
		SuccessURL:  origin + "/loader/my-bookings",
		CancelURL:   origin + "/my-bookings",
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.provider.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}
	if ev == nil || ev.BookingID == "" {
		return nil
	}
	return s.reconcile(ctx, ev.BookingID, ev.PaymentIntentID)
}

func (s *service) VerifyManual(ctx context.Context, userID, bookingID string) (*booking.Booking, error) {
	b, err := s.bookings.GetForUser(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.IsCancelled() {
		return nil, ErrBookingCancelled
	}
	if err := s.reconcile(ctx, b.ID, ""); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, b.ID)
}

// reconcile is the single paid-marking path shared by webhook and manual
// verification. Repeated calls for the same booking are no-ops, so duplicate
// webhook deliveries confirm at most once.
func (s *service) reconcile(ctx context.Context, bookingID, paymentIntentID string) error {
	updated, err := s.bookings.MarkPaid(ctx, bookingID, paymentIntentID)
	if err != nil {
		return err
	}
	if !updated {
		return nil
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	err = s.notifier.Publish(ctx, notification.KeyPaymentConfirmed, notification.BookingNotice{
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
		slog.Error("publish payment confirmation failed", "booking_id", b.ID, "error", err)
	}
	return nil
}

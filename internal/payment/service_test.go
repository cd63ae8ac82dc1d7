package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/notification"
)

type fakeBookings struct {
	bookings map[string]*booking.Booking
}

func (r *fakeBookings) HasOverlap(context.Context, string, time.Time, time.Time) (bool, error) {
	panic("not used")
}

func (r *fakeBookings) CreateIfAvailable(context.Context, *booking.Booking) error {
	panic("not used")
}

func (r *fakeBookings) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookings) GetForUser(_ context.Context, userID, id string) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, booking.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookings) ListByUser(context.Context, string) ([]*booking.Booking, error) {
	panic("not used")
}

func (r *fakeBookings) MarkPaid(_ context.Context, id, paymentIntentID string) (bool, error) {
	b, ok := r.bookings[id]
	if !ok {
		return false, booking.ErrNotFound
	}
	if b.PaymentStatus == booking.PaymentPaid {
		return false, nil
	}
	b.PaymentStatus = booking.PaymentPaid
	b.PaymentIntentID = paymentIntentID
	return true, nil
}

func (r *fakeBookings) SetCancelled(context.Context, string, booking.PaymentStatus) error {
	panic("not used")
}

func (r *fakeBookings) ListByHotelSince(context.Context, string, *time.Time) ([]*booking.Booking, error) {
	panic("not used")
}

type fakeProvider struct {
	sessions []CheckoutParams
	event    *WebhookEvent
	eventErr error
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, params CheckoutParams) (*CheckoutSession, error) {
	p.sessions = append(p.sessions, params)
	return &CheckoutSession{ID: "cs_1", URL: "https://checkout.test/cs_1"}, nil
}

func (p *fakeProvider) Refund(context.Context, string) error {
	return nil
}

func (p *fakeProvider) ParseWebhookEvent([]byte, string) (*WebhookEvent, error) {
	return p.event, p.eventErr
}

type fakeNotifier struct {
	published []notification.BookingNotice
}

func (f *fakeNotifier) Publish(_ context.Context, _ string, notice notification.BookingNotice) error {
	f.published = append(f.published, notice)
	return nil
}

func (f *fakeNotifier) Close() {}

func newTestService(bookings ...*booking.Booking) (*service, *fakeBookings, *fakeProvider, *fakeNotifier) {
	repo := &fakeBookings{bookings: map[string]*booking.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	provider := &fakeProvider{}
	notifier := &fakeNotifier{}
	svc := NewService(repo, provider, notifier, "usd").(*service)
	return svc, repo, provider, notifier
}

func unpaidBooking() *booking.Booking {
	return &booking.Booking{
		ID:               "bk-1",
		UserID:           "user-1",
		HotelName:        "Sea View",
		RoomType:         "Double",
		TotalPrice:       360,
		Status:           booking.StatusConfirmed,
		PaymentStatus:    booking.PaymentUnpaid,
		BookingReference: "BK-TEST00001",
	}
}

func TestInitiateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates session in minor units", func(t *testing.T) {
		svc, _, provider, _ := newTestService(unpaidBooking())

		url, err := svc.InitiateCheckout(ctx, "user-1", "bk-1", "https://quickstay.test")
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.test/cs_1", url)

		require.Len(t, provider.sessions, 1)
		p := provider.sessions[0]
		assert.Equal(t, int64(36000), p.AmountMinor)
		assert.Equal(t, "usd", p.Currency)
		assert.Equal(t, "Sea View - Double", p.ProductName)
		assert.Equal(t, "bk-1", p.BookingID)
		assert.Equal(t, "https://quickstay.test/loader/my-bookings", p.SuccessURL)
	})

	t.Run("requires an origin", func(t *testing.T) {
		svc, _, _, _ := newTestService(unpaidBooking())

		_, err := svc.InitiateCheckout(ctx, "user-1", "bk-1", "")
		assert.ErrorIs(t, err, ErrMissingOrigin)
	})

	t.Run("rejects foreign bookings", func(t *testing.T) {
		svc, _, _, _ := newTestService(unpaidBooking())

		_, err := svc.InitiateCheckout(ctx, "user-2", "bk-1", "https://quickstay.test")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("rejects cancelled and paid bookings", func(t *testing.T) {
		cancelled := unpaidBooking()
		cancelled.Status = booking.StatusCancelled
		svc, _, _, _ := newTestService(cancelled)
		_, err := svc.InitiateCheckout(ctx, "user-1", "bk-1", "https://quickstay.test")
		assert.ErrorIs(t, err, ErrBookingCancelled)

		paid := unpaidBooking()
		paid.PaymentStatus = booking.PaymentPaid
		svc, _, _, _ = newTestService(paid)
		_, err = svc.InitiateCheckout(ctx, "user-1", "bk-1", "https://quickstay.test")
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("marks paid and notifies once", func(t *testing.T) {
		svc, repo, provider, notifier := newTestService(unpaidBooking())
		provider.event = &WebhookEvent{BookingID: "bk-1", PaymentIntentID: "pi_123"}

		require.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))

		b := repo.bookings["bk-1"]
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus)
		assert.Equal(t, "pi_123", b.PaymentIntentID)
		require.Len(t, notifier.published, 1)
		assert.Equal(t, "bk-1", notifier.published[0].BookingID)

		// Duplicate delivery is acknowledged without a second notice.
		require.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))
		assert.Len(t, notifier.published, 1)
	})

	t.Run("ignores unrelated events", func(t *testing.T) {
		svc, repo, provider, notifier := newTestService(unpaidBooking())
		provider.event = nil

		require.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))
		assert.Equal(t, booking.PaymentUnpaid, repo.bookings["bk-1"].PaymentStatus)
		assert.Empty(t, notifier.published)
	})

	t.Run("propagates signature failures", func(t *testing.T) {
		svc, _, provider, _ := newTestService(unpaidBooking())
		provider.eventErr = ErrBadSignature

		err := svc.HandleWebhook(ctx, []byte("{}"), "bad")
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("unknown booking id surfaces", func(t *testing.T) {
		svc, _, provider, _ := newTestService()
		provider.event = &WebhookEvent{BookingID: "bk-missing", PaymentIntentID: "pi_1"}

		err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestVerifyManual(t *testing.T) {
	ctx := context.Background()

	t.Run("marks paid without intent", func(t *testing.T) {
		svc, repo, _, notifier := newTestService(unpaidBooking())

		b, err := svc.VerifyManual(ctx, "user-1", "bk-1")
		require.NoError(t, err)

		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus)
		assert.Empty(t, repo.bookings["bk-1"].PaymentIntentID)
		assert.Len(t, notifier.published, 1)
	})

	t.Run("repeat verification is a no-op", func(t *testing.T) {
		svc, _, _, notifier := newTestService(unpaidBooking())

		_, err := svc.VerifyManual(ctx, "user-1", "bk-1")
		require.NoError(t, err)
		_, err = svc.VerifyManual(ctx, "user-1", "bk-1")
		require.NoError(t, err)

		assert.Len(t, notifier.published, 1)
	})

	t.Run("rejects cancelled booking", func(t *testing.T) {
		cancelled := unpaidBooking()
		cancelled.Status = booking.StatusCancelled
		svc, _, _, _ := newTestService(cancelled)

		_, err := svc.VerifyManual(ctx, "user-1", "bk-1")
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})
}

package payment

import (
	"context"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrMissingOrigin    = apperror.Validation("missing origin header")
	ErrBookingCancelled = apperror.Conflict("cannot pay for a cancelled booking")
	ErrAlreadyPaid      = apperror.Conflict("booking already paid")
	ErrBadSignature     = apperror.Validation("invalid webhook signature")
)

// CheckoutParams describes a hosted checkout page for one booking. AmountMinor
// is the total in the currency's minor unit (cents for USD).
type CheckoutParams struct {
	BookingID   string
	ProductName string
	AmountMinor int64
	Currency    string
	SuccessURL  string
	CancelURL   string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent is a settlement callback reduced to what reconciliation needs.
// ParseWebhookEvent returns nil for event types the service does not act on.
type WebhookEvent struct {
	BookingID       string
	PaymentIntentID string
}

// Provider abstracts the payment processor. It also satisfies the booking
// package's Refunder interface.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	Refund(ctx context.Context, paymentIntentID string) error
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}

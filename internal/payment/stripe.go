package payment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/refund"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
)

// checkoutExpiry bounds how long an unpaid checkout link stays valid.
const checkoutExpiry = 30 * time.Minute

const metadataBookingID = "booking_id"

// StripeProvider implements Provider against Stripe's hosted checkout.
type StripeProvider struct {
	webhookSecret string
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		ExpiresAt:  stripe.Int64(time.Now().Add(checkoutExpiry).Unix()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{metadataBookingID: params.BookingID},
	}
	sessionParams.Context = ctx

	s, err := session.New(sessionParams)
	if err != nil {
		return nil, apperror.Upstream(err, "payment provider rejected the checkout session")
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProvider) Refund(ctx context.Context, paymentIntentID string) error {
	refundParams := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	refundParams.Context = ctx

	if _, err := refund.New(refundParams); err != nil {
		return apperror.Upstream(err, "payment provider rejected the refund")
	}
	return nil
}

func (p *StripeProvider) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, ErrBadSignature
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, errs.Wrap(err, "decode checkout session payload")
	}

	ev := &WebhookEvent{BookingID: s.Metadata[metadataBookingID]}
	if s.PaymentIntent != nil {
		ev.PaymentIntentID = s.PaymentIntent.ID
	}
	return ev, nil
}

package notification

import (
	"context"
	"log/slog"
	"time"
)

// Routing keys consumed by the external mail relay.
const (
	KeyPaymentConfirmed = "booking.payment_confirmed"
	KeyRefundInitiated  = "booking.refund_initiated"
)

// BookingNotice is the snapshot the mail relay needs to render a message.
// Delivery is fire-and-forget; booking operations never fail on it.
type BookingNotice struct {
	BookingID        string    `json:"bookingId"`
	BookingReference string    `json:"bookingReference"`
	UserID           string    `json:"userId"`
	HotelName        string    `json:"hotelName"`
	RoomType         string    `json:"roomType"`
	CheckInDate      time.Time `json:"checkInDate"`
	CheckOutDate     time.Time `json:"checkOutDate"`
	TotalPrice       int64     `json:"totalPrice"`
	PaymentStatus    string    `json:"paymentStatus"`
}

// Publisher delivers notices to the external mail relay.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, notice BookingNotice) error
	Close()
}

// LogPublisher is the fallback when no broker is configured: notices are
// logged and dropped.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, routingKey string, notice BookingNotice) error {
	slog.Info("notification dropped (no broker configured)",
		"routing_key", routingKey,
		"booking_id", notice.BookingID,
	)
	return nil
}

func (p *LogPublisher) Close() {}

package booking

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrRoomNotFound     = apperror.NotFound("room not found")
	ErrRoomBooked       = apperror.Conflict("room already booked")
	ErrAlreadyCancelled = apperror.Conflict("booking already cancelled")
	ErrMissingFields    = apperror.Validation("missing required fields")
	ErrInvalidDateRange = apperror.Validation("check-in date must be before check-out date")
	ErrInvalidGuests    = apperror.Validation("guests must be at least 1")
	ErrInvalidDiscount  = apperror.Validation("discount must be between 0 and 100")
	ErrInvalidWindow    = apperror.Validation("invalid range selector")
)

// Status is the booking lifecycle state. Confirmed is the only live state;
// Cancelled is terminal.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// PaymentStatus moves forward only:
// Unpaid -> Paid -> Refund Initiated -> Refunded.
type PaymentStatus string

const (
	PaymentUnpaid          PaymentStatus = "Unpaid"
	PaymentPaid            PaymentStatus = "Paid"
	PaymentRefundInitiated PaymentStatus = "Refund Initiated"
	PaymentRefunded        PaymentStatus = "Refunded"
)

// Booking is a single stay. Rows are never deleted; cancellation is a status
// transition. The hotel id is denormalized from the room for query efficiency.
type Booking struct {
	ID               string
	UserID           string
	RoomID           string
	RoomType         string
	RoomImages       []string
	HotelID          string
	HotelName        string
	HotelAddress     string
	HotelCity        string
	CheckInDate      time.Time
	CheckOutDate     time.Time
	Guests           int
	TotalPrice       int64
	OfferApplied     bool
	AppliedDiscount  int
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentIntentID  string // opaque reference from the payment processor
	BookingReference string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCancelled reports whether the booking reached its terminal state.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

package hotel

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.NotFound("no hotel found")
	ErrAlreadyRegistered = apperror.Conflict("you have already registered a hotel")
	ErrFieldsRequired    = apperror.Validation("all fields are required")
	ErrInvalidPrice      = apperror.Validation("price per night must be positive")
)

// Hotel is a property listed by an owner. One hotel per owner in this design.
type Hotel struct {
	ID            string
	OwnerID       string
	OwnerUsername string
	OwnerEmail    string
	Name          string
	Address       string
	City          string
	Contact       string
	PricePerNight int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

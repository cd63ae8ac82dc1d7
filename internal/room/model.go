package room

import (
	"net/http"
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("room not found")
	ErrHotelRequired  = apperror.NotFound("no hotel found, please register a hotel first")
	ErrImagesRequired = apperror.Validation("at least one image is required")
	ErrInvalidInput   = apperror.Validation("invalid room parameters")
	ErrNotRoomOwner   = apperror.New(http.StatusForbidden, "not authorized to update this room")
)

// Room is a bookable unit inside a hotel. IsAvailable is the owner-controlled
// listing toggle; whether a date range is free is a property of bookings, not
// of this flag.
type Room struct {
	ID            string
	HotelID       string
	HotelName     string
	HotelAddress  string
	HotelCity     string
	HotelContact  string
	RoomType      string
	PricePerNight int64
	Amenities     []string
	Images        []string
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

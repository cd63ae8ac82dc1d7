package http

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/booking"
	hotelHttp "github.com/quickstay/hotel-booking-backend/internal/hotel/http"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

const dateLayout = "2006-01-02"

var errInvalidDate = apperror.Validation("dates must be in YYYY-MM-DD format")

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return t, nil
}

type CheckAvailabilityRequest struct {
	Room         string `json:"room" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

type CreateBookingRequest struct {
	Room            string `json:"room" binding:"required"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	Guests          int    `json:"guests" binding:"required,min=1"`
	DiscountPercent int    `json:"appliedDiscount" binding:"omitempty,min=0,max=100"`
}

type RoomTag struct {
	ID       string   `json:"id"`
	RoomType string   `json:"roomType"`
	Images   []string `json:"images"`
}

type BookingResponse struct {
	ID               string             `json:"_id"`
	User             string             `json:"user"`
	Room             RoomTag            `json:"room"`
	Hotel            hotelHttp.HotelTag `json:"hotel"`
	CheckInDate      string             `json:"checkInDate"`
	CheckOutDate     string             `json:"checkOutDate"`
	Guests           int                `json:"guests"`
	TotalPrice       int64              `json:"totalPrice"`
	OfferApplied     bool               `json:"offerApplied"`
	AppliedDiscount  int                `json:"appliedDiscount"`
	Status           string             `json:"status"`
	PaymentStatus    string             `json:"paymentStatus"`
	BookingReference string             `json:"bookingReference"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:   b.ID,
		User: b.UserID,
		Room: RoomTag{
			ID:       b.RoomID,
			RoomType: b.RoomType,
			Images:   b.RoomImages,
		},
		Hotel: hotelHttp.HotelTag{
			ID:      b.HotelID,
			Name:    b.HotelName,
			Address: b.HotelAddress,
			City:    b.HotelCity,
		},
		CheckInDate:      b.CheckInDate.Format(dateLayout),
		CheckOutDate:     b.CheckOutDate.Format(dateLayout),
		Guests:           b.Guests,
		TotalPrice:       b.TotalPrice,
		OfferApplied:     b.OfferApplied,
		AppliedDiscount:  b.AppliedDiscount,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		BookingReference: b.BookingReference,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}

type StatsResponse struct {
	ConfirmedRate float64 `json:"confirmedRate"`
	CancelledRate float64 `json:"cancelledRate"`
}

type DashboardResponse struct {
	Bookings      []BookingResponse `json:"bookings"`
	TotalBookings int               `json:"totalBookings"`
	TotalRevenue  int64             `json:"totalRevenue"`
	Stats         StatsResponse     `json:"stats"`
}

func NewDashboardResponse(d *booking.Dashboard) DashboardResponse {
	return DashboardResponse{
		Bookings:      NewBookingResponses(d.Bookings),
		TotalBookings: d.TotalBookings,
		TotalRevenue:  d.TotalRevenue,
		Stats: StatsResponse{
			ConfirmedRate: d.Stats.ConfirmedRate,
			CancelledRate: d.Stats.CancelledRate,
		},
	}
}

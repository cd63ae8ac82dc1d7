package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// CheckAvailability is a read-only probe; a positive answer is not a hold on
// the room and may be stale by the time a booking request lands.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, booking.ErrMissingFields)
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), req.Room, checkIn, checkOut)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"isAvailable": available,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, booking.ErrMissingFields)
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:          auth.GetUserID(c),
		RoomID:          req.Room,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Guests:          req.Guests,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "booking created successfully",
		"booking": NewBookingResponse(b),
	})
}

func (h *Handler) ListUserBookings(c *gin.Context) {
	bookings, err := h.service.ListForUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": NewBookingResponses(bookings),
	})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetForUser(c.Request.Context(), auth.GetUserID(c), c.Param("bookingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": NewBookingResponse(b),
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	b, err := h.service.Cancel(c.Request.Context(), auth.GetUserID(c), c.Param("bookingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "booking cancelled successfully",
		"booking": NewBookingResponse(b),
	})
}

// HotelRecords serves the owner dashboard. The window is selected with the
// range query parameter: all (default), 7days or 30days.
func (h *Handler) HotelRecords(c *gin.Context) {
	window, err := booking.ParseWindow(c.Query("range"))
	if err != nil {
		response.Error(c, err)
		return
	}
	d, err := h.service.HotelRecords(c.Request.Context(), auth.GetUserID(c), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"dashboardData": NewDashboardResponse(d),
	})
}

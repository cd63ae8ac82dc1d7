package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/quickstay/hotel-booking-backend/internal/booking/http"
	"github.com/quickstay/hotel-booking-backend/internal/payment"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

type checkoutRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

func (h *Handler) StripePayment(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, booking.ErrMissingFields)
		return
	}

	url, err := h.service.InitiateCheckout(
		c.Request.Context(),
		auth.GetUserID(c),
		req.BookingID,
		c.GetHeader("Origin"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, booking.ErrMissingFields)
		return
	}

	b, err := h.service.VerifyManual(c.Request.Context(), auth.GetUserID(c), req.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "payment verified successfully",
		"booking": bookingHttp.NewBookingResponse(b),
	})
}

// StripeWebhook receives settlement callbacks. The raw body is required for
// signature verification, so this handler never binds JSON.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, payment.ErrBadSignature)
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

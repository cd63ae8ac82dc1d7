package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service hotel.Service
}

func NewHandler(service hotel.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, hotel.ErrFieldsRequired)
		return
	}

	created, err := h.service.Register(c.Request.Context(), hotel.RegisterRequest{
		OwnerID:       auth.GetUserID(c),
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Contact:       req.Contact,
		PricePerNight: req.PricePerNight,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "hotel registered successfully",
		"hotel":   NewHotelResponse(created),
	})
}

func (h *Handler) List(c *gin.Context) {
	hotels, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HotelResponse, len(hotels))
	for i, ht := range hotels {
		items[i] = NewHotelResponse(ht)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hotels": items})
}

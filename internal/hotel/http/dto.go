package http

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	userHttp "github.com/quickstay/hotel-booking-backend/internal/user/http"
)

type RegisterHotelRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	Contact       string `json:"contact" binding:"required"`
	PricePerNight int64  `json:"pricePerNight" binding:"required,gt=0"`
}

type HotelResponse struct {
	ID            string           `json:"_id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	Contact       string           `json:"contact"`
	PricePerNight int64            `json:"pricePerNight"`
	Owner         userHttp.UserTag `json:"owner"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func NewHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Address:       h.Address,
		City:          h.City,
		Contact:       h.Contact,
		PricePerNight: h.PricePerNight,
		Owner: userHttp.UserTag{
			ID:       h.OwnerID,
			Username: h.OwnerUsername,
			Email:    h.OwnerEmail,
		},
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// HotelTag holds minimal hotel info for embedding in other responses.
type HotelTag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

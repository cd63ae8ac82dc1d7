package http

import (
	"time"

	hotelHttp "github.com/quickstay/hotel-booking-backend/internal/hotel/http"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

type RoomResponse struct {
	ID            string             `json:"_id"`
	Hotel         hotelHttp.HotelTag `json:"hotel"`
	RoomType      string             `json:"roomType"`
	PricePerNight int64              `json:"pricePerNight"`
	Amenities     []string           `json:"amenities"`
	Images        []string           `json:"images"`
	IsAvailable   bool               `json:"isAvailable"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID: rm.ID,
		Hotel: hotelHttp.HotelTag{
			ID:      rm.HotelID,
			Name:    rm.HotelName,
			Address: rm.HotelAddress,
			City:    rm.HotelCity,
		},
		RoomType:      rm.RoomType,
		PricePerNight: rm.PricePerNight,
		Amenities:     rm.Amenities,
		Images:        rm.Images,
		IsAvailable:   rm.IsAvailable,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

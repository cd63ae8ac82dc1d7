package http

import (
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

type UserResponse struct {
	ID                   string   `json:"_id"`
	Username             string   `json:"username"`
	Email                string   `json:"email"`
	Image                string   `json:"image,omitempty"`
	Role                 string   `json:"role"`
	RecentSearchedCities []string `json:"recentSearchedCities"`
}

func NewUserResponse(u *user.User) UserResponse {
	cities := u.RecentSearchedCities
	if cities == nil {
		cities = []string{}
	}
	return UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		Image:                u.Image,
		Role:                 u.Role.String(),
		RecentSearchedCities: cities,
	}
}

// UserTag holds minimal user info for embedding in other responses.
type UserTag struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type StoreRecentSearchRequest struct {
	RecentSearchedCity string `json:"recentSearchedCity" binding:"required"`
}

package user

import (
	"net/http"
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrCityRequired     = apperror.Validation("city is required")
	ErrInvalidRole      = apperror.New(http.StatusBadRequest, "invalid role")
)

// Role is the closed set of roles a user can hold. Authorization decisions
// switch over it exhaustively; there is no free-form role string anywhere.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleHotelOwner Role = "hotel_owner"
	RoleAdmin      Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHotelOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageHotel reports whether the role grants access to owner-scoped
// hotel resources (rooms, dashboard records).
func (r Role) CanManageHotel() bool {
	switch r {
	case RoleHotelOwner, RoleAdmin:
		return true
	case RoleGuest:
		return false
	default:
		return false
	}
}

// maxRecentCities bounds the recent-search list stored per user.
const maxRecentCities = 3

// User mirrors an account at the external identity provider. Rows are synced
// through the provider webhook; this service never manages credentials.
type User struct {
	ID                   string // UUID
	ProviderID           string // opaque id at the identity provider
	Username             string
	Email                string
	Image                string
	Role                 Role
	RecentSearchedCities []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

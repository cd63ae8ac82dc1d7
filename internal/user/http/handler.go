package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

type Handler struct {
	service  user.Service
	verifier *auth.WebhookVerifier
}

func NewHandler(service user.Service, verifier *auth.WebhookVerifier) *Handler {
	return &Handler{
		service:  service,
		verifier: verifier,
	}
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": NewUserResponse(u)})
}

// StoreRecentSearch records a searched city on the user's profile.
func (h *Handler) StoreRecentSearch(c *gin.Context) {
	var req StoreRecentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, user.ErrCityRequired)
		return
	}

	cities, err := h.service.StoreRecentSearch(c.Request.Context(), auth.GetUserID(c), req.RecentSearchedCity)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recentSearchedCities": cities})
}

// providerEvent is the payload shape of the identity provider's user webhooks.
type providerEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// SyncWebhook receives user lifecycle events from the identity provider and
// mirrors them into the local users table. The raw body is signature-verified
// before any parsing.
func (h *Handler) SyncWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if err := h.verifier.Verify(
		c.GetHeader("svix-id"),
		c.GetHeader("svix-timestamp"),
		c.GetHeader("svix-signature"),
		body,
	); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	var event providerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
		return
	}

	ctx := c.Request.Context()

	switch event.Type {
	case "user.created", "user.updated":
		username := event.Data.Username
		if username == "" {
			username = joinName(event.Data.FirstName, event.Data.LastName)
		}
		var email string
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}

		u := &user.User{
			ProviderID: event.Data.ID,
			Username:   username,
			Email:      email,
			Image:      event.Data.ImageURL,
		}
		if err := h.service.SyncFromProvider(ctx, u); err != nil {
			response.Error(c, err)
			return
		}

	case "user.deleted":
		if err := h.service.RemoveFromProvider(ctx, event.Data.ID); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "processed"})
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

// AuthRequired validates the provider session token from
// Authorization: Bearer <token> and resolves it to a local user. The resolved
// id and role are stored on the gin context; downstream code receives caller
// identity as explicit parameters, never from globals.
func AuthRequired(verifier *TokenVerifier, users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := verifier.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		u, err := users.ResolveProviderID(c.Request.Context(), claims.Subject)
		if err != nil {
			// Valid token but no synced account yet.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unknown account",
			})
			return
		}

		c.Set(ctxUserID, u.ID)
		c.Set(ctxUserRole, u.Role)

		c.Next()
	}
}

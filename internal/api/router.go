package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quickstay/hotel-booking-backend/internal/app"
	"github.com/quickstay/hotel-booking-backend/internal/auth"
	bookingHttp "github.com/quickstay/hotel-booking-backend/internal/booking/http"
	hotelHttp "github.com/quickstay/hotel-booking-backend/internal/hotel/http"
	paymentHttp "github.com/quickstay/hotel-booking-backend/internal/payment/http"
	roomHttp "github.com/quickstay/hotel-booking-backend/internal/room/http"
	userHttp "github.com/quickstay/hotel-booking-backend/internal/user/http"
)

// NewRouter assembles middleware (CORS, Logger, Auth) and registers the
// routes of every module under /v1.
func NewRouter(c *app.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(c.Config.IsProduction(), c.Config.ProdOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"}
	r.Use(cors.New(corsConfig))

	// Uploaded room images are served straight from local storage.
	r.Static(c.Config.Storage.BaseURL, c.Media.BasePath())

	authMiddleware := auth.AuthRequired(c.TokenVerifier, c.Users)
	ownerMiddleware := RequireHotelOwner()

	userHandler := userHttp.NewHandler(c.Users, c.WebhookVerifier)
	hotelHandler := hotelHttp.NewHandler(c.Hotels)
	roomHandler := roomHttp.NewHandler(c.Rooms)
	bookingHandler := bookingHttp.NewHandler(c.Bookings)
	paymentHandler := paymentHttp.NewHandler(c.Payments)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		hotelHttp.RegisterRoutes(v1, hotelHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, ownerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, ownerMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware)
	}

	return r
}

func allowedOrigins(production bool, prodOrigins string) []string {
	if production {
		origins := []string{}
		for _, o := range strings.Split(prodOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins
	}
	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
}

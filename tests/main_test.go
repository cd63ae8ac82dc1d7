package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/api"
	"github.com/quickstay/hotel-booking-backend/internal/app"
	"github.com/quickstay/hotel-booking-backend/internal/config"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/room"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

var (
	testRouter    *gin.Engine
	testContainer *app.Container
)

func TestMain(m *testing.M) {
	// Attempt to load .env from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Println("TEST_DB_DSN not set, skipping integration tests")
		os.Exit(0)
	}

	uploads, err := os.MkdirTemp("", "quickstay-uploads-*")
	if err != nil {
		log.Fatalf("failed to create uploads dir: %v", err)
	}
	defer os.RemoveAll(uploads)

	cfg := &config.Config{
		AppEnv:   "dev",
		HTTPAddr: ":0",
		DB:       config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			SessionSecret:  "integration-test-secret",
			SessionTTL:     30 * time.Minute,
			WebhookMaxSkew: 5 * time.Minute,
		},
		Stripe:  config.StripeConfig{Currency: "usd"},
		Storage: config.StorageConfig{BasePath: uploads, BaseURL: "/uploads"},
		Log:     config.LogConfig{Level: "error"},
	}

	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	testContainer, err = app.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize test container: %v", err)
	}
	testRouter = api.NewRouter(testContainer)

	exitCode := m.Run()

	testContainer.Close()
	os.Exit(exitCode)
}

func clearTables() {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE public.bookings CASCADE",
		"TRUNCATE TABLE public.rooms CASCADE",
		"TRUNCATE TABLE public.hotels CASCADE",
		"TRUNCATE TABLE public.users CASCADE",
	}
	for _, q := range queries {
		if _, err := testContainer.Pool.Exec(ctx, q); err != nil {
			log.Printf("Failed to clean table: %v", err)
		}
	}
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, providerID, username, email string) *user.User {
	t.Helper()

	u := &user.User{
		ProviderID: providerID,
		Username:   username,
		Email:      email,
		Role:       user.RoleGuest,
	}
	err := testContainer.Users.SyncFromProvider(context.Background(), u)
	require.NoError(t, err, "Failed to create test user in DB")

	saved, err := testContainer.Users.ResolveProviderID(context.Background(), providerID)
	require.NoError(t, err, "Failed to fetch created user")
	return saved
}

func generateToken(t *testing.T, u *user.User) string {
	t.Helper()

	token, err := testContainer.TokenVerifier.Sign(u.ProviderID, u.Email)
	require.NoError(t, err, "Failed to sign test token")
	return token
}

// seedHotel registers a hotel for the owner directly through the service, so
// tests that only need a hotel skip the HTTP round trip.
func seedHotel(t *testing.T, ownerID string, pricePerNight int64) *hotel.Hotel {
	t.Helper()

	h, err := testContainer.Hotels.Register(context.Background(), hotel.RegisterRequest{
		OwnerID:       ownerID,
		Name:          "Sea View",
		Address:       "1 Shore Road",
		City:          "Lisbon",
		Contact:       "+351 000 000 000",
		PricePerNight: pricePerNight,
	})
	require.NoError(t, err, "Failed to seed hotel")
	return h
}

// seedRoom inserts a room row directly, bypassing image upload.
func seedRoom(t *testing.T, hotelID string, pricePerNight int64) *room.Room {
	t.Helper()

	rm := &room.Room{
		HotelID:       hotelID,
		RoomType:      "Double",
		PricePerNight: pricePerNight,
		Amenities:     []string{"WiFi"},
		Images:        []string{"/uploads/rooms/test.jpg"},
		IsAvailable:   true,
	}
	err := room.NewPgxRepository(testContainer.Pool).Create(context.Background(), rm)
	require.NoError(t, err, "Failed to seed room")
	return rm
}

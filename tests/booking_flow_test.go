package tests

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/quickstay/hotel-booking-backend/internal/booking/http"
)

type bookingEnvelope struct {
	Success bool                        `json:"success"`
	Booking bookingHttp.BookingResponse `json:"booking"`
}

func TestBookingFlow(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "prov-owner", "owner", "owner@flow.com")
	guest := createTestUser(t, "prov-guest", "guest", "guest@flow.com")
	ownerToken := generateToken(t, owner)
	guestToken := generateToken(t, guest)

	h := seedHotel(t, owner.ID, 100)
	rm := seedRoom(t, h.ID, 150)

	checkPayload := map[string]string{
		"room":         rm.ID,
		"checkInDate":  "2026-09-10",
		"checkOutDate": "2026-09-13",
	}

	t.Run("Check Availability: Free Room", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/check-availability", checkPayload, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			IsAvailable bool `json:"isAvailable"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAvailable)
	})

	var bookingID string

	t.Run("Create Booking: Success", func(t *testing.T) {
		payload := map[string]any{
			"room":            rm.ID,
			"checkInDate":     "2026-09-10",
			"checkOutDate":    "2026-09-13",
			"guests":          2,
			"appliedDiscount": 20,
		}
		w := executeRequest("POST", "/v1/bookings/book", payload, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp bookingEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		// 20% off 150 -> 120 per night for 3 nights.
		assert.Equal(t, int64(360), resp.Booking.TotalPrice)
		assert.Equal(t, "Confirmed", resp.Booking.Status)
		assert.Equal(t, "Unpaid", resp.Booking.PaymentStatus)
		assert.Regexp(t, `^BK-[0-9A-Z]{9}$`, resp.Booking.BookingReference)
		assert.Equal(t, rm.ID, resp.Booking.Room.ID)
		assert.Equal(t, h.ID, resp.Booking.Hotel.ID)

		bookingID = resp.Booking.ID
	})

	t.Run("Create Booking: Unauthorized", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/book", checkPayload, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Check Availability: Occupied Dates", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/check-availability", checkPayload, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			IsAvailable bool `json:"isAvailable"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsAvailable)
	})

	t.Run("Create Booking: Overlap Conflict", func(t *testing.T) {
		payload := map[string]any{
			"room":         rm.ID,
			"checkInDate":  "2026-09-12",
			"checkOutDate": "2026-09-14",
			"guests":       1,
		}
		w := executeRequest("POST", "/v1/bookings/book", payload, ownerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Create Booking: Back-To-Back Allowed", func(t *testing.T) {
		payload := map[string]any{
			"room":         rm.ID,
			"checkInDate":  "2026-09-13",
			"checkOutDate": "2026-09-14",
			"guests":       1,
		}
		w := executeRequest("POST", "/v1/bookings/book", payload, ownerToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("List User Bookings", func(t *testing.T) {
		w := executeRequest("GET", "/v1/bookings/user-bookings", nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Bookings []bookingHttp.BookingResponse `json:"bookings"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, bookingID, resp.Bookings[0].ID)
	})

	t.Run("Booking Details: Owner Of Booking Only", func(t *testing.T) {
		w := executeRequest("GET", "/v1/bookings/details/"+bookingID, nil, guestToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = executeRequest("GET", "/v1/bookings/details/"+bookingID, nil, ownerToken)
		assert.Equal(t, http.StatusNotFound, w.Code, "Other users must not see the booking")
	})

	t.Run("Verify Payment Manually", func(t *testing.T) {
		payload := map[string]string{"bookingId": bookingID}
		w := executeRequest("POST", "/v1/bookings/verify-payment", payload, guestToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Paid", resp.Booking.PaymentStatus)
	})

	t.Run("Cancel Booking", func(t *testing.T) {
		w := executeRequest("PATCH", "/v1/bookings/cancel/"+bookingID, nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Cancelled", resp.Booking.Status)
		// Paid manually, so there is no payment intent to refund against.
		assert.Equal(t, "Refund Initiated", resp.Booking.PaymentStatus)
	})

	t.Run("Cancel Booking: Already Cancelled", func(t *testing.T) {
		w := executeRequest("PATCH", "/v1/bookings/cancel/"+bookingID, nil, guestToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Check Availability: Freed By Cancellation", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/check-availability", checkPayload, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			IsAvailable bool `json:"isAvailable"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAvailable)
	})
}

func TestConcurrentBookingExclusivity(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "prov-owner-c", "owner", "owner@race.com")
	h := seedHotel(t, owner.ID, 100)
	rm := seedRoom(t, h.ID, 100)

	const attempts = 8
	tokens := make([]string, attempts)
	for i := range tokens {
		u := createTestUser(t, "prov-racer-"+string(rune('a'+i)), "racer", "racer"+string(rune('a'+i))+"@race.com")
		tokens[i] = generateToken(t, u)
	}

	payload := map[string]any{
		"room":         rm.ID,
		"checkInDate":  "2026-10-01",
		"checkOutDate": "2026-10-05",
		"guests":       1,
	}

	codes := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := executeRequest("POST", "/v1/bookings/book", payload, tokens[i])
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	assert.Equal(t, 1, created, "exactly one concurrent request may win the room")
	assert.Equal(t, attempts-1, conflicted, "all other requests must see a conflict")
}

package tests

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/user"
)

func mustResolve(t *testing.T, providerID string) *user.User {
	t.Helper()
	u, err := testContainer.Users.ResolveProviderID(t.Context(), providerID)
	require.NoError(t, err)
	return u
}

// executeWebhook posts a provider event with valid signature headers. The
// test container runs with an empty webhook secret, so the HMAC key is empty.
func executeWebhook(t *testing.T, payload string) *httptest.ResponseRecorder {
	t.Helper()

	msgID := "msg_test"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	mac := hmac.New(sha256.New, []byte{})
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, payload)
	signature := "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req, _ := http.NewRequest("POST", "/v1/auth/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", timestamp)
	req.Header.Set("svix-signature", signature)

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func TestUserSyncWebhook(t *testing.T) {
	clearTables()

	t.Run("user.created syncs a guest", func(t *testing.T) {
		w := executeWebhook(t, `{
			"type": "user.created",
			"data": {
				"id": "prov-sync-1",
				"first_name": "Ada",
				"last_name": "Lovelace",
				"image_url": "https://img.test/ada.png",
				"email_addresses": [{"email_address": "ada@sync.com"}]
			}
		}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		u, err := testContainer.Users.ResolveProviderID(t.Context(), "prov-sync-1")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", u.Username)
		assert.Equal(t, "ada@sync.com", u.Email)
		assert.Equal(t, "guest", u.Role.String())
	})

	t.Run("user.updated keeps the local role", func(t *testing.T) {
		require.NoError(t, testContainer.Users.PromoteToHotelOwner(t.Context(), mustResolve(t, "prov-sync-1").ID))

		w := executeWebhook(t, `{
			"type": "user.updated",
			"data": {
				"id": "prov-sync-1",
				"username": "ada",
				"email_addresses": [{"email_address": "ada@sync.com"}]
			}
		}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		u := mustResolve(t, "prov-sync-1")
		assert.Equal(t, "ada", u.Username)
		assert.Equal(t, "hotel_owner", u.Role.String())
	})

	t.Run("user.deleted removes the mirror", func(t *testing.T) {
		w := executeWebhook(t, `{"type": "user.deleted", "data": {"id": "prov-sync-1"}}`)
		require.Equal(t, http.StatusOK, w.Code)

		_, err := testContainer.Users.ResolveProviderID(t.Context(), "prov-sync-1")
		assert.Error(t, err)
	})

	t.Run("bad signature rejected", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/v1/auth/webhook",
			bytes.NewBufferString(`{"type":"user.created","data":{"id":"prov-forged"}}`))
		req.Header.Set("svix-id", "msg_forged")
		req.Header.Set("svix-timestamp", strconv.FormatInt(time.Now().Unix(), 10))
		req.Header.Set("svix-signature", "v1,Zm9yZ2Vk")

		w := httptest.NewRecorder()
		testRouter.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecentSearches(t *testing.T) {
	clearTables()

	guest := createTestUser(t, "prov-search", "guest", "guest@search.com")
	token := generateToken(t, guest)

	for _, city := range []string{"Lisbon", "Porto", "Madrid", "Paris"} {
		w := executeRequest("POST", "/v1/users/recent-search",
			map[string]string{"recentSearchedCity": city}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := executeRequest("GET", "/v1/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			RecentSearchedCities []string `json:"recentSearchedCities"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Paris", "Madrid", "Porto"}, resp.User.RecentSearchedCities)
}

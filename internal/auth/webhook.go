package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingWebhookHeaders = errors.New("missing webhook signature headers")
	ErrWebhookSignature      = errors.New("webhook signature verification failed")
	ErrWebhookTimestamp      = errors.New("webhook timestamp outside tolerance")
)

// WebhookVerifier checks the HMAC signature scheme the identity provider uses
// for its user-sync webhooks: the signed content is "<id>.<timestamp>.<body>",
// the secret is base64 after a "whsec_" prefix and the signature header holds
// space-separated "v1,<base64>" candidates.
type WebhookVerifier struct {
	secret  []byte
	maxSkew time.Duration
}

// NewWebhookVerifier creates a verifier from the configured secret.
func NewWebhookVerifier(secret string, maxSkew time.Duration) (*WebhookVerifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errors.New("invalid webhook secret encoding")
	}
	return &WebhookVerifier{secret: key, maxSkew: maxSkew}, nil
}

// Verify validates the signature headers against the raw request body.
func (v *WebhookVerifier) Verify(msgID, timestamp, signatureHeader string, body []byte) error {
	return v.verifyAt(msgID, timestamp, signatureHeader, body, time.Now())
}

func (v *WebhookVerifier) verifyAt(msgID, timestamp, signatureHeader string, body []byte, now time.Time) error {
	if msgID == "" || timestamp == "" || signatureHeader == "" {
		return ErrMissingWebhookHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrWebhookTimestamp
	}
	sent := time.Unix(ts, 0)
	if sent.Before(now.Add(-v.maxSkew)) || sent.After(now.Add(v.maxSkew)) {
		return ErrWebhookTimestamp
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, candidate := range strings.Fields(signatureHeader) {
		// Each candidate looks like "v1,<base64>"; only v1 is supported.
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1 {
			return nil
		}
	}

	return ErrWebhookSignature
}

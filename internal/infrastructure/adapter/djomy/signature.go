package djomy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

// apiKey builds the X-API-KEY header value: the client id followed by the
// hex HMAC-SHA256 of the client id keyed with the client secret.
func apiKey(clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(clientID))
	return clientID + ":" + hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature authenticates an inbound webhook payload against the
// X-Webhook-Signature header. The expected digest is HMAC-SHA256 over the raw
// payload bytes exactly as received (compact JSON, key order preserved),
// keyed with the client secret.
//
// A missing header and a mismatched digest both return ErrSignature so the
// caller cannot be used as an oracle for signature correctness. The digest
// comparison is constant-time.
func VerifyWebhookSignature(header string, payload []byte, clientSecret string) error {
	if header == "" {
		return errs.ErrSignature
	}

	// Strip the "v1:" style version prefix; without one the whole header
	// is treated as the digest.
	received := header
	if i := strings.IndexByte(header, ':'); i >= 0 {
		received = header[i+1:]
	}

	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(received), []byte(expected)) {
		return errs.ErrSignature
	}
	return nil
}

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sign computes the hex HMAC-SHA256 of a raw webhook body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a provider signature header against the raw body.
// Accepts the bare hex digest or a "sha256=<hex>" prefixed form; comparison
// is constant-time.
func VerifySignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	header = strings.TrimPrefix(strings.TrimSpace(header), "sha256=")

	expected := Sign(secret, body)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(header)))
}

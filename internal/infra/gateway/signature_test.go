//go:build unit

package gateway_test

import (
	"testing"

	"rifa-hub/internal/infra/gateway"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"id":"evt_001","data":{"status":"paid"}}`)

	tests := []struct {
		name   string
		secret string
		header string
		want   bool
	}{
		{"bare hex digest", secret, gateway.Sign(secret, body), true},
		{"sha256= prefixed", secret, "sha256=" + gateway.Sign(secret, body), true},
		{"surrounding whitespace", secret, "  " + gateway.Sign(secret, body), true},
		{"wrong secret", "other-secret", gateway.Sign(secret, body), false},
		{"tampered digest", secret, gateway.Sign(secret, []byte("tampered")), false},
		{"empty header", secret, "", false},
		{"empty secret", "", gateway.Sign(secret, body), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateway.VerifySignature(tt.secret, body, tt.header))
		})
	}
}

func TestVerifySignatureBodySensitivity(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"amount":100}`)
	sig := gateway.Sign(secret, body)

	assert.True(t, gateway.VerifySignature(secret, body, sig))
	assert.False(t, gateway.VerifySignature(secret, []byte(`{"amount":101}`), sig),
		"a single changed byte must invalidate the signature")
}

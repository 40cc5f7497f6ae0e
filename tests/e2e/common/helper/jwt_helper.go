//go:build e2e

package helper

import (
	"testing"
	"time"

	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// OrganizerToken signs a console access token with the suite's JWT config.
// There is no login endpoint; organizers get tokens out of band.
func OrganizerToken(t *testing.T, cfg config.JWTConfig, organizerID uuid.UUID) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.Duration)
	require.NoError(t, err)

	token, err := jwt.NewService(cfg.Secret, duration).GenerateToken(organizerID)
	require.NoError(t, err)
	return token
}

//go:build unit

package transaction_test

import (
	"testing"
	"time"

	"rifa-hub/internal/domain/transaction"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	testCases := []struct {
		name string
		from transaction.Status
		to   transaction.Status
		want bool
	}{
		{name: "pending to paid", from: transaction.StatusPending, to: transaction.StatusPaid, want: true},
		{name: "pending to cancelled", from: transaction.StatusPending, to: transaction.StatusCancelled, want: true},
		{name: "pending to expired", from: transaction.StatusPending, to: transaction.StatusExpired, want: true},
		{name: "pending to pending", from: transaction.StatusPending, to: transaction.StatusPending, want: false},
		{name: "paid never reverts to cancelled", from: transaction.StatusPaid, to: transaction.StatusCancelled, want: false},
		{name: "paid never reverts to pending", from: transaction.StatusPaid, to: transaction.StatusPending, want: false},
		{name: "expired stays expired", from: transaction.StatusExpired, to: transaction.StatusPaid, want: false},
		{name: "cancelled stays cancelled", from: transaction.StatusCancelled, to: transaction.StatusExpired, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, transaction.StatusPending.IsTerminal())
	assert.True(t, transaction.StatusPaid.IsTerminal())
	assert.True(t, transaction.StatusCancelled.IsTerminal())
	assert.True(t, transaction.StatusExpired.IsTerminal())
}

func TestNewTransaction(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	campaignID, buyerID := uuid.New(), uuid.New()

	t.Run("valid pending transaction", func(t *testing.T) {
		tr, err := transaction.New(
			campaignID, buyerID, []int{7, 13}, 1000,
			transaction.MethodPix, transaction.DestinationPlatform,
			now, now.Add(30*time.Minute),
		)
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusPending, tr.Status())
		assert.Equal(t, transaction.ProviderPlatformGateway, tr.Provider())
		assert.True(t, tr.IsPending())
		assert.False(t, tr.HasExpired(now))
		assert.True(t, tr.HasExpired(now.Add(31*time.Minute)))
		assert.False(t, tr.HasArtifact())
	})

	t.Run("organizer destination maps to organizer gateway", func(t *testing.T) {
		tr, err := transaction.New(
			campaignID, buyerID, []int{1}, 500,
			transaction.MethodPix, transaction.DestinationOrganizer,
			now, now.Add(30*time.Minute),
		)
		require.NoError(t, err)
		assert.Equal(t, transaction.ProviderOrganizerGateway, tr.Provider())
	})

	t.Run("rejects empty number set", func(t *testing.T) {
		_, err := transaction.New(
			campaignID, buyerID, nil, 500,
			transaction.MethodPix, transaction.DestinationOrganizer,
			now, now.Add(30*time.Minute),
		)
		assert.ErrorIs(t, err, transaction.ErrNoNumbers)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := transaction.New(
			campaignID, buyerID, []int{1}, 0,
			transaction.MethodPix, transaction.DestinationOrganizer,
			now, now.Add(30*time.Minute),
		)
		assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
	})

	t.Run("rejects expiry not after now", func(t *testing.T) {
		_, err := transaction.New(
			campaignID, buyerID, []int{1}, 500,
			transaction.MethodPix, transaction.DestinationOrganizer,
			now, now,
		)
		assert.ErrorIs(t, err, transaction.ErrInvalidExpiry)
	})
}

func TestHasExpiredOnlyWhilePending(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := transaction.Reconstruct(
		uuid.New(), uuid.New(), uuid.New(), []int{1}, 500,
		transaction.MethodPix, transaction.StatusPaid,
		transaction.ProviderPlatformGateway, transaction.DestinationPlatform,
		now.Add(-time.Hour), nil, nil, nil, nil, now.Add(-2*time.Hour), now,
	)

	// A settled transaction is never considered expired, no matter the clock.
	assert.False(t, tr.HasExpired(now))
}

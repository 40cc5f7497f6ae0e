//go:build unit

package campaign_test

import (
	"testing"

	"rifa-hub/internal/domain/campaign"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCampaign(t *testing.T, percent float64, goalCents, reservedCents int64) *campaign.Campaign {
	t.Helper()

	c, err := campaign.New(uuid.New(), "Rifa do bairro", 100, 500, nil, goalCents, percent)
	require.NoError(t, err)
	if reservedCents == 0 {
		return c
	}
	return campaign.Reconstruct(
		c.ID(), c.OrganizerID(), c.Title(), campaign.StatusActive,
		c.TotalNumbers(), c.UnitPriceCents(), nil,
		goalCents, reservedCents, 0, percent, 0,
		c.CreatedAt(), c.UpdatedAt(),
	)
}

func TestWantsPlatformShare(t *testing.T) {
	testCases := []struct {
		name     string
		percent  float64
		goal     int64
		reserved int64
		draw     float64
		want     bool
	}{
		{name: "draw under percent routes to platform", percent: 0.2, goal: 10000, reserved: 0, draw: 0.1, want: true},
		{name: "draw at percent routes to platform", percent: 0.2, goal: 10000, reserved: 0, draw: 0.2, want: true},
		{name: "draw above percent routes to organizer", percent: 0.2, goal: 10000, reserved: 0, draw: 0.21, want: false},
		{name: "goal already reserved short-circuits", percent: 1.0, goal: 10000, reserved: 10000, draw: 0.0, want: false},
		{name: "reservation above goal short-circuits", percent: 1.0, goal: 10000, reserved: 10500, draw: 0.0, want: false},
		{name: "zero percent never routes to platform", percent: 0, goal: 10000, reserved: 0, draw: 0.0000001, want: false},
		{name: "full percent always routes while goal open", percent: 1.0, goal: 10000, reserved: 9999, draw: 0.999999, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := buildCampaign(t, tc.percent, tc.goal, tc.reserved)
			assert.Equal(t, tc.want, c.WantsPlatformShare(tc.draw))
		})
	}
}

func TestWantsPlatformShare_ZeroGoal(t *testing.T) {
	// A zero goal means the platform never takes a cut, regardless of percent.
	c := buildCampaign(t, 0.5, 0, 0)
	assert.False(t, c.WantsPlatformShare(0.0))
}

func TestNewCampaignValidation(t *testing.T) {
	organizerID := uuid.New()

	testCases := []struct {
		name    string
		total   int
		price   int64
		percent float64
		goal    int64
		wantErr error
	}{
		{name: "valid", total: 100, price: 500, percent: 0.2, goal: 10000},
		{name: "zero numbers", total: 0, price: 500, percent: 0.2, goal: 10000, wantErr: campaign.ErrInvalidTotalNumbers},
		{name: "zero price", total: 100, price: 0, percent: 0.2, goal: 10000, wantErr: campaign.ErrInvalidUnitPrice},
		{name: "percent above one", total: 100, price: 500, percent: 1.1, goal: 10000, wantErr: campaign.ErrInvalidCommissionRate},
		{name: "negative percent", total: 100, price: 500, percent: -0.1, goal: 10000, wantErr: campaign.ErrInvalidCommissionRate},
		{name: "negative goal", total: 100, price: 500, percent: 0.2, goal: -1, wantErr: campaign.ErrNegativeCommissionGoal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := campaign.New(organizerID, "title", tc.total, tc.price, nil, tc.goal, tc.percent)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, campaign.StatusDraft, c.Status())
			assert.False(t, c.IsSellable())
		})
	}
}

func TestAmountFor(t *testing.T) {
	c := buildCampaign(t, 0.2, 10000, 0)
	assert.Equal(t, int64(1500), c.AmountFor(3))
	assert.Equal(t, int64(0), c.AmountFor(0))
}

//go:build unit

package commands_test

import (
	"context"
	"testing"

	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCampaign(t *testing.T) {
	t.Run("persists a valid draft", func(t *testing.T) {
		tx := newFakeTx()
		var created *campaign.Campaign
		tx.campaigns.createFn = func(_ context.Context, c *campaign.Campaign) error {
			created = c
			return nil
		}
		cmd := commands.NewCampaignCommands(&fakeUoW{tx: tx}, tx.campaigns)
		organizerID := uuid.New()

		id, err := cmd.Create(context.Background(), organizerID, commands.CreateCampaignInput{
			Title:               "Rifa do bairro",
			TotalNumbers:        500,
			UnitPriceCents:      1000,
			CommissionGoalCents: 50_000,
			CommissionPercent:   0.1,
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, created.ID(), id)
		assert.Equal(t, organizerID, created.OrganizerID())
		assert.Equal(t, campaign.StatusDraft, created.Status())
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		tx := newFakeTx()
		cmd := commands.NewCampaignCommands(&fakeUoW{tx: tx}, tx.campaigns)

		_, err := cmd.Create(context.Background(), uuid.New(), commands.CreateCampaignInput{
			Title:             "Rifa",
			TotalNumbers:      0,
			UnitPriceCents:    1000,
			CommissionPercent: 0.1,
		})

		assert.ErrorIs(t, err, commands.ErrValidation)
		assert.ErrorIs(t, err, campaign.ErrInvalidTotalNumbers)
	})
}

func TestPublishCampaign(t *testing.T) {
	organizerID := uuid.New()

	draft := func() *campaign.Campaign {
		c, err := campaign.New(organizerID, "Rifa", 250, 1000, nil, 0, 0)
		if err != nil {
			panic(err)
		}
		return c
	}

	t.Run("activates and seeds the inventory", func(t *testing.T) {
		tx := newFakeTx()
		camp := draft()
		tx.campaigns.findFn = func(context.Context, uuid.UUID) (*campaign.Campaign, error) {
			return camp, nil
		}
		cmd := commands.NewCampaignCommands(&fakeUoW{tx: tx}, tx.campaigns)

		err := cmd.Publish(context.Background(), organizerID, camp.ID())

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{camp.ID()}, tx.campaigns.activatedIDs)
		assert.Equal(t, 250, tx.tickets.bulkSize)
	})

	t.Run("refuses another organizer's campaign", func(t *testing.T) {
		tx := newFakeTx()
		camp := draft()
		tx.campaigns.findFn = func(context.Context, uuid.UUID) (*campaign.Campaign, error) {
			return camp, nil
		}
		cmd := commands.NewCampaignCommands(&fakeUoW{tx: tx}, tx.campaigns)

		err := cmd.Publish(context.Background(), uuid.New(), camp.ID())

		assert.ErrorIs(t, err, commands.ErrCampaignForbidden)
		assert.Empty(t, tx.campaigns.activatedIDs)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		tx := newFakeTx()
		tx.campaigns.findFn = func(context.Context, uuid.UUID) (*campaign.Campaign, error) {
			return nil, infra.WrapRepoErr("campaign not found", nil, infra.KindNotFound)
		}
		cmd := commands.NewCampaignCommands(&fakeUoW{tx: tx}, tx.campaigns)

		err := cmd.Publish(context.Background(), organizerID, uuid.New())

		assert.ErrorIs(t, err, commands.ErrCampaignNotFound)
	})
}

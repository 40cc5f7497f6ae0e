package commands

import (
	"context"

	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/pkg/errs"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrCampaignForbidden = errs.New("campaign belongs to another organizer")

type CreateCampaignInput struct {
	Title               string
	TotalNumbers        int
	UnitPriceCents      int64
	MaxPerBuyer         *int32
	CommissionGoalCents int64
	CommissionPercent   float64
}

type CampaignCommands interface {
	Create(ctx context.Context, organizerID uuid.UUID, in CreateCampaignInput) (uuid.UUID, error)
	// Publish flips a draft to active and seeds its full ticket inventory in
	// the same unit of work. Republishing is a no-op for existing numbers.
	Publish(ctx context.Context, organizerID, campaignID uuid.UUID) error
}

type campaignImpl struct {
	uow          shared.UnitOfWork
	campaignRepo shared.CampaignRepository
}

func NewCampaignCommands(uow shared.UnitOfWork, campaignRepo shared.CampaignRepository) CampaignCommands {
	return &campaignImpl{uow: uow, campaignRepo: campaignRepo}
}

func (c *campaignImpl) Create(ctx context.Context, organizerID uuid.UUID, in CreateCampaignInput) (uuid.UUID, error) {
	camp, err := campaign.New(
		organizerID, in.Title, in.TotalNumbers, in.UnitPriceCents,
		in.MaxPerBuyer, in.CommissionGoalCents, in.CommissionPercent,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	if err := c.campaignRepo.Create(ctx, camp); err != nil {
		return uuid.Nil, err
	}
	return camp.ID(), nil
}

func (c *campaignImpl) Publish(ctx context.Context, organizerID, campaignID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		camp, err := tx.Campaigns().Find(ctx, campaignID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		if camp.OrganizerID() != organizerID {
			return ErrCampaignForbidden
		}

		if err := tx.Campaigns().Activate(ctx, campaignID); err != nil {
			return err
		}

		_, err = tx.Tickets().BulkCreate(ctx, campaignID, camp.TotalNumbers())
		return err
	})
}

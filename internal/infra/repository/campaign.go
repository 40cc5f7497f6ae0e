package repository

import (
	"context"

	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CampaignRepository struct {
	dbtx db.DBTX
}

func NewCampaignRepository(dbtx db.DBTX) *CampaignRepository {
	return &CampaignRepository{dbtx: dbtx}
}

const campaignColumns = `
	id, organizer_id, title, status, total_numbers, unit_price_cents,
	max_per_buyer, commission_goal_cents, commission_reserved_cents,
	commission_paid_cents, commission_percent, total_raised_cents,
	created_at, updated_at`

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO campaigns (
			id, organizer_id, title, status, total_numbers, unit_price_cents,
			max_per_buyer, commission_goal_cents, commission_percent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID(), c.OrganizerID(), c.Title(), string(c.Status()),
		c.TotalNumbers(), c.UnitPriceCents(),
		pgconv.Int32PtrToPgtype(c.MaxPerBuyer()),
		c.CommissionGoalCents(), c.CommissionPercent())
	if err != nil {
		return infra.WrapRepoErr("failed to create campaign", err)
	}
	return nil
}

func (r *CampaignRepository) Find(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT`+campaignColumns+` FROM campaigns WHERE id = $1`, id)

	c, err := scanCampaign(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign", err)
	}
	return c, nil
}

func (r *CampaignRepository) TryReserveCommission(ctx context.Context, id uuid.UUID, amountCents int64) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE campaigns
		SET commission_reserved_cents = commission_reserved_cents + $2,
		    updated_at = now()
		WHERE id = $1
		  AND commission_reserved_cents < commission_goal_cents`,
		id, amountCents)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve commission", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CampaignRepository) ApplyPaidTotals(ctx context.Context, id uuid.UUID, amountCents int64, platformShare bool) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE campaigns
		SET total_raised_cents = total_raised_cents + $2,
		    commission_paid_cents = commission_paid_cents + CASE WHEN $3 THEN $2 ELSE 0 END,
		    updated_at = now()
		WHERE id = $1`,
		id, amountCents, platformShare)
	if err != nil {
		return infra.WrapRepoErr("failed to apply paid totals", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("campaign not found for totals update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CampaignRepository) Activate(ctx context.Context, id uuid.UUID) error {
	_, err := r.dbtx.Exec(ctx, `
		UPDATE campaigns
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		id, string(campaign.StatusActive), string(campaign.StatusDraft))
	if err != nil {
		return infra.WrapRepoErr("failed to activate campaign", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*campaign.Campaign, error) {
	var (
		id, organizerID          uuid.UUID
		title, status            string
		totalNumbers             int
		unitPriceCents           int64
		maxPerBuyer              pgtype.Int4
		goalCents, reservedCents int64
		paidCents                int64
		percent                  float64
		raisedCents              int64
		createdAt, updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &organizerID, &title, &status, &totalNumbers, &unitPriceCents,
		&maxPerBuyer, &goalCents, &reservedCents, &paidCents, &percent,
		&raisedCents, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return campaign.Reconstruct(
		id, organizerID, title, campaign.Status(status), totalNumbers,
		unitPriceCents, pgconv.Int32PtrFromPgtype(maxPerBuyer),
		goalCents, reservedCents, paidCents, percent, raisedCents,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

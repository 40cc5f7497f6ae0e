package readstore

import (
	"context"

	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/pkg/pgconv"
	"rifa-hub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CampaignReadStore struct {
	db db.DBTX
}

func NewCampaignReadStore(dbtx db.DBTX) *CampaignReadStore {
	return &CampaignReadStore{db: dbtx}
}

func (r *CampaignReadStore) FindPublicByID(ctx context.Context, id uuid.UUID) (*queries.CampaignView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT c.id, c.title, c.status, c.total_numbers, c.unit_price_cents,
		       c.max_per_buyer,
		       (SELECT count(*) FROM tickets t
		        WHERE t.campaign_id = c.id AND t.status = 'AVAILABLE'),
		       c.created_at
		FROM campaigns c
		WHERE c.id = $1`, id)

	var (
		v           queries.CampaignView
		maxPerBuyer pgtype.Int4
		created     pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Title, &v.Status, &v.TotalNumbers, &v.UnitPriceCents,
		&maxPerBuyer, &v.AvailableNumbers, &created,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign view", err)
	}

	v.MaxPerBuyer = pgconv.Int32PtrFromPgtype(maxPerBuyer)
	v.CreatedAt = pgconv.TimeFromPgtype(created)
	return &v, nil
}

func (r *CampaignReadStore) FindSummary(ctx context.Context, organizerID, id uuid.UUID) (*queries.CampaignSummary, error) {
	row := r.db.QueryRow(ctx, `
		SELECT c.id, c.title, c.status, c.total_numbers,
		       count(*) FILTER (WHERE t.status = 'AVAILABLE'),
		       count(*) FILTER (WHERE t.status = 'RESERVED'),
		       count(*) FILTER (WHERE t.status = 'PAID'),
		       c.total_raised_cents, c.commission_goal_cents,
		       c.commission_reserved_cents, c.commission_paid_cents
		FROM campaigns c
		LEFT JOIN tickets t ON t.campaign_id = c.id
		WHERE c.id = $1 AND c.organizer_id = $2
		GROUP BY c.id`, id, organizerID)

	var v queries.CampaignSummary
	err := row.Scan(
		&v.ID, &v.Title, &v.Status, &v.TotalNumbers,
		&v.AvailableCount, &v.ReservedCount, &v.PaidCount,
		&v.TotalRaisedCents, &v.CommissionGoalCents,
		&v.CommissionReservedCents, &v.CommissionPaidCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign summary", err)
	}
	return &v, nil
}

func (r *CampaignReadStore) ListNumberStates(ctx context.Context, id uuid.UUID) ([]queries.NumberState, error) {
	rows, err := r.db.Query(ctx, `
		SELECT number, status
		FROM tickets
		WHERE campaign_id = $1
		ORDER BY number`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ticket states", err)
	}
	defer rows.Close()

	var states []queries.NumberState
	for rows.Next() {
		var s queries.NumberState
		if err := rows.Scan(&s.Number, &s.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticket state", err)
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate ticket states", err)
	}
	return states, nil
}

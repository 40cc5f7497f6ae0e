package repository

import (
	"context"

	"rifa-hub/internal/domain/ticket"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"

	"github.com/google/uuid"
)

type TicketRepository struct {
	dbtx db.DBTX
}

func NewTicketRepository(dbtx db.DBTX) *TicketRepository {
	return &TicketRepository{dbtx: dbtx}
}

func (r *TicketRepository) BulkCreate(ctx context.Context, campaignID uuid.UUID, totalNumbers int) (int64, error) {
	tag, err := r.dbtx.Exec(ctx, `
		INSERT INTO tickets (campaign_id, number, status)
		SELECT $1, gs, $3
		FROM generate_series(1, $2) AS gs
		ON CONFLICT (campaign_id, number) DO NOTHING`,
		campaignID, totalNumbers, string(ticket.StatusAvailable))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to bulk create tickets", err)
	}
	return tag.RowsAffected(), nil
}

// ReserveAll is the all-or-nothing claim: a single conditional update that
// only touches rows still AVAILABLE. A row count short of the request means
// another buyer holds part of the set; the CONFLICT error makes the enclosing
// unit of work roll the partial claim back.
func (r *TicketRepository) ReserveAll(ctx context.Context, campaignID, buyerID uuid.UUID, numbers []int) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE tickets
		SET status = $4, buyer_id = $2, updated_at = now()
		WHERE campaign_id = $1
		  AND number = ANY($3)
		  AND status = $5`,
		campaignID, buyerID, toInt32s(numbers),
		string(ticket.StatusReserved), string(ticket.StatusAvailable))
	if err != nil {
		return infra.WrapRepoErr("failed to reserve tickets", err)
	}
	if tag.RowsAffected() != int64(len(numbers)) {
		return infra.WrapRepoErr("some requested numbers are not available", nil, infra.KindConflict)
	}
	return nil
}

func (r *TicketRepository) MarkPaid(ctx context.Context, campaignID uuid.UUID, numbers []int) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE tickets
		SET status = $3, updated_at = now()
		WHERE campaign_id = $1
		  AND number = ANY($2)
		  AND status = $4`,
		campaignID, toInt32s(numbers),
		string(ticket.StatusPaid), string(ticket.StatusReserved))
	if err != nil {
		return infra.WrapRepoErr("failed to mark tickets paid", err)
	}
	if tag.RowsAffected() != int64(len(numbers)) {
		return infra.WrapRepoErr("reserved numbers missing during payment confirmation", nil, infra.KindConflict)
	}
	return nil
}

func (r *TicketRepository) Release(ctx context.Context, campaignID uuid.UUID, numbers []int) error {
	_, err := r.dbtx.Exec(ctx, `
		UPDATE tickets
		SET status = $3, buyer_id = NULL, updated_at = now()
		WHERE campaign_id = $1
		  AND number = ANY($2)
		  AND status = $4`,
		campaignID, toInt32s(numbers),
		string(ticket.StatusAvailable), string(ticket.StatusReserved))
	if err != nil {
		return infra.WrapRepoErr("failed to release tickets", err)
	}
	return nil
}

func (r *TicketRepository) CountHeldByBuyer(ctx context.Context, campaignID, buyerID uuid.UUID) (int, error) {
	var count int
	err := r.dbtx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tickets
		WHERE campaign_id = $1
		  AND buyer_id = $2
		  AND status IN ($3, $4)`,
		campaignID, buyerID,
		string(ticket.StatusReserved), string(ticket.StatusPaid)).
		Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count buyer tickets", err)
	}
	return count, nil
}

func toInt32s(numbers []int) []int32 {
	out := make([]int32, len(numbers))
	for i, n := range numbers {
		out[i] = int32(n)
	}
	return out
}

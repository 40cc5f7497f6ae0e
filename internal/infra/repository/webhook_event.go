package repository

import (
	"context"

	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
)

type WebhookEventRepository struct {
	dbtx db.DBTX
}

func NewWebhookEventRepository(dbtx db.DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{dbtx: dbtx}
}

// TryInsert appends to the idempotency ledger. The primary key on id makes
// concurrent deliveries of the same event race to a single winner; the loser
// sees zero rows and treats the delivery as a replay. Rows are never updated
// or deleted.
func (r *WebhookEventRepository) TryInsert(ctx context.Context, id, provider, gatewayEventID, reportedStatus string) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		INSERT INTO webhook_events (id, provider, gateway_event_id, reported_status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		id, provider, gatewayEventID, reportedStatus)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record webhook event", err)
	}
	return tag.RowsAffected() == 1, nil
}

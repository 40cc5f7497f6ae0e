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

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(dbtx db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: dbtx}
}

func (r *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT t.id, t.campaign_id, c.title, b.name, b.whatsapp,
		       t.numbers, t.amount_cents, t.method, t.status,
		       t.qr_code, t.qr_code_url, t.expires_at, t.paid_at, t.created_at
		FROM transactions t
		JOIN campaigns c ON c.id = t.campaign_id
		JOIN buyers b ON b.id = t.buyer_id
		WHERE t.id = $1`, id)

	var (
		v       queries.TransactionView
		numbers []int32
		qrCode  pgtype.Text
		qrURL   pgtype.Text
		paidAt  pgtype.Timestamptz
		expires pgtype.Timestamptz
		created pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.CampaignID, &v.CampaignTitle, &v.BuyerName, &v.BuyerWhatsApp,
		&numbers, &v.AmountCents, &v.Method, &v.Status,
		&qrCode, &qrURL, &expires, &paidAt, &created,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction view", err)
	}

	v.Numbers = toInts(numbers)
	v.QRCode = pgconv.StringPtrFromPgtype(qrCode)
	v.QRCodeURL = pgconv.StringPtrFromPgtype(qrURL)
	v.ExpiresAt = pgconv.TimeFromPgtype(expires)
	v.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	v.CreatedAt = pgconv.TimeFromPgtype(created)
	return &v, nil
}

func (r *TransactionReadStore) FindStatus(ctx context.Context, id uuid.UUID) (*queries.TransactionStatusView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, status, expires_at, paid_at
		FROM transactions
		WHERE id = $1`, id)

	var (
		v       queries.TransactionStatusView
		expires pgtype.Timestamptz
		paidAt  pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.Status, &expires, &paidAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction status", err)
	}

	v.ExpiresAt = pgconv.TimeFromPgtype(expires)
	v.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	return &v, nil
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, n := range in {
		out[i] = int(n)
	}
	return out
}

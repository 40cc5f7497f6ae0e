package repository

import (
	"context"
	"time"

	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/pkg/pgconv"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TransactionRepository struct {
	dbtx db.DBTX
}

func NewTransactionRepository(dbtx db.DBTX) *TransactionRepository {
	return &TransactionRepository{dbtx: dbtx}
}

func (r *TransactionRepository) Create(ctx context.Context, tr *transaction.Transaction) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO transactions (
			id, campaign_id, buyer_id, numbers, amount_cents, method, status,
			provider, destination, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tr.ID(), tr.CampaignID(), tr.BuyerID(), toInt32s(tr.Numbers()),
		tr.AmountCents(), string(tr.Method()), string(tr.Status()),
		string(tr.Provider()), string(tr.Destination()), tr.ExpiresAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	return nil
}

func (r *TransactionRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	row := r.dbtx.QueryRow(ctx, `
		SELECT id, campaign_id, buyer_id, numbers, amount_cents, method, status,
		       provider, destination, expires_at, external_id, qr_code,
		       qr_code_url, paid_at, created_at, updated_at
		FROM transactions
		WHERE id = $1
		FOR UPDATE`, id)

	tr, err := scanTransaction(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock transaction", err)
	}
	return tr, nil
}

func (r *TransactionRepository) SetArtifact(ctx context.Context, id uuid.UUID, artifact transaction.PaymentArtifact) error {
	_, err := r.dbtx.Exec(ctx, `
		UPDATE transactions
		SET external_id = $2, qr_code = $3, qr_code_url = $4, updated_at = now()
		WHERE id = $1`,
		id, artifact.ExternalID, artifact.QRCode, artifact.QRCodeURL)
	if err != nil {
		return infra.WrapRepoErr("failed to store payment artifact", err)
	}
	return nil
}

func (r *TransactionRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	return r.finalize(ctx, `
		UPDATE transactions
		SET status = $3, paid_at = $2, updated_at = now()
		WHERE id = $1 AND status = $4`,
		id, paidAt, string(transaction.StatusPaid), string(transaction.StatusPending))
}

func (r *TransactionRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.finalize(ctx, `
		UPDATE transactions
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		id, string(transaction.StatusCancelled), string(transaction.StatusPending))
}

func (r *TransactionRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.finalize(ctx, `
		UPDATE transactions
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		id, string(transaction.StatusExpired), string(transaction.StatusPending))
}

func (r *TransactionRepository) finalize(ctx context.Context, sql string, args ...any) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, sql, args...)
	if err != nil {
		return false, infra.WrapRepoErr("failed to finalize transaction", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TransactionRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]shared.ExpiredPending, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT id, campaign_id, numbers
		FROM transactions
		WHERE status = $1 AND expires_at < $2
		ORDER BY expires_at
		LIMIT $3`,
		string(transaction.StatusPending), now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired transactions", err)
	}
	defer rows.Close()

	var out []shared.ExpiredPending
	for rows.Next() {
		var (
			item    shared.ExpiredPending
			numbers []int32
		)
		if err := rows.Scan(&item.ID, &item.CampaignID, &numbers); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired transaction", err)
		}
		item.Numbers = toInts(numbers)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired transactions", err)
	}
	return out, nil
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var (
		id, campaignID, buyerID       uuid.UUID
		numbers                       []int32
		amountCents                   int64
		method, status                string
		provider, destination         string
		expiresAt                     pgtype.Timestamptz
		externalID, qrCode, qrCodeURL pgtype.Text
		paidAt                        pgtype.Timestamptz
		createdAt, updatedAt          pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &campaignID, &buyerID, &numbers, &amountCents, &method, &status,
		&provider, &destination, &expiresAt, &externalID, &qrCode, &qrCodeURL,
		&paidAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return transaction.Reconstruct(
		id, campaignID, buyerID, toInts(numbers), amountCents,
		transaction.Method(method), transaction.Status(status),
		transaction.Provider(provider), transaction.Destination(destination),
		pgconv.TimeFromPgtype(expiresAt),
		pgconv.StringPtrFromPgtype(externalID),
		pgconv.StringPtrFromPgtype(qrCode),
		pgconv.StringPtrFromPgtype(qrCodeURL),
		pgconv.TimePtrFromPgtype(paidAt),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func toInts(numbers []int32) []int {
	out := make([]int, len(numbers))
	for i, n := range numbers {
		out[i] = int(n)
	}
	return out
}

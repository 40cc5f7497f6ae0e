package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type TransactionView struct {
	ID            uuid.UUID  `json:"id"`
	CampaignID    uuid.UUID  `json:"campaign_id"`
	CampaignTitle string     `json:"campaign_title"`
	BuyerName     string     `json:"buyer_name"`
	BuyerWhatsApp string     `json:"buyer_whatsapp"`
	Numbers       []int      `json:"numbers"`
	AmountCents   int64      `json:"amount_cents"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	QRCode        *string    `json:"qr_code,omitempty"`
	QRCodeURL     *string    `json:"qr_code_url,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TransactionStatusView struct {
	ID        uuid.UUID  `json:"id"`
	Status    string     `json:"status"`
	ExpiresAt time.Time  `json:"expires_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

type TransactionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	GetStatus(ctx context.Context, id uuid.UUID) (*TransactionStatusView, error)
}

type TransactionViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	FindStatus(ctx context.Context, id uuid.UUID) (*TransactionStatusView, error)
}

type transactionQueriesImpl struct {
	repo TransactionViewRepo
}

func NewTransactionQueries(repo TransactionViewRepo) TransactionQueries {
	return &transactionQueriesImpl{repo: repo}
}

func (q *transactionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *transactionQueriesImpl) GetStatus(ctx context.Context, id uuid.UUID) (*TransactionStatusView, error) {
	return q.repo.FindStatus(ctx, id)
}

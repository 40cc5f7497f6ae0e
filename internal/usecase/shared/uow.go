package shared

import (
	"context"
	"time"

	"rifa-hub/internal/domain/buyer"
	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Campaigns() CampaignRepository
	Organizers() OrganizerRepository
	Tickets() TicketRepository
	Buyers() BuyerRepository
	Transactions() TransactionRepository
	WebhookEvents() WebhookEventRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type CampaignRepository interface {
	Create(ctx context.Context, c *campaign.Campaign) error
	Find(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
	// TryReserveCommission atomically claims a slice of the commission goal:
	// the increment only applies while commission_reserved < commission_goal,
	// and the return value reports whether this sale won the claim.
	TryReserveCommission(ctx context.Context, id uuid.UUID, amountCents int64) (bool, error)
	// ApplyPaidTotals increments total_raised (and commission_paid when the
	// sale settled to the platform) in a single statement.
	ApplyPaidTotals(ctx context.Context, id uuid.UUID, amountCents int64, platformShare bool) error
	// Activate flips a draft campaign to active; no-op when already active.
	Activate(ctx context.Context, id uuid.UUID) error
}

type OrganizerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrganizerSnapshot, error)
}

type TicketRepository interface {
	// BulkCreate seeds numbers 1..totalNumbers for a published campaign.
	// Idempotent: numbers that already exist are left untouched.
	BulkCreate(ctx context.Context, campaignID uuid.UUID, totalNumbers int) (int64, error)
	// ReserveAll transitions every requested number AVAILABLE -> RESERVED for
	// the buyer, or fails with a CONFLICT-kind error touching nothing.
	ReserveAll(ctx context.Context, campaignID, buyerID uuid.UUID, numbers []int) error
	MarkPaid(ctx context.Context, campaignID uuid.UUID, numbers []int) error
	// Release returns numbers to the sellable pool, clearing the buyer.
	Release(ctx context.Context, campaignID uuid.UUID, numbers []int) error
	CountHeldByBuyer(ctx context.Context, campaignID, buyerID uuid.UUID) (int, error)
}

type BuyerRepository interface {
	// Upsert finds or creates the buyer identified by (campaign, whatsapp).
	Upsert(ctx context.Context, campaignID uuid.UUID, contact buyer.Contact) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BuyerSnapshot, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tr *transaction.Transaction) error
	// FindForUpdate locks the row for the remainder of the unit of work.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	SetArtifact(ctx context.Context, id uuid.UUID, artifact transaction.PaymentArtifact) error
	// The Mark* methods are status-guarded single statements; false means the
	// transaction was no longer PENDING and nothing changed.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]ExpiredPending, error)
}

type WebhookEventRepository interface {
	// TryInsert appends to the idempotency ledger. false means the event id
	// already exists and the delivery must be treated as a replay.
	TryInsert(ctx context.Context, id, provider, gatewayEventID, reportedStatus string) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	ClaimQueued(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkJobDone(ctx context.Context, jobID uuid.UUID) error
	MarkJobFailed(ctx context.Context, jobID uuid.UUID, lastError string) error
}

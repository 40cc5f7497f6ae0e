//go:build unit

package commands_test

import (
	"context"
	"time"

	"rifa-hub/internal/domain/buyer"
	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW runs the unit-of-work body against in-memory repositories, so
// command tests exercise the orchestration without a database. Rollback
// semantics are not emulated; tests assert on the error paths instead.
type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	campaigns     *fakeCampaignRepo
	organizers    *fakeOrganizerRepo
	tickets       *fakeTicketRepo
	buyers        *fakeBuyerRepo
	transactions  *fakeTransactionRepo
	webhookEvents *fakeWebhookEventRepo
	notifications *fakeNotificationRepo
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		campaigns:     &fakeCampaignRepo{},
		organizers:    &fakeOrganizerRepo{},
		tickets:       &fakeTicketRepo{},
		buyers:        &fakeBuyerRepo{},
		transactions:  &fakeTransactionRepo{},
		webhookEvents: &fakeWebhookEventRepo{},
		notifications: &fakeNotificationRepo{},
	}
}

func (t *fakeTx) Campaigns() shared.CampaignRepository         { return t.campaigns }
func (t *fakeTx) Organizers() shared.OrganizerRepository       { return t.organizers }
func (t *fakeTx) Tickets() shared.TicketRepository             { return t.tickets }
func (t *fakeTx) Buyers() shared.BuyerRepository               { return t.buyers }
func (t *fakeTx) Transactions() shared.TransactionRepository   { return t.transactions }
func (t *fakeTx) WebhookEvents() shared.WebhookEventRepository { return t.webhookEvents }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeCampaignRepo struct {
	createFn         func(ctx context.Context, c *campaign.Campaign) error
	findFn           func(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
	reserveFn        func(ctx context.Context, id uuid.UUID, amountCents int64) (bool, error)
	applyTotalsFn    func(ctx context.Context, id uuid.UUID, amountCents int64, platformShare bool) error
	activateFn       func(ctx context.Context, id uuid.UUID) error
	appliedTotals    []int64
	platformApplied  bool
	activatedIDs     []uuid.UUID
	reserveAttempted bool
}

func (r *fakeCampaignRepo) Create(ctx context.Context, c *campaign.Campaign) error {
	if r.createFn != nil {
		return r.createFn(ctx, c)
	}
	return nil
}

func (r *fakeCampaignRepo) Find(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	return r.findFn(ctx, id)
}

func (r *fakeCampaignRepo) TryReserveCommission(ctx context.Context, id uuid.UUID, amountCents int64) (bool, error) {
	r.reserveAttempted = true
	if r.reserveFn != nil {
		return r.reserveFn(ctx, id, amountCents)
	}
	return true, nil
}

func (r *fakeCampaignRepo) ApplyPaidTotals(ctx context.Context, id uuid.UUID, amountCents int64, platformShare bool) error {
	r.appliedTotals = append(r.appliedTotals, amountCents)
	r.platformApplied = platformShare
	if r.applyTotalsFn != nil {
		return r.applyTotalsFn(ctx, id, amountCents, platformShare)
	}
	return nil
}

func (r *fakeCampaignRepo) Activate(ctx context.Context, id uuid.UUID) error {
	r.activatedIDs = append(r.activatedIDs, id)
	if r.activateFn != nil {
		return r.activateFn(ctx, id)
	}
	return nil
}

type fakeOrganizerRepo struct {
	snapshot *shared.OrganizerSnapshot
	err      error
}

func (r *fakeOrganizerRepo) FindByID(context.Context, uuid.UUID) (*shared.OrganizerSnapshot, error) {
	return r.snapshot, r.err
}

type fakeTicketRepo struct {
	bulkCreateFn func(ctx context.Context, campaignID uuid.UUID, totalNumbers int) (int64, error)
	reserveAllFn func(ctx context.Context, campaignID, buyerID uuid.UUID, numbers []int) error
	markPaidFn   func(ctx context.Context, campaignID uuid.UUID, numbers []int) error
	releaseFn    func(ctx context.Context, campaignID uuid.UUID, numbers []int) error
	heldCount    int
	heldErr      error

	reserved []int
	paid     []int
	released []int
	bulkSize int
}

func (r *fakeTicketRepo) BulkCreate(ctx context.Context, campaignID uuid.UUID, totalNumbers int) (int64, error) {
	r.bulkSize = totalNumbers
	if r.bulkCreateFn != nil {
		return r.bulkCreateFn(ctx, campaignID, totalNumbers)
	}
	return int64(totalNumbers), nil
}

func (r *fakeTicketRepo) ReserveAll(ctx context.Context, campaignID, buyerID uuid.UUID, numbers []int) error {
	if r.reserveAllFn != nil {
		return r.reserveAllFn(ctx, campaignID, buyerID, numbers)
	}
	r.reserved = append(r.reserved, numbers...)
	return nil
}

func (r *fakeTicketRepo) MarkPaid(ctx context.Context, campaignID uuid.UUID, numbers []int) error {
	if r.markPaidFn != nil {
		return r.markPaidFn(ctx, campaignID, numbers)
	}
	r.paid = append(r.paid, numbers...)
	return nil
}

func (r *fakeTicketRepo) Release(ctx context.Context, campaignID uuid.UUID, numbers []int) error {
	if r.releaseFn != nil {
		return r.releaseFn(ctx, campaignID, numbers)
	}
	r.released = append(r.released, numbers...)
	return nil
}

func (r *fakeTicketRepo) CountHeldByBuyer(context.Context, uuid.UUID, uuid.UUID) (int, error) {
	return r.heldCount, r.heldErr
}

type fakeBuyerRepo struct {
	upsertID  uuid.UUID
	upsertErr error
	snapshot  *shared.BuyerSnapshot
	findErr   error
}

func (r *fakeBuyerRepo) Upsert(_ context.Context, _ uuid.UUID, contact buyer.Contact) (uuid.UUID, error) {
	if r.upsertID == uuid.Nil {
		r.upsertID = uuid.New()
	}
	if r.snapshot == nil {
		r.snapshot = &shared.BuyerSnapshot{
			ID:       r.upsertID,
			Name:     contact.Name(),
			WhatsApp: contact.WhatsApp(),
			Email:    contact.Email(),
		}
	}
	return r.upsertID, r.upsertErr
}

func (r *fakeBuyerRepo) FindByID(context.Context, uuid.UUID) (*shared.BuyerSnapshot, error) {
	return r.snapshot, r.findErr
}

type fakeTransactionRepo struct {
	createFn      func(ctx context.Context, tr *transaction.Transaction) error
	findFn        func(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	setArtifactFn func(ctx context.Context, id uuid.UUID, artifact transaction.PaymentArtifact) error
	markPaidOK    bool
	markCancelOK  bool
	markExpireOK  bool
	expired       []shared.ExpiredPending

	created      []*transaction.Transaction
	paidIDs      []uuid.UUID
	cancelledIDs []uuid.UUID
	expiredIDs   []uuid.UUID
	artifacts    map[uuid.UUID]transaction.PaymentArtifact
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tr *transaction.Transaction) error {
	if r.createFn != nil {
		return r.createFn(ctx, tr)
	}
	r.created = append(r.created, tr)
	return nil
}

func (r *fakeTransactionRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return r.findFn(ctx, id)
}

func (r *fakeTransactionRepo) SetArtifact(ctx context.Context, id uuid.UUID, artifact transaction.PaymentArtifact) error {
	if r.setArtifactFn != nil {
		return r.setArtifactFn(ctx, id, artifact)
	}
	if r.artifacts == nil {
		r.artifacts = make(map[uuid.UUID]transaction.PaymentArtifact)
	}
	r.artifacts[id] = artifact
	return nil
}

func (r *fakeTransactionRepo) MarkPaid(_ context.Context, id uuid.UUID, _ time.Time) (bool, error) {
	if r.markPaidOK {
		r.paidIDs = append(r.paidIDs, id)
	}
	return r.markPaidOK, nil
}

func (r *fakeTransactionRepo) MarkCancelled(_ context.Context, id uuid.UUID) (bool, error) {
	if r.markCancelOK {
		r.cancelledIDs = append(r.cancelledIDs, id)
	}
	return r.markCancelOK, nil
}

func (r *fakeTransactionRepo) MarkExpired(_ context.Context, id uuid.UUID) (bool, error) {
	if r.markExpireOK {
		r.expiredIDs = append(r.expiredIDs, id)
	}
	return r.markExpireOK, nil
}

func (r *fakeTransactionRepo) ListExpiredPending(context.Context, time.Time, int) ([]shared.ExpiredPending, error) {
	return r.expired, nil
}

type fakeWebhookEventRepo struct {
	inserted  bool
	insertErr error
	seenIDs   []string
}

func (r *fakeWebhookEventRepo) TryInsert(_ context.Context, id, _, _, _ string) (bool, error) {
	r.seenIDs = append(r.seenIDs, id)
	return r.inserted, r.insertErr
}

type fakeNotificationRepo struct {
	kinds   []string
	jobs    []string
	claimed []shared.NotificationJob
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, kind, topic string, _ []byte, _ time.Time) error {
	r.kinds = append(r.kinds, kind)
	r.jobs = append(r.jobs, topic)
	return nil
}

func (r *fakeNotificationRepo) ClaimQueued(context.Context, time.Time, int) ([]shared.NotificationJob, error) {
	return r.claimed, nil
}

func (r *fakeNotificationRepo) MarkJobDone(context.Context, uuid.UUID) error { return nil }
func (r *fakeNotificationRepo) MarkJobFailed(context.Context, uuid.UUID, string) error {
	return nil
}

type fakeGateway struct {
	artifact *transaction.PaymentArtifact
	err      error
	calls    []shared.CreateChargeInput
	creds    []shared.GatewayCredential
}

func (g *fakeGateway) CreateCharge(_ context.Context, cred shared.GatewayCredential, in shared.CreateChargeInput) (*transaction.PaymentArtifact, error) {
	g.calls = append(g.calls, in)
	g.creds = append(g.creds, cred)
	if g.err != nil {
		return nil, g.err
	}
	return g.artifact, nil
}

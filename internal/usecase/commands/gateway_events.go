package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/pkg/errs"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownTransaction = errs.New("webhook references an unknown transaction")
	ErrMalformedEvent     = errs.New("webhook payload is missing required fields")
)

// GatewayEvent is a provider-agnostic payment notification, already
// signature-verified by the transport layer.
type GatewayEvent struct {
	Provider       string // which webhook endpoint received it
	GatewayEventID string
	TransactionID  string // our id, echoed back as the charge reference
	ReportedStatus string
}

// EventOutcome tells the transport layer how the delivery was absorbed.
type EventOutcome string

const (
	OutcomeApplied EventOutcome = "applied" // state changed
	OutcomeReplay  EventOutcome = "replay"  // seen before, nothing done
	OutcomeStale   EventOutcome = "stale"   // transaction already terminal
	OutcomeIgnored EventOutcome = "ignored" // status we do not act on
)

type PaymentEventCommands interface {
	HandleGatewayEvent(ctx context.Context, ev GatewayEvent) (EventOutcome, error)
}

type paymentEventImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPaymentEventCommands(uow shared.UnitOfWork, clk clock.Clock) PaymentEventCommands {
	return &paymentEventImpl{uow: uow, clock: clk}
}

// EventLedgerID derives the idempotency key for a delivery. Keying on the
// (event id, status) pair lets a provider reuse one event id across status
// changes while still deduplicating true redeliveries.
func EventLedgerID(gatewayEventID, reportedStatus string) string {
	sum := sha256.Sum256([]byte(gatewayEventID + ":" + reportedStatus))
	return hex.EncodeToString(sum[:])
}

// HandleGatewayEvent applies one webhook delivery exactly once. The ledger
// insert and every resulting state change share a unit of work, so a replay
// observed after a crash mid-apply re-runs the whole delivery.
func (p *paymentEventImpl) HandleGatewayEvent(ctx context.Context, ev GatewayEvent) (EventOutcome, error) {
	if ev.GatewayEventID == "" || ev.TransactionID == "" || ev.ReportedStatus == "" {
		return "", ErrMalformedEvent
	}

	trID, err := uuid.Parse(ev.TransactionID)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "invalid transaction reference"), ErrMalformedEvent)
	}

	target, actionable := mapReportedStatus(ev.ReportedStatus)

	outcome := OutcomeApplied
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.WebhookEvents().TryInsert(ctx,
			EventLedgerID(ev.GatewayEventID, ev.ReportedStatus),
			ev.Provider, ev.GatewayEventID, ev.ReportedStatus)
		if err != nil {
			return err
		}
		if !inserted {
			outcome = OutcomeReplay
			return nil
		}

		if !actionable {
			outcome = OutcomeIgnored
			return nil
		}

		tr, err := tx.Transactions().FindForUpdate(ctx, trID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUnknownTransaction
			}
			return err
		}

		switch target {
		case transaction.StatusPaid:
			return p.applyPaid(ctx, tx, tr, &outcome)
		case transaction.StatusCancelled:
			return p.applyCancelled(ctx, tx, tr, &outcome)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (p *paymentEventImpl) applyPaid(ctx context.Context, tx shared.Tx, tr *transaction.Transaction, outcome *EventOutcome) error {
	if !tr.Status().CanTransitionTo(transaction.StatusPaid) {
		// Terminal statuses are final. A paid confirmation that lost the race
		// against expiry or cancellation is acknowledged as stale and logged
		// for reconciliation, never applied.
		if tr.Status() != transaction.StatusPaid {
			slog.Warn("paid confirmation arrived for a closed transaction",
				"transaction_id", tr.ID().String(),
				"local_status", string(tr.Status()))
		}
		*outcome = OutcomeStale
		return nil
	}

	changed, err := tx.Transactions().MarkPaid(ctx, tr.ID(), p.clock.Now())
	if err != nil {
		return err
	}
	if !changed {
		// The row-level status guard caught a transition committed after our
		// snapshot was loaded.
		*outcome = OutcomeStale
		return nil
	}

	if err := tx.Tickets().MarkPaid(ctx, tr.CampaignID(), tr.Numbers()); err != nil {
		return err
	}

	platformShare := tr.Destination() == transaction.DestinationPlatform
	if err := tx.Campaigns().ApplyPaidTotals(ctx, tr.CampaignID(), tr.AmountCents(), platformShare); err != nil {
		return err
	}

	if err := p.enqueueBuyerNotification(ctx, tx, tr, "payment_confirmed"); err != nil {
		return err
	}
	return p.enqueueOrganizerNotification(ctx, tx, tr)
}

func (p *paymentEventImpl) applyCancelled(ctx context.Context, tx shared.Tx, tr *transaction.Transaction, outcome *EventOutcome) error {
	if !tr.Status().CanTransitionTo(transaction.StatusCancelled) {
		*outcome = OutcomeStale
		return nil
	}

	changed, err := tx.Transactions().MarkCancelled(ctx, tr.ID())
	if err != nil {
		return err
	}
	if !changed {
		*outcome = OutcomeStale
		return nil
	}

	if err := tx.Tickets().Release(ctx, tr.CampaignID(), tr.Numbers()); err != nil {
		return err
	}
	return p.enqueueBuyerNotification(ctx, tx, tr, "payment_cancelled")
}

func (p *paymentEventImpl) enqueueBuyerNotification(ctx context.Context, tx shared.Tx, tr *transaction.Transaction, topic string) error {
	buyerSnap, err := tx.Buyers().FindByID(ctx, tr.BuyerID())
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]any{
		"transaction_id": tr.ID(),
		"contact":        buyerSnap.WhatsApp,
		"amount_cents":   tr.AmountCents(),
		"numbers":        tr.Numbers(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "whatsapp", topic, payload, p.clock.Now())
}

// Organizers follow settled sales in the console feed, so their job goes to
// the in-app channel rather than WhatsApp.
func (p *paymentEventImpl) enqueueOrganizerNotification(ctx context.Context, tx shared.Tx, tr *transaction.Transaction) error {
	camp, err := tx.Campaigns().Find(ctx, tr.CampaignID())
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]any{
		"transaction_id": tr.ID(),
		"organizer_id":   camp.OrganizerID(),
		"campaign_id":    tr.CampaignID(),
		"amount_cents":   tr.AmountCents(),
		"numbers":        tr.Numbers(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "in_app", "payment_confirmed", payload, p.clock.Now())
}

// mapReportedStatus folds the vocabulary the gateways actually send into our
// two actionable targets. Anything unrecognized is acknowledged and dropped.
func mapReportedStatus(reported string) (transaction.Status, bool) {
	switch strings.ToLower(strings.TrimSpace(reported)) {
	case "paid", "approved", "succeeded", "confirmed":
		return transaction.StatusPaid, true
	case "canceled", "cancelled", "rejected", "refused", "failed", "expired":
		return transaction.StatusCancelled, true
	default:
		return "", false
	}
}

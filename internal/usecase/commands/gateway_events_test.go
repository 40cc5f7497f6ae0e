//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/usecase/commands"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventEnv struct {
	tx    *fakeTx
	clock *clock.MockClock
	cmd   commands.PaymentEventCommands
}

func newEventEnv(t *testing.T) *eventEnv {
	t.Helper()

	tx := newFakeTx()
	tx.webhookEvents.inserted = true
	tx.buyers.snapshot = &shared.BuyerSnapshot{
		ID:       uuid.New(),
		Name:     "Maria Silva",
		WhatsApp: "5511987654321",
	}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	camp := campaign.Reconstruct(
		uuid.New(), uuid.New(), "Rifa do bairro", campaign.StatusActive,
		100, 1000, nil, 50_000, 0, 0, 0.1, 0, now, now,
	)
	tx.campaigns.findFn = func(context.Context, uuid.UUID) (*campaign.Campaign, error) {
		return camp, nil
	}
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC))
	return &eventEnv{
		tx:    tx,
		clock: clk,
		cmd:   commands.NewPaymentEventCommands(&fakeUoW{tx: tx}, clk),
	}
}

func reconstructTransaction(status transaction.Status, destination transaction.Destination) *transaction.Transaction {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return transaction.Reconstruct(
		uuid.New(), uuid.New(), uuid.New(),
		[]int{7, 13}, 2000,
		transaction.MethodPix, status,
		transaction.ProviderFor(destination), destination,
		base.Add(30*time.Minute), nil, nil, nil, nil, base, base,
	)
}

func paidEvent(trID uuid.UUID) commands.GatewayEvent {
	return commands.GatewayEvent{
		Provider:       "platform",
		GatewayEventID: "evt_001",
		TransactionID:  trID.String(),
		ReportedStatus: "paid",
	}
}

func TestEventLedgerID(t *testing.T) {
	a := commands.EventLedgerID("evt_001", "paid")
	b := commands.EventLedgerID("evt_001", "paid")
	c := commands.EventLedgerID("evt_001", "canceled")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "one event id may carry distinct status reports")
	assert.Len(t, a, 64)
}

func TestHandleGatewayEventPaid(t *testing.T) {
	env := newEventEnv(t)
	tr := reconstructTransaction(transaction.StatusPending, transaction.DestinationPlatform)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return tr, nil
	}
	env.tx.transactions.markPaidOK = true

	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), paidEvent(tr.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeApplied, outcome)
	assert.Equal(t, []int{7, 13}, env.tx.tickets.paid)
	assert.Equal(t, []int64{2000}, env.tx.campaigns.appliedTotals)
	assert.True(t, env.tx.campaigns.platformApplied)
	assert.Equal(t, []string{"payment_confirmed", "payment_confirmed"}, env.tx.notifications.jobs,
		"a settled sale notifies the buyer and the organizer")
	assert.Equal(t, []string{"whatsapp", "in_app"}, env.tx.notifications.kinds)
}

func TestHandleGatewayEventPaidOrganizerDestination(t *testing.T) {
	env := newEventEnv(t)
	tr := reconstructTransaction(transaction.StatusPending, transaction.DestinationOrganizer)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return tr, nil
	}
	env.tx.transactions.markPaidOK = true

	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), paidEvent(tr.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeApplied, outcome)
	assert.False(t, env.tx.campaigns.platformApplied, "organizer sales never count toward commission_paid")
}

func TestHandleGatewayEventReplay(t *testing.T) {
	env := newEventEnv(t)
	env.tx.webhookEvents.inserted = false
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		t.Fatal("a replayed delivery must not load the transaction")
		return nil, nil
	}

	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), paidEvent(uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeReplay, outcome)
	assert.Empty(t, env.tx.tickets.paid)
	assert.Empty(t, env.tx.notifications.jobs)
}

func TestHandleGatewayEventStaleOnTerminalTransaction(t *testing.T) {
	env := newEventEnv(t)
	tr := reconstructTransaction(transaction.StatusExpired, transaction.DestinationPlatform)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return tr, nil
	}
	env.tx.transactions.markPaidOK = false

	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), paidEvent(tr.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeStale, outcome)
	assert.Empty(t, env.tx.transactions.paidIDs, "terminal statuses never transition again")
	assert.Empty(t, env.tx.tickets.paid)
	assert.Empty(t, env.tx.campaigns.appliedTotals)
	assert.Empty(t, env.tx.notifications.jobs)
}

func TestHandleGatewayEventStaleOnRacedUpdate(t *testing.T) {
	env := newEventEnv(t)
	tr := reconstructTransaction(transaction.StatusPending, transaction.DestinationPlatform)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return tr, nil
	}
	env.tx.transactions.markPaidOK = false // row guard sees a concurrent transition

	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), paidEvent(tr.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeStale, outcome)
	assert.Empty(t, env.tx.tickets.paid)
	assert.Empty(t, env.tx.notifications.jobs)
}

func TestHandleGatewayEventCancelStaleOnPaidTransaction(t *testing.T) {
	env := newEventEnv(t)
	tr := reconstructTransaction(transaction.StatusPaid, transaction.DestinationPlatform)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return tr, nil
	}
	env.tx.transactions.markCancelOK = true // must not even be attempted

	ev := paidEvent(tr.ID())
	ev.ReportedStatus = "canceled"
	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), ev)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeStale, outcome)
	assert.Empty(t, env.tx.transactions.cancelledIDs)
	assert.Empty(t, env.tx.tickets.released)
}

func TestHandleGatewayEventCancelled(t *testing.T) {
	env := newEventEnv(t)
	tr := reconstructTransaction(transaction.StatusPending, transaction.DestinationOrganizer)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return tr, nil
	}
	env.tx.transactions.markCancelOK = true

	ev := paidEvent(tr.ID())
	ev.ReportedStatus = "rejected"
	outcome, err := env.cmd.HandleGatewayEvent(context.Background(), ev)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeApplied, outcome)
	assert.Equal(t, []int{7, 13}, env.tx.tickets.released)
	assert.Equal(t, []string{"payment_cancelled"}, env.tx.notifications.jobs)
	assert.Empty(t, env.tx.campaigns.appliedTotals)
}

func TestHandleGatewayEventIgnoredStatuses(t *testing.T) {
	for _, status := range []string{"processing", "created", "waiting_payment"} {
		t.Run(status, func(t *testing.T) {
			env := newEventEnv(t)
			ev := paidEvent(uuid.New())
			ev.ReportedStatus = status

			outcome, err := env.cmd.HandleGatewayEvent(context.Background(), ev)

			require.NoError(t, err)
			assert.Equal(t, commands.OutcomeIgnored, outcome)
			assert.Len(t, env.tx.webhookEvents.seenIDs, 1, "ignored deliveries still land in the ledger")
		})
	}
}

func TestHandleGatewayEventMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ev *commands.GatewayEvent)
	}{
		{"missing event id", func(ev *commands.GatewayEvent) { ev.GatewayEventID = "" }},
		{"missing transaction reference", func(ev *commands.GatewayEvent) { ev.TransactionID = "" }},
		{"missing status", func(ev *commands.GatewayEvent) { ev.ReportedStatus = "" }},
		{"non-uuid transaction reference", func(ev *commands.GatewayEvent) { ev.TransactionID = "charge-42" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEventEnv(t)
			ev := paidEvent(uuid.New())
			tt.mutate(&ev)

			_, err := env.cmd.HandleGatewayEvent(context.Background(), ev)

			assert.ErrorIs(t, err, commands.ErrMalformedEvent)
			assert.Empty(t, env.tx.webhookEvents.seenIDs)
		})
	}
}

func TestHandleGatewayEventUnknownTransaction(t *testing.T) {
	env := newEventEnv(t)
	env.tx.transactions.findFn = func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		return nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
	}

	_, err := env.cmd.HandleGatewayEvent(context.Background(), paidEvent(uuid.New()))

	assert.ErrorIs(t, err, commands.ErrUnknownTransaction)
}

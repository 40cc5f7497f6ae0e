package commands

import (
	"context"

	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExpiryCommands interface {
	// ExpireTransaction lazily closes one overdue reservation, typically
	// triggered by a status read. Returns true when this call did the close.
	ExpireTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error)
	// SweepExpired closes a batch of overdue reservations and reports how
	// many it transitioned.
	SweepExpired(ctx context.Context, batchSize int) (int, error)
}

type expiryImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExpiryCommands(uow shared.UnitOfWork, clk clock.Clock) ExpiryCommands {
	return &expiryImpl{uow: uow, clock: clk}
}

func (e *expiryImpl) ExpireTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	expired := false
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		tr, err := tx.Transactions().FindForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if !tr.HasExpired(e.clock.Now()) {
			return nil
		}

		// The status guard makes the expiry lose any race against a paid
		// webhook applied between the read and this update.
		changed, err := tx.Transactions().MarkExpired(ctx, tr.ID())
		if err != nil || !changed {
			return err
		}
		if err := tx.Tickets().Release(ctx, tr.CampaignID(), tr.Numbers()); err != nil {
			return err
		}
		expired = true
		return nil
	})
	return expired, err
}

func (e *expiryImpl) SweepExpired(ctx context.Context, batchSize int) (int, error) {
	now := e.clock.Now()

	swept := 0
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		overdue, err := tx.Transactions().ListExpiredPending(ctx, now, batchSize)
		if err != nil {
			return err
		}

		for _, tr := range overdue {
			changed, err := tx.Transactions().MarkExpired(ctx, tr.ID)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}
			if err := tx.Tickets().Release(ctx, tr.CampaignID, tr.Numbers); err != nil {
				return err
			}
			swept++
		}
		return nil
	})
	return swept, err
}

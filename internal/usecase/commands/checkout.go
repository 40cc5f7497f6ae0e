package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"rifa-hub/internal/domain/buyer"
	"rifa-hub/internal/domain/campaign"
	"rifa-hub/internal/domain/ticket"
	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/pkg/errs"
	"rifa-hub/internal/pkg/rng"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCampaignNotFound    = errs.New("campaign not found")
	ErrCampaignNotSellable = errs.New("campaign is not accepting purchases")
	ErrValidation          = errs.New("checkout validation failed")
	ErrBuyerLimitReached   = errs.New("per-buyer ticket limit reached")
	ErrInventoryConflict   = errs.New("requested numbers are no longer available")
	ErrUnsupportedMethod   = errs.New("payment method not supported")
	ErrOrganizerNotPayable = errs.New("organizer has no gateway credential configured")
	ErrTransactionNotFound = errs.New("transaction not found")
	ErrArtifactUnavailable = errs.New("payment artifact cannot be generated")
)

type CheckoutInput struct {
	BuyerName     string
	BuyerWhatsApp string
	BuyerEmail    *string
	Numbers       []int
	Method        string
}

type CheckoutResult struct {
	TransactionID uuid.UUID
	AmountCents   int64
	ExpiresAt     time.Time
	Destination   transaction.Destination
	// Artifact is nil when the post-commit gateway call failed; the
	// reservation stands and the details endpoint regenerates it.
	Artifact *transaction.PaymentArtifact
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, campaignID uuid.UUID, in CheckoutInput) (*CheckoutResult, error)
	RegenerateArtifact(ctx context.Context, transactionID uuid.UUID) (*transaction.PaymentArtifact, error)
}

type checkoutImpl struct {
	uow             shared.UnitOfWork
	transactionRepo shared.TransactionRepository
	gateway         shared.PixGateway
	platformCred    shared.GatewayCredential
	reservationTTL  time.Duration
	clock           clock.Clock
	rng             rng.Source
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	transactionRepo shared.TransactionRepository,
	gateway shared.PixGateway,
	gatewayCfg config.GatewayConfig,
	checkoutCfg config.CheckoutConfig,
	clk clock.Clock,
	draw rng.Source,
) CheckoutCommands {
	return &checkoutImpl{
		uow:             uow,
		transactionRepo: transactionRepo,
		gateway:         gateway,
		platformCred:    shared.GatewayCredential{APIKey: gatewayCfg.PlatformAPIKey},
		reservationTTL:  checkoutCfg.ReservationTTL,
		clock:           clk,
		rng:             draw,
	}
}

// Checkout runs the purchase path inside one unit of work: validate,
// find-or-create the buyer, claim the numbers, route the commission
// destination and create the PENDING transaction. The PIX artifact is then
// requested from the gateway as a best-effort second step.
func (c *checkoutImpl) Checkout(ctx context.Context, campaignID uuid.UUID, in CheckoutInput) (*CheckoutResult, error) {
	if !strings.EqualFold(in.Method, string(transaction.MethodPix)) {
		return nil, ErrUnsupportedMethod
	}

	contact, err := buyer.NewContact(in.BuyerName, in.BuyerWhatsApp, in.BuyerEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var (
		tr        *transaction.Transaction
		organizer *shared.OrganizerSnapshot
	)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		camp, err := tx.Campaigns().Find(ctx, campaignID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		if !camp.IsSellable() {
			return errs.Mark(campaign.ErrNotSellable, ErrCampaignNotSellable)
		}

		if err := ticket.ValidateSelection(in.Numbers, camp.TotalNumbers()); err != nil {
			return errs.Mark(err, ErrValidation)
		}

		organizer, err = tx.Organizers().FindByID(ctx, camp.OrganizerID())
		if err != nil {
			return err
		}

		buyerID, err := tx.Buyers().Upsert(ctx, campaignID, contact)
		if err != nil {
			return err
		}

		if limit := camp.MaxPerBuyer(); limit != nil {
			held, err := tx.Tickets().CountHeldByBuyer(ctx, campaignID, buyerID)
			if err != nil {
				return err
			}
			if held+len(in.Numbers) > int(*limit) {
				return ErrBuyerLimitReached
			}
		}

		if err := tx.Tickets().ReserveAll(ctx, campaignID, buyerID, in.Numbers); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInventoryConflict
			}
			return err
		}

		amount := camp.AmountFor(len(in.Numbers))

		destination := transaction.DestinationOrganizer
		if camp.WantsPlatformShare(c.rng.Float64()) {
			won, err := tx.Campaigns().TryReserveCommission(ctx, campaignID, amount)
			if err != nil {
				return err
			}
			if won {
				destination = transaction.DestinationPlatform
			}
		}

		if destination == transaction.DestinationOrganizer && !organizer.Payable() {
			return ErrOrganizerNotPayable
		}

		now := c.clock.Now()
		tr, err = transaction.New(
			campaignID, buyerID, in.Numbers, amount,
			transaction.MethodPix, destination,
			now, now.Add(c.reservationTTL),
		)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		if err := tx.Transactions().Create(ctx, tr); err != nil {
			return err
		}

		return c.enqueueCheckoutNotification(ctx, tx, tr, contact, camp.Title(), now)
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		TransactionID: tr.ID(),
		AmountCents:   tr.AmountCents(),
		ExpiresAt:     tr.ExpiresAt(),
		Destination:   tr.Destination(),
	}

	// Second step, after the reservation is committed. A gateway failure here
	// never rolls the reservation back; the artifact is regenerated on the
	// next details read.
	artifact, err := c.createCharge(ctx, tr, contact.Name(), contact.WhatsApp(), contact.Email(), organizer)
	if err != nil {
		slog.Warn("pix charge creation failed after checkout; artifact deferred",
			"transaction_id", tr.ID().String(),
			"error", err.Error())
		return result, nil
	}

	result.Artifact = artifact
	return result, nil
}

// RegenerateArtifact retries PIX artifact generation for a still-pending
// transaction, idempotently keyed by the transaction id.
func (c *checkoutImpl) RegenerateArtifact(ctx context.Context, transactionID uuid.UUID) (*transaction.PaymentArtifact, error) {
	var (
		tr        *transaction.Transaction
		buyerSnap *shared.BuyerSnapshot
		organizer *shared.OrganizerSnapshot
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		tr, err = tx.Transactions().FindForUpdate(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if !tr.IsPending() || tr.HasExpired(c.clock.Now()) {
			return ErrArtifactUnavailable
		}
		if tr.HasArtifact() {
			return nil
		}

		buyerSnap, err = tx.Buyers().FindByID(ctx, tr.BuyerID())
		if err != nil {
			return err
		}

		camp, err := tx.Campaigns().Find(ctx, tr.CampaignID())
		if err != nil {
			return err
		}
		organizer, err = tx.Organizers().FindByID(ctx, camp.OrganizerID())
		return err
	})
	if err != nil {
		return nil, err
	}

	if tr.HasArtifact() {
		return &transaction.PaymentArtifact{
			ExternalID: *tr.ExternalID(),
			QRCode:     *tr.QRCode(),
			QRCodeURL:  derefOrEmpty(tr.QRCodeURL()),
		}, nil
	}

	artifact, err := c.createCharge(ctx, tr, buyerSnap.Name, buyerSnap.WhatsApp, buyerSnap.Email, organizer)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// createCharge calls the gateway outside any database transaction and
// persists the artifact best-effort.
func (c *checkoutImpl) createCharge(
	ctx context.Context,
	tr *transaction.Transaction,
	buyerName, buyerWhatsApp string,
	buyerEmail *string,
	organizer *shared.OrganizerSnapshot,
) (*transaction.PaymentArtifact, error) {
	cred := c.platformCred
	if tr.Provider() == transaction.ProviderOrganizerGateway {
		cred = shared.GatewayCredential{
			APIKey:    derefOrEmpty(organizer.GatewayAPIKey),
			AccountID: derefOrEmpty(organizer.GatewayAccountID),
		}
	}

	expiresIn := int(tr.ExpiresAt().Sub(c.clock.Now()).Seconds())
	artifact, err := c.gateway.CreateCharge(ctx, cred, shared.CreateChargeInput{
		AmountCents:       tr.AmountCents(),
		Description:       chargeDescription(tr),
		ExternalReference: tr.ID().String(),
		BuyerName:         buyerName,
		BuyerWhatsApp:     buyerWhatsApp,
		BuyerEmail:        buyerEmail,
		ExpiresInSeconds:  expiresIn,
	})
	if err != nil {
		return nil, err
	}

	if err := c.transactionRepo.SetArtifact(ctx, tr.ID(), *artifact); err != nil {
		// The charge exists at the gateway; losing the write only costs a
		// regeneration on the next read.
		slog.Warn("failed to persist payment artifact",
			"transaction_id", tr.ID().String(),
			"error", err.Error())
	}
	return artifact, nil
}

func (c *checkoutImpl) enqueueCheckoutNotification(
	ctx context.Context,
	tx shared.Tx,
	tr *transaction.Transaction,
	contact buyer.Contact,
	campaignTitle string,
	now time.Time,
) error {
	payload, err := json.Marshal(map[string]any{
		"transaction_id": tr.ID(),
		"campaign_title": campaignTitle,
		"contact":        contact.WhatsApp(),
		"amount_cents":   tr.AmountCents(),
		"numbers":        tr.Numbers(),
		"expires_at":     tr.ExpiresAt(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "whatsapp", "checkout_created", payload, now)
}

func chargeDescription(tr *transaction.Transaction) string {
	return "Rifa: " + tr.ID().String()[:8]
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

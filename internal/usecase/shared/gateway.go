package shared

import (
	"context"

	"rifa-hub/internal/domain/transaction"
)

// GatewayCredential selects the PSP account a charge settles to: the
// platform's own key or the organizer's stored key.
type GatewayCredential struct {
	APIKey    string
	AccountID string
}

type CreateChargeInput struct {
	AmountCents       int64
	Description       string
	ExternalReference string // our transaction id, echoed back on webhooks
	BuyerName         string
	BuyerWhatsApp     string
	BuyerEmail        *string
	ExpiresInSeconds  int
}

// PixGateway is the outbound payment collaborator. Calls are expected to be
// bounded by the request context; implementations must not be invoked while
// holding database locks.
type PixGateway interface {
	CreateCharge(ctx context.Context, cred GatewayCredential, in CreateChargeInput) (*transaction.PaymentArtifact, error)
}

package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types
type OrganizerSnapshot struct {
	ID               uuid.UUID
	Name             string
	Email            string
	GatewayAccountID *string
	GatewayAPIKey    *string
}

// Payable reports whether organizer-destined sales can actually be charged.
func (o *OrganizerSnapshot) Payable() bool {
	return o.GatewayAccountID != nil && o.GatewayAPIKey != nil &&
		*o.GatewayAccountID != "" && *o.GatewayAPIKey != ""
}

type BuyerSnapshot struct {
	ID       uuid.UUID
	Name     string
	WhatsApp string
	Email    *string
}

// ExpiredPending is the slice of a transaction the expiry path needs.
type ExpiredPending struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	Numbers    []int
}

type NotificationJob struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoNumbers     = errors.New("transaction requires at least one number")
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	ErrInvalidExpiry = errors.New("transaction expiry must be in the future")
)

type Method string

const (
	MethodPix Method = "PIX"
)

type Destination string

const (
	DestinationPlatform  Destination = "PLATFORM"
	DestinationOrganizer Destination = "ORGANIZER"
)

type Provider string

const (
	ProviderPlatformGateway  Provider = "PLATFORM_GATEWAY"
	ProviderOrganizerGateway Provider = "ORGANIZER_GATEWAY"
)

// ProviderFor maps a settlement destination to the gateway account that
// collects it. Decided once at creation, never recomputed.
func ProviderFor(d Destination) Provider {
	if d == DestinationPlatform {
		return ProviderPlatformGateway
	}
	return ProviderOrganizerGateway
}

// PaymentArtifact is the gateway-issued payload the buyer needs to pay:
// the PIX copy-and-paste code plus the hosted QR image.
type PaymentArtifact struct {
	ExternalID string
	QRCode     string
	QRCodeURL  string
}

type Transaction struct {
	id          uuid.UUID
	campaignID  uuid.UUID
	buyerID     uuid.UUID
	numbers     []int
	amountCents int64
	method      Method
	status      Status
	provider    Provider
	destination Destination
	expiresAt   time.Time
	externalID  *string
	qrCode      *string
	qrCodeURL   *string
	paidAt      *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func New(
	campaignID, buyerID uuid.UUID,
	numbers []int,
	amountCents int64,
	method Method,
	destination Destination,
	now, expiresAt time.Time,
) (*Transaction, error) {
	if len(numbers) == 0 {
		return nil, ErrNoNumbers
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if !expiresAt.After(now) {
		return nil, ErrInvalidExpiry
	}

	nums := make([]int, len(numbers))
	copy(nums, numbers)

	return &Transaction{
		id:          uuid.New(),
		campaignID:  campaignID,
		buyerID:     buyerID,
		numbers:     nums,
		amountCents: amountCents,
		method:      method,
		status:      StatusPending,
		provider:    ProviderFor(destination),
		destination: destination,
		expiresAt:   expiresAt,
	}, nil
}

func Reconstruct(
	id, campaignID, buyerID uuid.UUID,
	numbers []int,
	amountCents int64,
	method Method,
	status Status,
	provider Provider,
	destination Destination,
	expiresAt time.Time,
	externalID, qrCode, qrCodeURL *string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		campaignID:  campaignID,
		buyerID:     buyerID,
		numbers:     numbers,
		amountCents: amountCents,
		method:      method,
		status:      status,
		provider:    provider,
		destination: destination,
		expiresAt:   expiresAt,
		externalID:  externalID,
		qrCode:      qrCode,
		qrCodeURL:   qrCodeURL,
		paidAt:      paidAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Transaction) IsPending() bool {
	return t.status == StatusPending
}

func (t *Transaction) HasExpired(now time.Time) bool {
	return t.status == StatusPending && now.After(t.expiresAt)
}

func (t *Transaction) HasArtifact() bool {
	return t.externalID != nil && t.qrCode != nil
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) CampaignID() uuid.UUID    { return t.campaignID }
func (t *Transaction) BuyerID() uuid.UUID       { return t.buyerID }
func (t *Transaction) Numbers() []int           { return t.numbers }
func (t *Transaction) AmountCents() int64       { return t.amountCents }
func (t *Transaction) Method() Method           { return t.method }
func (t *Transaction) Status() Status           { return t.status }
func (t *Transaction) Provider() Provider       { return t.provider }
func (t *Transaction) Destination() Destination { return t.destination }
func (t *Transaction) ExpiresAt() time.Time     { return t.expiresAt }
func (t *Transaction) ExternalID() *string      { return t.externalID }
func (t *Transaction) QRCode() *string          { return t.qrCode }
func (t *Transaction) QRCodeURL() *string       { return t.qrCodeURL }
func (t *Transaction) PaidAt() *time.Time       { return t.paidAt }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time     { return t.updatedAt }

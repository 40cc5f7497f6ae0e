package response

import (
	"time"

	"rifa-hub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	CampaignID    uuid.UUID  `json:"campaignId"`
	CampaignTitle string     `json:"campaignTitle"`
	BuyerName     string     `json:"buyerName"`
	BuyerWhatsApp string     `json:"buyerWhatsapp"`
	Numbers       []int      `json:"numbers"`
	AmountCents   int64      `json:"amountCents"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	QRCode        *string    `json:"qrCode,omitempty"`
	QRCodeURL     *string    `json:"qrCodeUrl,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type TransactionStatusResponse struct {
	ID        uuid.UUID  `json:"id"`
	Status    string     `json:"status"`
	ExpiresAt time.Time  `json:"expiresAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// CheckoutResponse is what the buyer needs right after purchase: the PIX
// payload when it is ready, or pending=true when artifact generation is
// still being retried.
type CheckoutResponse struct {
	TransactionID   uuid.UUID `json:"transactionId"`
	AmountCents     int64     `json:"amountCents"`
	ExpiresAt       time.Time `json:"expiresAt"`
	QRCode          *string   `json:"qrCode,omitempty"`
	QRCodeURL       *string   `json:"qrCodeUrl,omitempty"`
	ArtifactPending bool      `json:"artifactPending"`
}

func FromTransactionView(rm *queries.TransactionView) *TransactionResponse {
	var resp TransactionResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromTransactionStatusView(rm *queries.TransactionStatusView) *TransactionStatusResponse {
	var resp TransactionStatusResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

package response

import (
	"time"

	"rifa-hub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CampaignResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Status           string    `json:"status"`
	TotalNumbers     int       `json:"totalNumbers"`
	UnitPriceCents   int64     `json:"unitPriceCents"`
	MaxPerBuyer      *int32    `json:"maxPerBuyer,omitempty"`
	AvailableNumbers int       `json:"availableNumbers"`
	CreatedAt        time.Time `json:"createdAt"`
}

type CampaignSummaryResponse struct {
	ID                      uuid.UUID `json:"id"`
	Title                   string    `json:"title"`
	Status                  string    `json:"status"`
	TotalNumbers            int       `json:"totalNumbers"`
	AvailableCount          int       `json:"availableCount"`
	ReservedCount           int       `json:"reservedCount"`
	PaidCount               int       `json:"paidCount"`
	TotalRaisedCents        int64     `json:"totalRaisedCents"`
	CommissionGoalCents     int64     `json:"commissionGoalCents"`
	CommissionReservedCents int64     `json:"commissionReservedCents"`
	CommissionPaidCents     int64     `json:"commissionPaidCents"`
}

type NumberStateResponse struct {
	Number int    `json:"number"`
	Status string `json:"status"`
}

func FromCampaignView(rm *queries.CampaignView) *CampaignResponse {
	var resp CampaignResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromCampaignSummary(rm *queries.CampaignSummary) *CampaignSummaryResponse {
	var resp CampaignSummaryResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromNumberStates(states []queries.NumberState) []NumberStateResponse {
	out := make([]NumberStateResponse, len(states))
	for i, s := range states {
		out[i] = NumberStateResponse{Number: s.Number, Status: s.Status}
	}
	return out
}

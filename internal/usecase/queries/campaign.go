package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CampaignView struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Status           string    `json:"status"`
	TotalNumbers     int       `json:"total_numbers"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	MaxPerBuyer      *int32    `json:"max_per_buyer,omitempty"`
	AvailableNumbers int       `json:"available_numbers"`
	CreatedAt        time.Time `json:"created_at"`
}

// CampaignSummary is the organizer console view: sales progress plus the
// commission funnel state.
type CampaignSummary struct {
	ID                      uuid.UUID `json:"id"`
	Title                   string    `json:"title"`
	Status                  string    `json:"status"`
	TotalNumbers            int       `json:"total_numbers"`
	AvailableCount          int       `json:"available_count"`
	ReservedCount           int       `json:"reserved_count"`
	PaidCount               int       `json:"paid_count"`
	TotalRaisedCents        int64     `json:"total_raised_cents"`
	CommissionGoalCents     int64     `json:"commission_goal_cents"`
	CommissionReservedCents int64     `json:"commission_reserved_cents"`
	CommissionPaidCents     int64     `json:"commission_paid_cents"`
}

type NumberState struct {
	Number int    `json:"number"`
	Status string `json:"status"`
}

type CampaignQueries interface {
	GetPublic(ctx context.Context, id uuid.UUID) (*CampaignView, error)
	GetSummary(ctx context.Context, organizerID, id uuid.UUID) (*CampaignSummary, error)
	ListNumbers(ctx context.Context, id uuid.UUID) ([]NumberState, error)
}

type CampaignViewRepo interface {
	FindPublicByID(ctx context.Context, id uuid.UUID) (*CampaignView, error)
	FindSummary(ctx context.Context, organizerID, id uuid.UUID) (*CampaignSummary, error)
	ListNumberStates(ctx context.Context, id uuid.UUID) ([]NumberState, error)
}

type campaignQueriesImpl struct {
	repo CampaignViewRepo
}

func NewCampaignQueries(repo CampaignViewRepo) CampaignQueries {
	return &campaignQueriesImpl{repo: repo}
}

func (q *campaignQueriesImpl) GetPublic(ctx context.Context, id uuid.UUID) (*CampaignView, error) {
	return q.repo.FindPublicByID(ctx, id)
}

func (q *campaignQueriesImpl) GetSummary(ctx context.Context, organizerID, id uuid.UUID) (*CampaignSummary, error) {
	return q.repo.FindSummary(ctx, organizerID, id)
}

func (q *campaignQueriesImpl) ListNumbers(ctx context.Context, id uuid.UUID) ([]NumberState, error) {
	return q.repo.ListNumberStates(ctx, id)
}

package campaign

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTotalNumbers    = errors.New("total numbers must be positive")
	ErrInvalidUnitPrice       = errors.New("unit price must be positive")
	ErrInvalidCommissionRate  = errors.New("commission percent must be within [0, 1]")
	ErrNegativeCommissionGoal = errors.New("commission goal cannot be negative")
	ErrNotSellable            = errors.New("campaign is not accepting purchases")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

type Campaign struct {
	id                      uuid.UUID
	organizerID             uuid.UUID
	title                   string
	status                  Status
	totalNumbers            int
	unitPriceCents          int64
	maxPerBuyer             *int32
	commissionGoalCents     int64
	commissionReservedCents int64
	commissionPaidCents     int64
	commissionPercent       float64
	totalRaisedCents        int64
	createdAt               time.Time
	updatedAt               time.Time
}

func New(
	organizerID uuid.UUID,
	title string,
	totalNumbers int,
	unitPriceCents int64,
	maxPerBuyer *int32,
	commissionGoalCents int64,
	commissionPercent float64,
) (*Campaign, error) {
	if totalNumbers <= 0 {
		return nil, ErrInvalidTotalNumbers
	}
	if unitPriceCents <= 0 {
		return nil, ErrInvalidUnitPrice
	}
	if commissionPercent < 0 || commissionPercent > 1 {
		return nil, ErrInvalidCommissionRate
	}
	if commissionGoalCents < 0 {
		return nil, ErrNegativeCommissionGoal
	}

	return &Campaign{
		id:                  uuid.New(),
		organizerID:         organizerID,
		title:               title,
		status:              StatusDraft,
		totalNumbers:        totalNumbers,
		unitPriceCents:      unitPriceCents,
		maxPerBuyer:         maxPerBuyer,
		commissionGoalCents: commissionGoalCents,
		commissionPercent:   commissionPercent,
	}, nil
}

func Reconstruct(
	id, organizerID uuid.UUID,
	title string,
	status Status,
	totalNumbers int,
	unitPriceCents int64,
	maxPerBuyer *int32,
	commissionGoalCents, commissionReservedCents, commissionPaidCents int64,
	commissionPercent float64,
	totalRaisedCents int64,
	createdAt, updatedAt time.Time,
) *Campaign {
	return &Campaign{
		id:                      id,
		organizerID:             organizerID,
		title:                   title,
		status:                  status,
		totalNumbers:            totalNumbers,
		unitPriceCents:          unitPriceCents,
		maxPerBuyer:             maxPerBuyer,
		commissionGoalCents:     commissionGoalCents,
		commissionReservedCents: commissionReservedCents,
		commissionPaidCents:     commissionPaidCents,
		commissionPercent:       commissionPercent,
		totalRaisedCents:        totalRaisedCents,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
	}
}

func (c *Campaign) IsSellable() bool {
	return c.status == StatusActive
}

// AmountFor computes the sale amount for a count of numbers at the unit price.
func (c *Campaign) AmountFor(count int) int64 {
	return c.unitPriceCents * int64(count)
}

func (c *Campaign) ID() uuid.UUID              { return c.id }
func (c *Campaign) OrganizerID() uuid.UUID     { return c.organizerID }
func (c *Campaign) Title() string              { return c.title }
func (c *Campaign) Status() Status             { return c.status }
func (c *Campaign) TotalNumbers() int          { return c.totalNumbers }
func (c *Campaign) UnitPriceCents() int64      { return c.unitPriceCents }
func (c *Campaign) MaxPerBuyer() *int32        { return c.maxPerBuyer }
func (c *Campaign) CommissionGoalCents() int64 { return c.commissionGoalCents }
func (c *Campaign) CommissionReservedCents() int64 {
	return c.commissionReservedCents
}
func (c *Campaign) CommissionPaidCents() int64 { return c.commissionPaidCents }
func (c *Campaign) CommissionPercent() float64 { return c.commissionPercent }
func (c *Campaign) TotalRaisedCents() int64    { return c.totalRaisedCents }
func (c *Campaign) CreatedAt() time.Time       { return c.createdAt }
func (c *Campaign) UpdatedAt() time.Time       { return c.updatedAt }

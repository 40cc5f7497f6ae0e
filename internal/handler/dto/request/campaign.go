package request

type CreateCampaignRequest struct {
	Title               string  `json:"title" binding:"required"`
	TotalNumbers        int     `json:"total_numbers" binding:"required,gt=0"`
	UnitPriceCents      int64   `json:"unit_price_cents" binding:"required,gt=0"`
	MaxPerBuyer         *int32  `json:"max_per_buyer,omitempty"`
	CommissionGoalCents int64   `json:"commission_goal_cents" binding:"gte=0"`
	CommissionPercent   float64 `json:"commission_percent" binding:"gte=0,lte=1"`
}

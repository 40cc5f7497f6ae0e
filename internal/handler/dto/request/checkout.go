package request

import "strings"

type CheckoutRequest struct {
	BuyerName     string  `json:"buyer_name" binding:"required"`
	BuyerWhatsApp string  `json:"buyer_whatsapp" binding:"required"`
	BuyerEmail    *string `json:"buyer_email,omitempty"`
	Numbers       []int   `json:"numbers" binding:"required"`
	Method        string  `json:"method" binding:"required"`
}

func (r CheckoutRequest) GetBuyerEmail() *string {
	if r.BuyerEmail == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.BuyerEmail)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

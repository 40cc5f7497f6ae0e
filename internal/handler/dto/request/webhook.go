package request

// GatewayWebhookRequest mirrors the order-event envelope the PSP posts.
// Data.Code carries back the reference we set when creating the charge.
type GatewayWebhookRequest struct {
	ID   string `json:"id" binding:"required"`
	Type string `json:"type"`
	Data struct {
		ID     string `json:"id"`
		Code   string `json:"code"`
		Status string `json:"status"`
	} `json:"data"`
}

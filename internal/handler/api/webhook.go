package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	reqdto "rifa-hub/internal/handler/dto/request"
	"rifa-hub/internal/handler/httperr"
	"rifa-hub/internal/infra/gateway"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	ProviderPlatform  = "platform"
	ProviderOrganizer = "organizer"
)

// WebhookHandler receives payment notifications from the PSP. One route per
// provider because platform and organizer accounts carry distinct secrets.
type WebhookHandler struct {
	events  commands.PaymentEventCommands
	secrets map[string]string
}

func NewWebhookHandler(events commands.PaymentEventCommands, cfg config.GatewayConfig) *WebhookHandler {
	return &WebhookHandler{
		events: events,
		secrets: map[string]string{
			ProviderPlatform:  cfg.PlatformWebhookSecret,
			ProviderOrganizer: cfg.OrganizerWebhookSecret,
		},
	}
}

// @Summary Receive PIX payment notification
// @Description Signature-verified webhook endpoint for payment status changes
// @Tags webhooks
// @Accept json
// @Produce json
// @Param provider path string true "Webhook provider (platform or organizer)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks/pix/{provider} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	secret, ok := h.secrets[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unknown webhook provider",
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unreadable request body",
		})
		return
	}

	signature := c.GetHeader("X-Hub-Signature")
	if signature == "" {
		signature = c.GetHeader("X-Signature")
	}
	if !gateway.VerifySignature(secret, body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	var req reqdto.GatewayWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid webhook payload",
		})
		return
	}

	outcome, err := h.events.HandleGatewayEvent(c.Request.Context(), commands.GatewayEvent{
		Provider:       c.Param("provider"),
		GatewayEventID: req.ID,
		TransactionID:  req.Data.Code,
		ReportedStatus: req.Data.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrMalformedEvent):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Malformed event",
			})
		case errors.Is(err, commands.ErrUnknownTransaction):
			// Acknowledged so the PSP stops retrying a reference we will
			// never recognize.
			c.JSON(http.StatusOK, gin.H{
				"result": "ignored",
			})
		default:
			// Non-2xx makes the PSP redeliver; the ledger absorbs the retry.
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": string(outcome),
	})
}

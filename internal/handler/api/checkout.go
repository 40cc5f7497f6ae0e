package api

import (
	"errors"
	"net/http"

	reqdto "rifa-hub/internal/handler/dto/request"
	resdto "rifa-hub/internal/handler/dto/response"
	"rifa-hub/internal/handler/httperr"
	"rifa-hub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// @Summary Purchase raffle numbers
// @Description Reserve the selected numbers and create a PIX charge
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 202 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /campaigns/{id}/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid campaign ID format",
		})
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), campaignID, commands.CheckoutInput{
		BuyerName:     req.BuyerName,
		BuyerWhatsApp: req.BuyerWhatsApp,
		BuyerEmail:    req.GetBuyerEmail(),
		Numbers:       req.Numbers,
		Method:        req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Campaign not found",
			})
		case errors.Is(err, commands.ErrCampaignNotSellable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Campaign is not accepting purchases",
			})
		case errors.Is(err, commands.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid checkout data",
			})
		case errors.Is(err, commands.ErrUnsupportedMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unsupported payment method",
			})
		case errors.Is(err, commands.ErrBuyerLimitReached):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Per-buyer ticket limit reached",
			})
		case errors.Is(err, commands.ErrInventoryConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "One or more numbers are no longer available",
			})
		case errors.Is(err, commands.ErrOrganizerNotPayable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Organizer cannot receive payments",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	resp := resdto.CheckoutResponse{
		TransactionID: result.TransactionID,
		AmountCents:   result.AmountCents,
		ExpiresAt:     result.ExpiresAt,
	}

	// The reservation is committed even when the gateway call failed; the
	// client polls the transaction endpoint until the artifact shows up.
	if result.Artifact == nil {
		resp.ArtifactPending = true
		c.JSON(http.StatusAccepted, resp)
		return
	}

	resp.QRCode = &result.Artifact.QRCode
	if result.Artifact.QRCodeURL != "" {
		url := result.Artifact.QRCodeURL
		resp.QRCodeURL = &url
	}
	c.JSON(http.StatusCreated, resp)
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	resdto "rifa-hub/internal/handler/dto/response"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/usecase/commands"
	"rifa-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	queries  queries.TransactionQueries
	checkout commands.CheckoutCommands
	expiry   commands.ExpiryCommands
	clock    clock.Clock
}

func NewTransactionHandler(
	q queries.TransactionQueries,
	checkout commands.CheckoutCommands,
	expiry commands.ExpiryCommands,
	clk clock.Clock,
) *TransactionHandler {
	return &TransactionHandler{queries: q, checkout: checkout, expiry: expiry, clock: clk}
}

// @Summary Get transaction status
// @Description Poll the payment status of a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/status [get]
func (h *TransactionHandler) GetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	view, err := h.getStatusWithExpiry(c, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionStatusView(view))
}

// @Summary Get transaction details
// @Description Full transaction view including the PIX payment artifact
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	// Reads double as the lazy expiry trigger.
	if view.Status == "PENDING" && h.clock.Now().After(view.ExpiresAt) {
		if _, err := h.expiry.ExpireTransaction(c.Request.Context(), id); err == nil {
			view, err = h.queries.GetByID(c.Request.Context(), id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				return
			}
		}
	}

	// A pending transaction can outlive a failed gateway call at checkout;
	// retry artifact generation on read until it sticks. A retry failure is
	// not fatal, the client just sees the artifact still missing.
	if view.Status == "PENDING" && view.QRCode == nil {
		artifact, err := h.checkout.RegenerateArtifact(c.Request.Context(), id)
		if err == nil {
			view.QRCode = &artifact.QRCode
			if artifact.QRCodeURL != "" {
				url := artifact.QRCodeURL
				view.QRCodeURL = &url
			}
		} else if !errors.Is(err, commands.ErrArtifactUnavailable) {
			slog.Warn("artifact regeneration failed on read",
				"transaction_id", id.String(), "error", err.Error())
		}
	}

	c.JSON(http.StatusOK, resdto.FromTransactionView(view))
}

func (h *TransactionHandler) getStatusWithExpiry(c *gin.Context, id uuid.UUID) (*queries.TransactionStatusView, error) {
	view, err := h.queries.GetStatus(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	if view.Status == "PENDING" && h.clock.Now().After(view.ExpiresAt) {
		expired, err := h.expiry.ExpireTransaction(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		if expired {
			return h.queries.GetStatus(c.Request.Context(), id)
		}
	}
	return view, nil
}

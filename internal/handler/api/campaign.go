package api

import (
	"errors"
	"net/http"

	reqdto "rifa-hub/internal/handler/dto/request"
	resdto "rifa-hub/internal/handler/dto/response"
	"rifa-hub/internal/handler/middleware"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/usecase/commands"
	"rifa-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	commands commands.CampaignCommands
	queries  queries.CampaignQueries
}

func NewCampaignHandler(cmds commands.CampaignCommands, q queries.CampaignQueries) *CampaignHandler {
	return &CampaignHandler{commands: cmds, queries: q}
}

// @Summary Get campaign
// @Description Public campaign view with availability count
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} resdto.CampaignResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetPublic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid campaign ID format",
		})
		return
	}

	view, err := h.queries.GetPublic(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Campaign not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCampaignView(view))
}

// @Summary List number states
// @Description Status of every number in a campaign
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {array} resdto.NumberStateResponse
// @Failure 400 {object} map[string]string
// @Router /campaigns/{id}/numbers [get]
func (h *CampaignHandler) ListNumbers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid campaign ID format",
		})
		return
	}

	states, err := h.queries.ListNumbers(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromNumberStates(states))
}

// @Summary Create campaign
// @Description Create a draft campaign for the authenticated organizer
// @Tags console
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCampaignRequest true "Campaign request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /console/campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	organizerID, ok := middleware.GetOrganizerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateCampaignRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.commands.Create(c.Request.Context(), organizerID, commands.CreateCampaignInput{
		Title:               req.Title,
		TotalNumbers:        req.TotalNumbers,
		UnitPriceCents:      req.UnitPriceCents,
		MaxPerBuyer:         req.MaxPerBuyer,
		CommissionGoalCents: req.CommissionGoalCents,
		CommissionPercent:   req.CommissionPercent,
	})
	if err != nil {
		if errors.Is(err, commands.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid campaign data",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id": id.String(),
	})
}

// @Summary Publish campaign
// @Description Activate a draft campaign and seed its ticket inventory
// @Tags console
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /console/campaigns/{id}/publish [post]
func (h *CampaignHandler) Publish(c *gin.Context) {
	organizerID, ok := middleware.GetOrganizerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid campaign ID format",
		})
		return
	}

	if err := h.commands.Publish(c.Request.Context(), organizerID, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Campaign not found",
			})
		case errors.Is(err, commands.ErrCampaignForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Campaign belongs to another organizer",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get campaign summary
// @Description Sales and commission funnel state for the organizer console
// @Tags console
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} resdto.CampaignSummaryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /console/campaigns/{id}/summary [get]
func (h *CampaignHandler) GetSummary(c *gin.Context) {
	organizerID, ok := middleware.GetOrganizerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid campaign ID format",
		})
		return
	}

	summary, err := h.queries.GetSummary(c.Request.Context(), organizerID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Campaign not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCampaignSummary(summary))
}

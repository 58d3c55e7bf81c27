package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/middleware"
	"github.com/lumilearn/lumilearn-backend/internal/services"
)

type StatsHandler struct {
	svc services.StatsService
}

func NewStatsHandler(svc services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GET /api/stats/goals
func (h *StatsHandler) GoalStats(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	stats, err := h.svc.GoalStats(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, stats)
}

// GET /api/stats/paths
func (h *StatsHandler) PathStats(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	stats, err := h.svc.PathStats(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, stats)
}

// GET /api/status
func (h *StatsHandler) SystemStatus(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	status, err := h.svc.SystemStatus(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, status)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/middleware"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

type EventHandler struct {
	store *store.CoreStore
}

func NewEventHandler(coreStore *store.CoreStore) *EventHandler {
	return &EventHandler{store: coreStore}
}

// GET /api/events?limit=
func (h *EventHandler) List(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	doc, err := h.store.Load(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	events := doc.Events
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit < len(events) {
			events = events[len(events)-limit:]
		}
	}
	RespondOK(c, gin.H{"events": events})
}

// GET /api/agent-actions
func (h *EventHandler) ListAgentActions(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	doc, err := h.store.Load(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"agentActions": doc.AgentActions})
}

// DELETE /api/profile/cache drops the cached document for the active
// profile; the next read goes back to storage.
func (h *EventHandler) ClearCache(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	h.store.ClearCache(profileID)
	RespondOK(c, gin.H{"cleared": true})
}

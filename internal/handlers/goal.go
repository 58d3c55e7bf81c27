package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	"github.com/lumilearn/lumilearn-backend/internal/middleware"
	"github.com/lumilearn/lumilearn-backend/internal/repos"
	"github.com/lumilearn/lumilearn-backend/internal/services"
)

type GoalHandler struct {
	repo       repos.GoalRepo
	activation services.ActivationService
}

func NewGoalHandler(repo repos.GoalRepo, activation services.ActivationService) *GoalHandler {
	return &GoalHandler{repo: repo, activation: activation}
}

// GET /api/goals?status=&category=&q=
func (h *GoalHandler) List(c *gin.Context) {
	profileID := middleware.ProfileID(c)

	if q := c.Query("q"); q != "" {
		goals, err := h.repo.Search(c.Request.Context(), profileID, q)
		if err != nil {
			RespondTaxonomy(c, err)
			return
		}
		RespondOK(c, gin.H{"goals": goals})
		return
	}
	if status := c.Query("status"); status != "" {
		goals, err := h.repo.GetByStatus(c.Request.Context(), profileID, domain.GoalStatus(status))
		if err != nil {
			RespondTaxonomy(c, err)
			return
		}
		RespondOK(c, gin.H{"goals": goals})
		return
	}
	if category := c.Query("category"); category != "" {
		goals, err := h.repo.GetByCategory(c.Request.Context(), profileID, domain.GoalCategory(category))
		if err != nil {
			RespondTaxonomy(c, err)
			return
		}
		RespondOK(c, gin.H{"goals": goals})
		return
	}

	goals, err := h.repo.GetAll(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"goals": goals})
}

// GET /api/goals/:id
func (h *GoalHandler) Get(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	goal, err := h.repo.GetByID(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	if goal == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, gin.H{"goal": goal})
}

// POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var input domain.CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	goal, err := h.repo.Create(c.Request.Context(), profileID, input)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// PATCH /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var patch domain.GoalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	goal, err := h.repo.Update(c.Request.Context(), profileID, c.Param("id"), patch)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"goal": goal})
}

// DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	deleted, err := h.repo.Delete(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}

// POST /api/goals/validate runs validation without writing.
func (h *GoalHandler) Validate(c *gin.Context) {
	var input domain.CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	RespondOK(c, h.repo.Validate(input))
}

// POST /api/goals/:id/activate
func (h *GoalHandler) Activate(c *gin.Context) {
	h.respondActivation(c, h.activation.ActivateGoal)
}

// POST /api/goals/:id/pause
func (h *GoalHandler) Pause(c *gin.Context) {
	h.respondActivation(c, h.activation.PauseGoal)
}

// POST /api/goals/:id/complete
func (h *GoalHandler) Complete(c *gin.Context) {
	h.respondActivation(c, h.activation.CompleteGoal)
}

// POST /api/goals/:id/cancel
func (h *GoalHandler) Cancel(c *gin.Context) {
	h.respondActivation(c, h.activation.CancelGoal)
}

func (h *GoalHandler) respondActivation(
	c *gin.Context,
	op func(ctx context.Context, profileID, goalID string) (*services.ActivationResult, error),
) {
	profileID := middleware.ProfileID(c)
	result, err := op(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, result)
}

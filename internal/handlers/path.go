package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	"github.com/lumilearn/lumilearn-backend/internal/middleware"
	"github.com/lumilearn/lumilearn-backend/internal/repos"
	"github.com/lumilearn/lumilearn-backend/internal/services"
)

type PathHandler struct {
	repo       repos.PathRepo
	activation services.ActivationService
}

func NewPathHandler(repo repos.PathRepo, activation services.ActivationService) *PathHandler {
	return &PathHandler{repo: repo, activation: activation}
}

// GET /api/paths?goalId=
func (h *PathHandler) List(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	if goalID := c.Query("goalId"); goalID != "" {
		paths, err := h.repo.GetAllByGoal(c.Request.Context(), profileID, goalID)
		if err != nil {
			RespondTaxonomy(c, err)
			return
		}
		RespondOK(c, gin.H{"paths": paths})
		return
	}
	paths, err := h.repo.GetAll(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"paths": paths})
}

// GET /api/paths/:id
func (h *PathHandler) Get(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	path, err := h.repo.GetByID(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	if path == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, gin.H{"path": path})
}

// POST /api/paths
func (h *PathHandler) Create(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var input domain.CreatePathInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	path, err := h.repo.Create(c.Request.Context(), profileID, input)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}

// PATCH /api/paths/:id
func (h *PathHandler) Update(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var patch domain.PathPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	path, err := h.repo.Update(c.Request.Context(), profileID, c.Param("id"), patch)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"path": path})
}

// DELETE /api/paths/:id
func (h *PathHandler) Delete(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	deleted, err := h.repo.Delete(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}

// POST /api/paths/:id/activate
func (h *PathHandler) Activate(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	result, err := h.activation.ActivatePath(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, result)
}

// PUT /api/paths/:id/nodes/:nodeId/status
func (h *PathHandler) UpdateNodeStatus(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var body struct {
		Status domain.NodeStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	path, err := h.repo.UpdateNodeStatus(c.Request.Context(), profileID, c.Param("id"), c.Param("nodeId"), body.Status)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"path": path})
}

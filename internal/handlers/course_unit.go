package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	"github.com/lumilearn/lumilearn-backend/internal/middleware"
	"github.com/lumilearn/lumilearn-backend/internal/repos"
)

type CourseUnitHandler struct {
	repo repos.CourseUnitRepo
}

func NewCourseUnitHandler(repo repos.CourseUnitRepo) *CourseUnitHandler {
	return &CourseUnitHandler{repo: repo}
}

// GET /api/course-units?nodeId=
func (h *CourseUnitHandler) List(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	if nodeID := c.Query("nodeId"); nodeID != "" {
		units, err := h.repo.GetByNode(c.Request.Context(), profileID, nodeID)
		if err != nil {
			RespondTaxonomy(c, err)
			return
		}
		RespondOK(c, gin.H{"courseUnits": units})
		return
	}
	units, err := h.repo.GetAll(c.Request.Context(), profileID)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"courseUnits": units})
}

// GET /api/course-units/:id
func (h *CourseUnitHandler) Get(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	unit, err := h.repo.GetByID(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	if unit == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, gin.H{"courseUnit": unit})
}

// POST /api/course-units
func (h *CourseUnitHandler) Create(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var input domain.CreateCourseUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	unit, err := h.repo.Create(c.Request.Context(), profileID, input)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"courseUnit": unit})
}

// PATCH /api/course-units/:id
func (h *CourseUnitHandler) Update(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	var patch domain.CourseUnitPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	unit, err := h.repo.Update(c.Request.Context(), profileID, c.Param("id"), patch)
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"courseUnit": unit})
}

// DELETE /api/course-units/:id
func (h *CourseUnitHandler) Delete(c *gin.Context) {
	profileID := middleware.ProfileID(c)
	deleted, err := h.repo.Delete(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		RespondTaxonomy(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}

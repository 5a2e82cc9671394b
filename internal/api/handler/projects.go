package handler

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/api/models"
	"github.com/workdeskapp/workdesk/internal/database"
	"gorm.io/gorm"
)

// ListProjects returns all projects owned by the caller, most recently
// touched first.
func (h *Handler) ListProjects(c *gin.Context) {
	user := currentUser(c)

	projects, err := h.db.ListProjects(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, models.ToProjects(projects))
}

// CreateProject creates a project from a JSON body. The title must be
// non-empty after trimming; everything else defaults to empty.
func (h *Handler) CreateProject(c *gin.Context) {
	user := currentUser(c)

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed bodies count as empty payloads.
		req = models.CreateProjectRequest{}
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	project, err := h.db.CreateProject(c.Request.Context(), user.ID, req.Title, req.Description, req.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": project.ID})
}

// GetProject returns a single project. A foreign or missing id is a 404
// either way.
func (h *Handler) GetProject(c *gin.Context) {
	user := currentUser(c)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	project, err := h.db.GetProject(c.Request.Context(), user.ID, id)
	if err != nil {
		h.projectError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToProject(project))
}

// UpdateProject overwrites only the fields present in the body.
func (h *Handler) UpdateProject(c *gin.Context) {
	user := currentUser(c)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = models.UpdateProjectRequest{}
	}

	patch := database.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		Data:        req.Data,
	}
	if _, err := h.db.UpdateProject(c.Request.Context(), user.ID, id, patch); err != nil {
		h.projectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteProject permanently removes a project.
func (h *Handler) DeleteProject(c *gin.Context) {
	user := currentUser(c)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.db.DeleteProject(c.Request.Context(), user.ID, id); err != nil {
		h.projectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) projectError(c *gin.Context, err error) {
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	log.Error("project operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

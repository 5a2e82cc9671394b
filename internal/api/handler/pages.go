package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/database"
	"gorm.io/gorm"
)

// Home redirects to the project list, the authenticated landing page.
func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/projects/")
}

// ProjectListPage renders the project list with its inline create form.
func (h *Handler) ProjectListPage(c *gin.Context) {
	h.renderProjectList(c, http.StatusOK, "")
}

// CreateProjectForm handles the create form post on the list page. Missing
// titles re-render the list with an inline error instead of creating
// anything.
func (h *Handler) CreateProjectForm(c *gin.Context) {
	user := currentUser(c)

	title := c.PostForm("title")
	if strings.TrimSpace(title) == "" {
		h.renderProjectList(c, http.StatusOK, "title is required")
		return
	}

	if _, err := h.db.CreateProject(c.Request.Context(), user.ID, title, c.PostForm("description"), nil); err != nil {
		h.renderProjectList(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	c.Redirect(http.StatusFound, "/projects/")
}

func (h *Handler) renderProjectList(c *gin.Context, status int, errMsg string) {
	user := currentUser(c)
	ctx := c.Request.Context()

	projects, err := h.db.ListProjects(ctx, user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	pref, err := h.db.GetOrCreatePreference(ctx, user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(status, "projects_list.html", gin.H{
		"User":     user,
		"Projects": projects,
		"Theme":    pref.ThemeString(),
		"Error":    errMsg,
	})
}

// ProjectDetailPage renders a single project with its update form.
func (h *Handler) ProjectDetailPage(c *gin.Context) {
	user := currentUser(c)

	project, err := h.pageProject(c)
	if err != nil {
		return
	}

	pref, err := h.db.GetOrCreatePreference(c.Request.Context(), user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "project_detail.html", gin.H{
		"User":    user,
		"Project": project,
		"Theme":   pref.ThemeString(),
	})
}

// ProjectDetailForm handles the detail form post: a "delete" field removes
// the project, otherwise the supplied fields are written and the page
// redirects back to itself.
func (h *Handler) ProjectDetailForm(c *gin.Context) {
	user := currentUser(c)

	project, err := h.pageProject(c)
	if err != nil {
		return
	}

	if c.PostForm("delete") != "" {
		if err := h.db.DeleteProject(c.Request.Context(), user.ID, project.ID); err != nil {
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.Redirect(http.StatusFound, "/projects/")
		return
	}

	var patch database.ProjectPatch
	if title, ok := c.GetPostForm("title"); ok {
		patch.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		patch.Description = &description
	}
	if _, err := h.db.UpdateProject(c.Request.Context(), user.ID, project.ID, patch); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/projects/%d/", project.ID))
}

// pageProject resolves the :id param for the page surface, writing the
// response itself on failure.
func (h *Handler) pageProject(c *gin.Context) (*database.Project, error) {
	user := currentUser(c)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return nil, err
	}

	project, err := h.db.GetProject(c.Request.Context(), user.ID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.String(http.StatusNotFound, "not found")
		} else {
			log.Error("failed to load project page", "error", err)
			c.String(http.StatusInternalServerError, "internal error")
		}
		return nil, err
	}
	return project, nil
}

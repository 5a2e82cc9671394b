package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/api/models"
	"github.com/workdeskapp/workdesk/internal/database"
)

// GetPreferences returns the caller's preference row, creating it with
// defaults on first access.
func (h *Handler) GetPreferences(c *gin.Context) {
	user := currentUser(c)

	pref, err := h.db.GetOrCreatePreference(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, models.ToPreference(pref))
}

// UpdatePreferences overwrites the mutable keys present in the body.
// Unknown keys are dropped by the decoder and a malformed body counts as
// an empty payload, so an authenticated update always acknowledges.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	user := currentUser(c)

	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = models.UpdatePreferencesRequest{}
	}

	patch := database.PreferencePatch{
		Theme:         req.Theme,
		LastProjectID: req.LastProjectID,
		WindowBounds:  req.WindowBounds,
	}
	if _, err := h.db.UpdatePreference(c.Request.Context(), user.ID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

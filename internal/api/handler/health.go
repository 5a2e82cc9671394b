package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the unauthenticated liveness endpoint the desktop launcher
// polls while waiting for the server to come up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

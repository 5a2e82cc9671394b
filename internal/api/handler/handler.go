package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/api/models"
	"github.com/workdeskapp/workdesk/internal/database"
)

// Handler serves both the JSON API and the server-rendered pages.
type Handler struct {
	db *database.DB
}

func New(db *database.DB) *Handler {
	return &Handler{db: db}
}

// currentUser returns the identity placed on the context by the auth
// middleware. Handlers behind RequireAuth/RequireAuthAPI may rely on it.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

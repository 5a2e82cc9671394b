package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/api/models"
)

// RequireAuth protects the page surface. Unauthenticated requests are
// redirected to the login form.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionUserID)
		if userID == nil {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}

		id, ok := userID.(uint)
		if !ok {
			session.Clear()
			_ = session.Save()
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}

		c.Set("user", &models.User{
			ID:       id,
			Username: getSessionString(session, sessionUsername),
		})
		c.Next()
	}
}

// RequireAuthAPI protects the JSON surface. Unlike the page surface it
// answers with a JSON 401 instead of a redirect.
func (p *Provider) RequireAuthAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionUserID)
		id, ok := userID.(uint)
		if userID == nil || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("user", &models.User{
			ID:       id,
			Username: getSessionString(session, sessionUsername),
		})
		c.Next()
	}
}

package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/config"
	"github.com/workdeskapp/workdesk/internal/database"
)

const (
	sessionUserID   = "user_id"
	sessionUsername = "user_username"

	// landingPage is where authenticated users end up after login,
	// registration, or when revisiting the auth pages.
	landingPage = "/projects/"
)

// Provider implements local username/password authentication backed by the
// user table. Handlers only ever read identity from the session.
type Provider struct {
	db  *database.DB
	cfg *config.Config
}

// New creates a local credential provider.
func New(db *database.DB, cfg *config.Config) *Provider {
	return &Provider{db: db, cfg: cfg}
}

// saveSession stores the user identity in the session cookie. maxAge 0 makes
// the cookie expire when the client session ends.
func (p *Provider) saveSession(c *gin.Context, user *database.User, maxAge int) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUsername, user.Username)
	session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   p.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session.Save()
}

func isAuthenticated(c *gin.Context) bool {
	return sessions.Default(c).Get(sessionUserID) != nil
}

func getSessionString(session sessions.Session, key string) string {
	if v, ok := session.Get(key).(string); ok {
		return v
	}
	return ""
}

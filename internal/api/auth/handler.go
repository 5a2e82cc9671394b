package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/workdeskapp/workdesk/internal/database"
)

// invalidCredentials is shown for unknown usernames and wrong passwords
// alike, so a failed login never reveals which one it was.
const invalidCredentials = "invalid username or password"

// LoginPage renders the login form.
func (p *Provider) LoginPage(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, landingPage)
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates a username/password form post and establishes a
// session. With remember_me checked the session lives for the configured
// number of days, otherwise it expires when the client session ends.
func (p *Provider) Login(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, landingPage)
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")
	remember := c.PostForm("remember_me") != ""

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "username and password are required",
			"Username": username,
		})
		return
	}

	user, err := p.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil || !user.CheckPassword(password) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    invalidCredentials,
			"Username": username,
		})
		return
	}

	maxAge := 0
	if remember {
		maxAge = p.cfg.Session.RememberDays * 24 * 60 * 60
	}
	if err := p.saveSession(c, user, maxAge); err != nil {
		log.Error("failed to save session", "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error":    "something went wrong, please try again",
			"Username": username,
		})
		return
	}

	c.Redirect(http.StatusFound, landingPage)
}

// RegisterPage renders the registration form.
func (p *Provider) RegisterPage(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, landingPage)
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates a new account and logs it in immediately.
func (p *Provider) Register(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, landingPage)
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if msg := p.validateRegistration(username, password); msg != "" {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    msg,
			"Username": username,
		})
		return
	}

	user, err := p.db.CreateUser(c.Request.Context(), username, password)
	if err != nil {
		msg := "something went wrong, please try again"
		if err == database.ErrUsernameTaken {
			msg = "that username is already taken"
		} else {
			log.Error("failed to create user", "error", err)
		}
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    msg,
			"Username": username,
		})
		return
	}

	if err := p.saveSession(c, user, 0); err != nil {
		log.Error("failed to save session", "error", err)
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	c.Redirect(http.StatusFound, landingPage)
}

func (p *Provider) validateRegistration(username, password string) string {
	if username == "" || password == "" {
		return "username and password are required"
	}
	if len(password) < p.cfg.Auth.MinPasswordLength {
		return fmt.Sprintf("password must be at least %d characters", p.cfg.Auth.MinPasswordLength)
	}
	return ""
}

// Logout terminates the session and redirects to the login page.
// Only routed as POST so a plain link fetch can't trigger it.
func (p *Provider) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

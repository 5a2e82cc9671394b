package api

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/workdeskapp/workdesk/internal/api/auth"
	"github.com/workdeskapp/workdesk/internal/api/handler"
	"github.com/workdeskapp/workdesk/internal/config"
	"github.com/workdeskapp/workdesk/internal/database"
	"github.com/workdeskapp/workdesk/web"
)

// Server serves the JSON API and the server-rendered pages over a shared
// session-cookie authenticated gin engine.
type Server struct {
	cfg       *config.Config
	db        *database.DB
	ginEngine *gin.Engine
	auth      *auth.Provider
}

func New(cfg *config.Config, db *database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		db:        db,
		ginEngine: gin.New(),
		auth:      auth.New(db, cfg),
	}
	s.ginEngine.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.ginEngine.SetHTMLTemplate(tmpl)

	s.setupSession()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	key := s.cfg.Session.Key
	if key == "" {
		key = uuid.NewString()
		log.Warn("no session key configured, sessions won't survive a server restart")
	}

	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(s.cfg.Session.CookieName, store))
}

func (s *Server) setupRoutes() {
	h := handler.New(s.db)

	// Liveness for the desktop launcher, no session required.
	s.ginEngine.GET("/api/health/", h.Health)

	s.ginEngine.GET("/auth/login", s.auth.LoginPage)
	s.ginEngine.POST("/auth/login", s.auth.Login)
	s.ginEngine.GET("/auth/register", s.auth.RegisterPage)
	s.ginEngine.POST("/auth/register", s.auth.Register)

	pages := s.ginEngine.Group("/")
	pages.Use(s.auth.RequireAuth())
	pages.GET("", h.Home)
	pages.POST("/auth/logout", s.auth.Logout)
	pages.GET("/projects/", h.ProjectListPage)
	pages.POST("/projects/", h.CreateProjectForm)
	pages.GET("/projects/:id/", h.ProjectDetailPage)
	pages.POST("/projects/:id/", h.ProjectDetailForm)

	api := s.ginEngine.Group("/api")
	api.Use(s.auth.RequireAuthAPI())
	api.GET("/projects/", h.ListProjects)
	api.POST("/projects/", h.CreateProject)
	api.GET("/projects/:id/", h.GetProject)
	api.PUT("/projects/:id/", h.UpdateProject)
	api.DELETE("/projects/:id/", h.DeleteProject)
	api.GET("/preferences/", h.GetPreferences)
	api.POST("/preferences/", h.UpdatePreferences)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}

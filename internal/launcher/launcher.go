// Package launcher is the desktop shell around the server: it waits for
// the health endpoint to answer and then opens the app in a browser
// window. It only ever consumes the health-check contract; everything
// else goes through the normal HTTP surface.
package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/workdeskapp/workdesk/internal/config"
)

// chromiumBrowsers are probed in order when no browser is configured.
// Any of them can render a plain app window via --app.
var chromiumBrowsers = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"microsoft-edge",
	"brave-browser",
}

type Launcher struct {
	cfg       *config.LaunchConfig
	serverURL string
	interval  time.Duration
	client    *http.Client
}

func New(cfg *config.Config) *Launcher {
	return &Launcher{
		cfg:       cfg.Launch,
		serverURL: cfg.ServerURL,
		interval:  time.Duration(cfg.Launch.HealthIntervalSeconds) * time.Second,
		client:    &http.Client{Timeout: 2 * time.Second},
	}
}

// WaitForServer polls the health endpoint at a fixed interval for a
// bounded number of attempts. There is no backoff and no remediation
// beyond the returned error.
func (l *Launcher) WaitForServer(ctx context.Context) error {
	for attempt := 1; attempt <= l.cfg.HealthAttempts; attempt++ {
		if l.healthy(ctx) {
			log.Info("server is ready", "attempts", attempt)
			return nil
		}
		log.Debug("waiting for server", "attempt", attempt, "max", l.cfg.HealthAttempts)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.interval):
		}
	}
	return fmt.Errorf("server did not become healthy after %d attempts", l.cfg.HealthAttempts)
}

func (l *Launcher) healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.serverURL+"/api/health/", nil)
	if err != nil {
		return false
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close() //nolint:errcheck
	return resp.StatusCode == http.StatusOK
}

// OpenWindow opens the app in a desktop window and blocks until it is
// closed. Without a chromium-based browser it falls back to the OS URL
// opener, which returns immediately; in that case it blocks on ctx so the
// server keeps running behind the detached tab.
func (l *Launcher) OpenWindow(ctx context.Context) error {
	if browser := l.findBrowser(); browser != "" {
		log.Info("opening app window", "browser", browser, "url", l.serverURL)
		cmd := exec.CommandContext(ctx, browser,
			fmt.Sprintf("--app=%s", l.serverURL),
			fmt.Sprintf("--window-size=%d,%d", l.cfg.WindowWidth, l.cfg.WindowHeight),
		)
		return cmd.Run()
	}

	log.Info("no app-mode browser found, opening in default browser", "url", l.serverURL)
	if err := l.openDefault(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (l *Launcher) findBrowser() string {
	if l.cfg.Browser != "" {
		if path, err := exec.LookPath(l.cfg.Browser); err == nil {
			return path
		}
		log.Warn("configured browser not found", "browser", l.cfg.Browser)
		return ""
	}
	for _, name := range chromiumBrowsers {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func (l *Launcher) openDefault(ctx context.Context) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", l.serverURL)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", l.serverURL)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", l.serverURL)
	}
	return cmd.Run()
}

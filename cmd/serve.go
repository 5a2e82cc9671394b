package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/workdeskapp/workdesk/internal/api"
	"github.com/workdeskapp/workdesk/internal/config"
	"github.com/workdeskapp/workdesk/internal/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workdesk server",
	Long:  `Start the workdesk server without opening a desktop window.`,
	Example: `workdesk serve --config config.yml
workdesk serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, server := mustSetup()

	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal to shut down
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("workdesk started successfully")
	<-c
	log.Info("shutting down...")
}

// mustSetup loads the config, opens the database and builds the server,
// exiting on any failure.
func mustSetup() (*config.Config, *api.Server) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	server, err := api.New(cfg, db, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	return cfg, server
}

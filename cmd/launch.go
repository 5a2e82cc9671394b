package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/workdeskapp/workdesk/internal/launcher"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the server and open it in a desktop window",
	Long:  `Start the workdesk server, wait for it to answer health checks, then open it in a browser app window. Closing the window stops the server.`,
	Run:   launch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func launch(cmd *cobra.Command, _ []string) {
	cfg, server := mustSetup()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Ctrl-C closes the window and takes the server down with it.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	l := launcher.New(cfg)
	if err := l.WaitForServer(ctx); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}

	if err := l.OpenWindow(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("failed to open app window: %v", err)
	}
	log.Info("app window closed, shutting down")
}

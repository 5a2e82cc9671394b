package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/workdeskapp/workdesk/internal/config"
	"github.com/workdeskapp/workdesk/internal/database"
)

var resetCmdFlags struct {
	Yes bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the database",
	Long:  `Drop all users, projects and preferences and re-create an empty schema. This cannot be undone.`,
	Run:   reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Yes, "yes", false, "Confirm wiping the database")

	rootCmd.AddCommand(resetCmd)
}

func reset(_ *cobra.Command, _ []string) {
	if !resetCmdFlags.Yes {
		log.Fatal("refusing to wipe the database without --yes")
	}

	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	if err := db.Reset(); err != nil {
		log.Fatalf("failed to reset database: %v", err)
	}

	log.Info("database wiped, schema re-created")
}

package main

import (
	"github.com/dormdash/campus-eats/internal/config"
	"github.com/dormdash/campus-eats/internal/db"
	"github.com/spf13/cobra"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the catalog schema and demo data to Postgres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		return db.Migrate(cfg.Database, migrateDown)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back every migration")
	rootCmd.AddCommand(migrateCmd)
}

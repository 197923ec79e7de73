package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.InitSchema(config.GetDB())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

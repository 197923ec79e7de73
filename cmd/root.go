package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibhu927/pg-next-full/app/config"
)

var rootCmd = &cobra.Command{
	Use:   "pg-manager",
	Short: "Paying-guest accommodation management service",
	Long: `PG Manager tracks properties, rooms, tenants and rent payments for
paying-guest accommodation owners, with a tenant-side UPI payment workflow.

Run without a subcommand to start the HTTP server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trading-journal",
	Short: "Trading journal API and performance analytics",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Study planner",
	Long: `A single-user study planner: tasks with dates, priorities and reminders.

Tasks are stored per planner. The planner name comes from planner.toml in the
current directory or one of its parents, and defaults to "default".`,
	SilenceUsage: true,
}

// Global flags
var (
	jsonOutput  bool
	plannerName string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&plannerName, "planner", "", "Planner to use instead of the configured one")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitGeneralError)
	}
}

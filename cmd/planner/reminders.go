package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/reminder"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show upcoming reminders",
	Long: `Show the reminders a running planner would schedule: tasks with the
reminder flag and a due time still in the future.

Reminders are delivered only while 'planner serve' or 'planner tui' runs.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			entries := reminder.PlanAll(a.Service.Snapshot(), time.Now(), a.Location)
			printReminders(os.Stdout, entries, a.Location, jsonOutput)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(remindersCmd)
}

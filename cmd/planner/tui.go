package main

import (
	"context"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive planner",
	Long: `Open the interactive terminal planner.

Reminders are armed while it runs and show up inside the interface when
desktop notifications are not available.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		alerts := tui.NewAlertSink(16)

		withApp(app.Options{
			Reminders: true,
			Alerter:   alerts,
			Output:    alerts,
			// The screen belongs to the UI.
			Logger: log.New(io.Discard, "", 0),
		}, func(ctx context.Context, a *app.App) error {
			return tui.Run(ctx, a.Service, a.Location, alerts)
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/render"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show upcoming dated tasks",
	Long:  `Show the first eight dated tasks that are not done, in due order.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			m := render.Project(a.Service.Snapshot(), render.ViewState{}, a.Location)
			printTimeline(os.Stdout, m.Timeline, jsonOutput)
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how many tasks are done",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			m := render.Project(a.Service.Snapshot(), render.ViewState{}, a.Location)
			printProgress(os.Stdout, m.Progress, jsonOutput)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(progressCmd)
}

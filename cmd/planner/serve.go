package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/config"
	"github.com/studyplanner/planner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API for the configured planner in the foreground.

Reminders are armed while the server runs. Stop it with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		bind, _ := cmd.Flags().GetString("bind")

		cfg, err := resolveConfig()
		if err != nil {
			handleError(err)
		}
		if bind != "" {
			host, port, err := config.ParseBind(bind)
			if err != nil {
				handleError(&configError{err: err})
			}
			if host != "" {
				cfg.ServerHost = host
			}
			cfg.ServerPort = port
		}

		a, err := app.Open(context.Background(), cfg, app.Options{Reminders: true})
		if err != nil {
			handleError(&configError{err: err})
		}

		// Shutdown closes the app.
		srv := server.New(cfg.Addr(), a)
		if err := srv.ListenAndServe(); err != nil {
			a.Close()
			handleError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("bind", "", "Address to listen on (host:port or :port)")
}

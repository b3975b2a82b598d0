package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/service"
	"github.com/studyplanner/planner/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks",
	Long: `Export all tasks to a file.

The json format writes a backup that import reads back. yaml and ics
(calendar) are one-way exports. The default output file is
study-planner-backup.<format>; use -o - for stdout.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		formatName, _ := cmd.Flags().GetString("format")

		format, err := transfer.ParseFormat(formatName)
		if err != nil {
			handleError(err)
		}
		if output == "" {
			output = format.Filename()
		}

		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			if output == "-" {
				return runExport(os.Stdout, a, format)
			}
			if err := writeExportFile(output, a, format); err != nil {
				return err
			}
			printSuccess(os.Stdout, fmt.Sprintf("Exported %d tasks to %s", len(a.Service.Snapshot()), output), jsonOutput)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all tasks with a JSON backup",
	Long: `Replace every task with the contents of a JSON backup written by export.

The file must hold a JSON array of tasks; anything else is rejected and
the current tasks are kept. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := readImportFile(args[0])
		if err != nil {
			handleError(err)
		}

		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			n, err := runImport(ctx, a.Service, data)
			if err != nil {
				return err
			}
			printSuccess(os.Stdout, fmt.Sprintf("Imported %d tasks", n), jsonOutput)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output file, - for stdout")
	exportCmd.Flags().String("format", string(transfer.FormatJSON), "Export format (json, yaml, ics)")
}

func runExport(w io.Writer, a *app.App, format transfer.Format) error {
	return transfer.Export(w, a.Service.Snapshot(), format, time.Now(), a.Location)
}

func writeExportFile(path string, a *app.App, format transfer.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := runExport(f, a, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readImportFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func runImport(ctx context.Context, svc *service.TaskService, data []byte) (int, error) {
	return svc.Import(ctx, data)
}

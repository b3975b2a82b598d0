package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a planner in this directory",
	Long: `Create a planner.toml configuration file in the current directory.

Commands run in this directory or below use the named planner. The name
defaults to the directory name.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")

		cwd, err := os.Getwd()
		if err != nil {
			handleError(err)
		}

		name := defaultPlannerName(cwd)
		if len(args) == 1 {
			name = args[0]
		}

		if _, err := runInit(cwd, name, host, port); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Created %s for planner '%s'", config.ConfigFileName, name), jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("host", "", "Server host")
	initCmd.Flags().Int("port", 0, "Server port")
}

// runInit creates the planner.toml configuration file
func runInit(dir, name, host string, port int) (string, error) {
	path, err := config.WriteProjectConfig(dir, name, host, port)
	if err != nil {
		return "", &configError{err: err}
	}
	return path, nil
}

// defaultPlannerName uses the directory name when it is a valid planner
// name.
func defaultPlannerName(dir string) string {
	name := filepath.Base(dir)
	if config.ValidatePlannerName(name) != nil {
		return config.DefaultPlanner
	}
	return name
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/query"
	"github.com/studyplanner/planner/internal/render"
	"github.com/studyplanner/planner/internal/service"
)

const reminderHint = "Reminders fire while 'planner serve' or 'planner tui' is running."

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the planner.

The date must be YYYY-MM-DD and the time HH:MM. Priority is high, medium
or low and defaults to medium.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		draft := draftFromFlags(cmd, domain.Draft{Title: args[0]})

		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			task, err := a.Service.Create(ctx, draft)
			if err != nil {
				return err
			}
			printTask(os.Stdout, task, jsonOutput)
			if task.Remind && !jsonOutput {
				fmt.Fprintln(os.Stderr, reminderHint)
			}
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, filtered by status and search text.

Status is all, todo or done. Sort is date (undated last), priority or
created (oldest first, the default). Search matches title and description,
case-insensitively.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		vs := viewStateFromFlags(cmd)

		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			runList(os.Stdout, a.Service.Snapshot(), vs, a.Location, jsonOutput)
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			task, err := a.Service.Get(args[0])
			if err != nil {
				return err
			}
			printTask(os.Stdout, task, jsonOutput)
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long: `Edit a task. Flags that are given replace the current values; the others
are kept. Pass an empty value to clear the date or time, for example
--date "".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			task, err := runEdit(ctx, a.Service, args[0], func(current domain.Draft) domain.Draft {
				return draftFromFlags(cmd, current)
			})
			if err != nil {
				return err
			}
			printTask(os.Stdout, task, jsonOutput)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Long:  `Delete a task after confirmation. Use --yes to skip the prompt.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")

		var confirmer service.Confirmer = newPromptConfirmer(os.Stdin, os.Stderr)
		if yes {
			confirmer = service.AlwaysConfirm
		}

		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			deleted, err := runDelete(ctx, a.Service, args[0], confirmer)
			if err != nil {
				return err
			}
			if deleted {
				printSuccess(os.Stdout, fmt.Sprintf("Deleted task %s", args[0]), jsonOutput)
			} else {
				printSuccess(os.Stdout, "Cancelled", jsonOutput)
			}
			return nil
		})
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between done and todo",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withApp(app.Options{}, func(ctx context.Context, a *app.App) error {
			task, err := runToggle(ctx, a.Service, args[0])
			if err != nil {
				return err
			}
			printTask(os.Stdout, task, jsonOutput)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(doneCmd)

	addDraftFlags(addCmd)
	addDraftFlags(editCmd)
	editCmd.Flags().String("title", "", "Task title")

	listCmd.Flags().String("status", string(query.StatusAll), "Status filter (all, todo, done)")
	listCmd.Flags().String("search", "", "Search text")
	listCmd.Flags().String("sort", string(query.SortCreated), "Sort key (created, date, priority)")

	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}

func addDraftFlags(c *cobra.Command) {
	c.Flags().StringP("description", "d", "", "Task description")
	c.Flags().String("date", "", "Due date (YYYY-MM-DD)")
	c.Flags().String("time", "", "Due time (HH:MM)")
	c.Flags().StringP("priority", "p", "", "Priority (high, medium, low)")
	c.Flags().Bool("remind", false, "Remind at the due time")
}

// draftFromFlags overwrites the fields of base whose flags were given.
func draftFromFlags(cmd *cobra.Command, base domain.Draft) domain.Draft {
	flags := cmd.Flags()

	if flags.Lookup("title") != nil && flags.Changed("title") {
		base.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		base.Description, _ = flags.GetString("description")
	}
	if flags.Changed("date") {
		v, _ := flags.GetString("date")
		base.Date = &v
	}
	if flags.Changed("time") {
		v, _ := flags.GetString("time")
		base.Time = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		base.Priority = domain.Priority(v)
	}
	if flags.Changed("remind") {
		base.Remind, _ = flags.GetBool("remind")
	}
	return base
}

func viewStateFromFlags(cmd *cobra.Command) render.ViewState {
	status, _ := cmd.Flags().GetString("status")
	search, _ := cmd.Flags().GetString("search")
	sort, _ := cmd.Flags().GetString("sort")
	return render.ViewState{
		Status: query.ParseStatus(status),
		Search: search,
		Sort:   query.ParseSort(sort),
	}
}

// runList prints the tasks selected by the view state.
func runList(w io.Writer, tasks []domain.Task, vs render.ViewState, loc *time.Location, jsonOutput bool) {
	selected := query.List(tasks, query.Params{Status: vs.Status, Search: vs.Search, Sort: vs.Sort, Loc: loc})
	printTaskList(w, selected, jsonOutput)
}

// runEdit applies edit to the task's current values and saves the result.
func runEdit(ctx context.Context, svc *service.TaskService, id string, edit func(domain.Draft) domain.Draft) (*domain.Task, error) {
	current, err := svc.Get(id)
	if err != nil {
		return nil, err
	}
	updated, err := svc.Update(ctx, id, edit(domain.DraftOf(*current)))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NewTaskNotFoundError(id)
	}
	return updated, nil
}

// runDelete deletes a task. Unknown ids are reported as not found rather
// than as a declined confirmation.
func runDelete(ctx context.Context, svc *service.TaskService, id string, c service.Confirmer) (bool, error) {
	if _, err := svc.Get(id); err != nil {
		return false, err
	}
	return svc.Delete(ctx, id, c)
}

func runToggle(ctx context.Context, svc *service.TaskService, id string) (*domain.Task, error) {
	task, err := svc.ToggleDone(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NewTaskNotFoundError(id)
	}
	return task, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/reminder"
	"github.com/studyplanner/planner/internal/render"
)

const progressBarWidth = 20

func printJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printTask prints a single task to the writer
func printTask(w io.Writer, task *domain.Task, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, task)
		return
	}

	item := render.Item(*task)
	status := "todo"
	if task.Done {
		status = "done"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	fmt.Fprintf(tw, "Status:\t%s\n", status)
	fmt.Fprintf(tw, "Priority:\t%s\n", item.Priority)
	if item.Due != "" {
		fmt.Fprintf(tw, "Due:\t%s\n", strings.TrimPrefix(item.Due, "Due: "))
	}
	if task.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", task.Description)
	}
	if task.Remind {
		fmt.Fprintf(tw, "Reminder:\ton\n")
	}
	fmt.Fprintf(tw, "Created:\t%s\n", task.Created.Time().Local().Format("2006-01-02 15:04:05"))
	tw.Flush()
}

// printTaskList prints the list view. JSON output carries the full tasks.
func printTaskList(w io.Writer, tasks []domain.Task, jsonOutput bool) {
	if jsonOutput {
		if tasks == nil {
			tasks = []domain.Task{}
		}
		printJSON(w, map[string]interface{}{
			"data":  tasks,
			"total": len(tasks),
		})
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, render.EmptyListMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTITLE\tPRIORITY\tDUE\tSTATUS\n")
	fmt.Fprintf(tw, "--\t-----\t--------\t---\t------\n")
	for _, t := range tasks {
		item := render.Item(t)
		status := "todo"
		if item.Done {
			status = "done"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.ID, truncate(item.Title, 40), item.Badge, strings.TrimPrefix(item.Due, "Due: "), status)
	}
	tw.Flush()
}

// printTimeline prints the upcoming dated tasks.
func printTimeline(w io.Writer, items []render.TimelineItem, jsonOutput bool) {
	if jsonOutput {
		if items == nil {
			items = []render.TimelineItem{}
		}
		printJSON(w, items)
		return
	}

	if len(items) == 0 {
		fmt.Fprintln(w, render.EmptyTimelineMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DATE\tTIME\tTITLE\tDESCRIPTION\n")
	fmt.Fprintf(tw, "----\t----\t-----\t-----------\n")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			item.Date, item.Time, truncate(item.Title, 40), truncate(item.Description, 40))
	}
	tw.Flush()
}

// printProgress prints the completion summary with a text bar.
func printProgress(w io.Writer, bar render.ProgressBar, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, bar)
		return
	}

	filled := bar.Percent * progressBarWidth / 100
	fmt.Fprintf(w, "[%s%s] %s (%d%%)\n",
		strings.Repeat("#", filled), strings.Repeat("-", progressBarWidth-filled), bar.Text, bar.Percent)
}

// printReminders prints planned reminders in loc.
func printReminders(w io.Writer, entries []reminder.Entry, loc *time.Location, jsonOutput bool) {
	if jsonOutput {
		if entries == nil {
			entries = []reminder.Entry{}
		}
		printJSON(w, entries)
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No reminders scheduled")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTITLE\tDUE\tFIRES AT\n")
	fmt.Fprintf(tw, "--\t-----\t---\t--------\n")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.TaskID, truncate(e.Title, 40),
			e.DueAt.In(loc).Format("2006-01-02 15:04"),
			e.FireAt.In(loc).Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	details := validationDetails(err)

	if jsonOutput {
		body := map[string]interface{}{
			"message": err.Error(),
		}
		if len(details) > 0 {
			body["details"] = details
		}
		printJSON(w, map[string]interface{}{"error": body})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
	if len(details) > 1 {
		for _, d := range details {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, map[string]interface{}{
			"message": message,
		})
		return
	}

	fmt.Fprintln(w, message)
}

// truncate truncates a string to the specified length in runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

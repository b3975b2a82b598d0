// Package render projects the task list and the current view state into a
// UI-agnostic render model. The CLI, the HTTP API and the terminal UI all
// draw from the same model.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/query"
)

// Messages shown for empty views.
const (
	EmptyListMessage     = "No tasks found."
	EmptyTimelineMessage = "No upcoming tasks with dates."
)

// ViewState is the user-selected state of the list view.
type ViewState struct {
	Status query.Status  `json:"status"`
	Search string        `json:"search"`
	Sort   query.SortKey `json:"sort"`
}

// Model is everything a UI needs to draw the three views.
type Model struct {
	List          []ListItem     `json:"list"`
	Timeline      []TimelineItem `json:"timeline"`
	Progress      ProgressBar    `json:"progress"`
	EmptyList     string         `json:"empty_list,omitempty"`
	EmptyTimeline string         `json:"empty_timeline,omitempty"`
}

// ListItem is one row of the task list.
type ListItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Badge       string `json:"badge"`
	Priority    string `json:"priority"`
	Due         string `json:"due,omitempty"`
	Description string `json:"description,omitempty"`
	Done        bool   `json:"done"`
	ToggleLabel string `json:"toggle_label"`
}

// TimelineItem is one entry of the timeline.
type TimelineItem struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProgressBar is the completion summary.
type ProgressBar struct {
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Text    string `json:"text"`
}

// Project builds the render model. loc is the location dates are
// interpreted in; nil means local time.
func Project(tasks []domain.Task, vs ViewState, loc *time.Location) Model {
	var m Model

	list := query.List(tasks, query.Params{Status: vs.Status, Search: vs.Search, Sort: vs.Sort, Loc: loc})
	m.List = make([]ListItem, 0, len(list))
	for _, t := range list {
		m.List = append(m.List, Item(t))
	}
	if len(m.List) == 0 {
		m.EmptyList = EmptyListMessage
	}

	timeline := query.Timeline(tasks, loc)
	m.Timeline = make([]TimelineItem, 0, len(timeline))
	for _, t := range timeline {
		m.Timeline = append(m.Timeline, TimelineItem{
			ID:          t.ID,
			Date:        deref(t.Date),
			Time:        deref(t.Time),
			Title:       t.Title,
			Description: t.Description,
		})
	}
	if len(m.Timeline) == 0 {
		m.EmptyTimeline = EmptyTimelineMessage
	}

	m.Progress = Progress(query.ComputeProgress(tasks))
	return m
}

// Item projects a single task into a list row.
func Item(t domain.Task) ListItem {
	priority := string(t.Priority)
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}

	item := ListItem{
		ID:          t.ID,
		Title:       t.Title,
		Badge:       strings.ToUpper(priority),
		Priority:    priority,
		Due:         DueLabel(t),
		Description: t.Description,
		Done:        t.Done,
		ToggleLabel: "Done",
	}
	if t.Done {
		item.ToggleLabel = "Undo"
	}
	return item
}

// DueLabel renders "Due: <date>[ <time>]", or "" for undated tasks.
func DueLabel(t domain.Task) string {
	if !t.HasDate() {
		return ""
	}
	label := "Due: " + *t.Date
	if t.Time != nil && *t.Time != "" {
		label += " " + *t.Time
	}
	return label
}

// Progress renders the progress summary.
func Progress(p query.Progress) ProgressBar {
	return ProgressBar{
		Done:    p.Done,
		Total:   p.Total,
		Percent: p.Percent,
		Text:    fmt.Sprintf("%d / %d completed", p.Done, p.Total),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

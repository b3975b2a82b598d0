// Package query implements the read-side pipeline over the task list:
// status filter, text search and sort for the list view, plus the fixed
// timeline and progress views. All functions are pure and never modify
// their input.
package query

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/studyplanner/planner/internal/domain"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll  Status = "all"
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// SortKey selects the list ordering.
type SortKey string

const (
	SortDate     SortKey = "date"
	SortPriority SortKey = "priority"
	SortCreated  SortKey = "created"
)

// TimelineLimit is the number of tasks shown in the timeline view.
const TimelineLimit = 8

// ParseStatus parses a status filter. Unknown values mean all.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo
	case StatusDone:
		return StatusDone
	default:
		return StatusAll
	}
}

// ParseSort parses a sort key. Unknown values mean created.
func ParseSort(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortDate:
		return SortDate
	case SortPriority:
		return SortPriority
	default:
		return SortCreated
	}
}

// Params is the view state of the list view.
type Params struct {
	Status Status
	Search string
	Sort   SortKey
	// Loc is the location dates and times are interpreted in; nil means local time.
	Loc *time.Location
}

// List applies filter, search and sort to tasks.
func List(tasks []domain.Task, p Params) []domain.Task {
	q := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesStatus(t, p.Status) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title+" "+t.Description), q) {
			continue
		}
		out = append(out, t)
	}

	switch ParseSort(string(p.Sort)) {
	case SortDate:
		sortByDate(out, p.Loc)
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	default:
		sortByCreated(out)
	}
	return out
}

// Timeline returns the upcoming view: tasks with a date that are not done,
// ordered by due instant, at most TimelineLimit of them.
func Timeline(tasks []domain.Task, loc *time.Location) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.HasDate() && !t.Done {
			out = append(out, t)
		}
	}
	sortByDate(out, loc)
	if len(out) > TimelineLimit {
		out = out[:TimelineLimit]
	}
	return out
}

// Progress summarizes completion over the whole store.
type Progress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// ComputeProgress counts done tasks and the rounded completion percentage.
// An empty store is 0%.
func ComputeProgress(tasks []domain.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Done {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Floor(float64(p.Done)*100/float64(p.Total) + 0.5))
	}
	return p
}

func matchesStatus(t domain.Task, s Status) bool {
	switch ParseStatus(string(s)) {
	case StatusTodo:
		return !t.Done
	case StatusDone:
		return t.Done
	default:
		return true
	}
}

// sortByDate orders dated tasks by due instant, then undated tasks by
// creation time. Equal instants keep their relative order.
func sortByDate(tasks []domain.Task, loc *time.Location) {
	type entry struct {
		task domain.Task
		due  time.Time
		ok   bool
	}
	entries := make([]entry, len(tasks))
	for i, t := range tasks {
		due, ok := t.DueInstant(loc)
		entries[i] = entry{task: t, due: due, ok: ok}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case !a.ok && !b.ok:
			return a.task.Created < b.task.Created
		case !a.ok:
			return false
		case !b.ok:
			return true
		default:
			return a.due.Before(b.due)
		}
	})

	for i, e := range entries {
		tasks[i] = e.task
	}
}

func sortByCreated(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Created < tasks[j].Created
	})
}

package domain

import (
	"strings"
	"time"
)

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium" // Default priority
	PriorityLow    Priority = "low"
)

// Layouts used for the date and time fields of a task.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ValidPriorities contains all valid priority values, ordered by rank.
var ValidPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid checks if the priority is a known priority value.
func (p Priority) IsValid() bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Rank returns the sort rank of the priority: high(0) < medium(1) < low(2).
// Unknown priorities rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// ParsePriority parses a priority name case-insensitively.
// An empty string yields the default priority.
func ParsePriority(s string) (Priority, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, true
	}
	p := Priority(s)
	return p, p.IsValid()
}

// Millis is a Unix timestamp in milliseconds.
type Millis int64

// MillisOf converts a time to Millis.
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts the timestamp back to a time.Time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// Task represents a single plannable item.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description,omitempty"`
	Date        *string  `json:"date" yaml:"date,omitempty"`
	Time        *string  `json:"time" yaml:"time,omitempty"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Remind      bool     `json:"remind" yaml:"remind"`
	Created     Millis   `json:"created" yaml:"created"`
	Done        bool     `json:"done" yaml:"done"`
}

// NewTask creates a task from a normalized draft. The draft is expected to
// have passed Validate.
func NewTask(d Draft, id string, created time.Time) *Task {
	t := &Task{
		ID:      id,
		Created: MillisOf(created),
	}
	t.Apply(d)
	return t
}

// Apply overwrites every mutable field with the draft's values.
// ID, Created and Done are left untouched.
func (t *Task) Apply(d Draft) {
	t.Title = d.Title
	t.Description = d.Description
	t.Date = d.Date
	t.Time = d.Time
	t.Priority = d.Priority
	t.Remind = d.Remind
}

// HasDate reports whether the task has a due date.
func (t *Task) HasDate() bool {
	return t.Date != nil && *t.Date != ""
}

// DueInstant combines the date and optional time into one instant in loc.
// A missing time means the start of the day. It returns false when the task
// has no date or the stored values do not parse.
func (t *Task) DueInstant(loc *time.Location) (time.Time, bool) {
	if !t.HasDate() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	value := *t.Date + "T00:00"
	if t.Time != nil && *t.Time != "" {
		value = *t.Date + "T" + *t.Time
	}

	due, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// Normalize repairs records that were loaded or imported: unknown or missing
// priorities become medium and empty date/time strings become absent.
func (t *Task) Normalize() {
	if !t.Priority.IsValid() {
		t.Priority = PriorityMedium
	}
	if t.Date != nil && strings.TrimSpace(*t.Date) == "" {
		t.Date = nil
	}
	if t.Time != nil && strings.TrimSpace(*t.Time) == "" {
		t.Time = nil
	}
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	if t.Date != nil {
		d := *t.Date
		t.Date = &d
	}
	if t.Time != nil {
		tm := *t.Time
		t.Time = &tm
	}
	return t
}

// Draft holds the user-editable values of a task, as entered in a form.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        *string  `json:"date,omitempty"`
	Time        *string  `json:"time,omitempty"`
	Priority    Priority `json:"priority"`
	Remind      bool     `json:"remind"`
}

// DraftOf returns the draft matching the task's current values.
func DraftOf(t Task) Draft {
	t = t.Clone()
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Time:        t.Time,
		Priority:    t.Priority,
		Remind:      t.Remind,
	}
}

// Normalize trims the text fields, drops empty date/time values and applies
// the default priority.
func (d *Draft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Date = trimOptional(d.Date)
	d.Time = trimOptional(d.Time)
	if strings.TrimSpace(string(d.Priority)) == "" {
		d.Priority = PriorityMedium
	} else {
		d.Priority = Priority(strings.ToLower(strings.TrimSpace(string(d.Priority))))
	}
}

// Validate validates a normalized draft and returns the list of problems.
func (d *Draft) Validate() []string {
	var errors []string

	if d.Title == "" {
		errors = append(errors, "title is required")
	}

	if d.Date != nil {
		if _, err := time.Parse(DateLayout, *d.Date); err != nil {
			errors = append(errors, "date must be YYYY-MM-DD")
		}
	}

	if d.Time != nil {
		if _, err := time.Parse(TimeLayout, *d.Time); err != nil {
			errors = append(errors, "time must be HH:MM")
		}
	}

	if !d.Priority.IsValid() {
		errors = append(errors, "priority must be one of high, medium, low")
	}

	return errors
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

package planner

import "time"

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll  Status = "all"
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// Sort selects the list order.
type Sort string

const (
	// SortDate orders by due date, undated tasks last.
	SortDate Sort = "date"
	// SortPriority orders high before medium before low.
	SortPriority Sort = "priority"
	// SortCreated orders oldest first, in creation order.
	SortCreated Sort = "created"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// Permission is the notification permission of the server process.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Task is a planner task. Created is milliseconds since the Unix epoch.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Priority    Priority `json:"priority"`
	Remind      bool     `json:"remind"`
	Created     int64    `json:"created"`
	Done        bool     `json:"done"`
}

// CreatedAt returns the creation time.
func (t *Task) CreatedAt() time.Time {
	return time.UnixMilli(t.Created)
}

// TaskList is a list of tasks with its size.
type TaskList struct {
	Tasks []*Task `json:"data"`
	Total int     `json:"total"`
}

// TimelineItem is one entry of the timeline.
type TimelineItem struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Progress is the completion summary.
type Progress struct {
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Text    string `json:"text"`
}

// Reminder is a reminder armed in the server process.
type Reminder struct {
	TaskID string    `json:"task_id"`
	Title  string    `json:"title"`
	DueAt  time.Time `json:"due_at"`
	FireAt time.Time `json:"fire_at"`
}

// taskInput is the body of create and update requests.
type taskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Remind      bool    `json:"remind"`
}

func inputOf(t *Task) taskInput {
	return taskInput{
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Time:        t.Time,
		Priority:    string(t.Priority),
		Remind:      t.Remind,
	}
}

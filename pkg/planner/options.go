package planner

import "time"

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	host     string
	port     int
	timezone string
	timeout  time.Duration
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		host:    "localhost",
		port:    7480,
		timeout: 30 * time.Second,
	}
}

// WithHost sets the server host.
func WithHost(host string) ClientOption {
	return func(c *clientConfig) {
		c.host = host
	}
}

// WithPort sets the server port.
func WithPort(port int) ClientOption {
	return func(c *clientConfig) {
		c.port = port
	}
}

// WithTimezone sets the IANA zone the server interprets task dates in.
// Without it the server's local zone is used.
func WithTimezone(name string) ClientOption {
	return func(c *clientConfig) {
		c.timezone = name
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// TaskOption sets a field of a task on create or update.
type TaskOption func(*taskInput)

// WithTitle sets the task title. Only meaningful for UpdateTask.
func WithTitle(title string) TaskOption {
	return func(t *taskInput) {
		t.Title = title
	}
}

// WithDescription sets the task description.
func WithDescription(desc string) TaskOption {
	return func(t *taskInput) {
		t.Description = desc
	}
}

// WithDate sets the due date (YYYY-MM-DD). An empty string clears it.
func WithDate(date string) TaskOption {
	return func(t *taskInput) {
		t.Date = &date
	}
}

// WithTime sets the due time (HH:MM). An empty string clears it.
func WithTime(tm string) TaskOption {
	return func(t *taskInput) {
		t.Time = &tm
	}
}

// WithPriority sets the task priority.
func WithPriority(p Priority) TaskOption {
	return func(t *taskInput) {
		t.Priority = string(p)
	}
}

// WithRemind turns the reminder on or off.
func WithRemind(remind bool) TaskOption {
	return func(t *taskInput) {
		t.Remind = remind
	}
}

// ListTasksOption configures a ListTasks call.
type ListTasksOption func(*listTasksOptions)

// listTasksOptions holds options for listing tasks.
type listTasksOptions struct {
	status Status
	search string
	sort   Sort
}

// WithStatus filters tasks by status.
func WithStatus(status Status) ListTasksOption {
	return func(o *listTasksOptions) {
		o.status = status
	}
}

// WithSearch keeps tasks whose title or description contains text,
// ignoring case.
func WithSearch(text string) ListTasksOption {
	return func(o *listTasksOptions) {
		o.search = text
	}
}

// WithSort sets the list order.
func WithSort(sort Sort) ListTasksOption {
	return func(o *listTasksOptions) {
		o.sort = sort
	}
}

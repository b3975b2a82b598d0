// Package reminder schedules one-shot reminder notifications for tasks.
//
// The scheduler owns a table of pending reminders keyed by task id.
// Scheduling a task always cancels the previous entry for the same id, so a
// task has at most one pending reminder. Nothing is persisted; reminders
// live as long as the process.
package reminder

import (
	"context"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/studyplanner/planner/internal/domain"
)

// MaxDelay is the longest timer that is ever armed. A task due further out
// fires early, at this boundary; there is no re-arming.
const MaxDelay = 2147483647 * time.Millisecond

// NotificationTitle is the title of every reminder notification.
const NotificationTitle = "Study Reminder"

// Permission is the state of the notification permission.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Notification is a system notification request.
type Notification struct {
	Title string
	Body  string
	Tag   string
}

// Notifier delivers system notifications.
type Notifier interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, n Notification) error
}

// Alerter is the blocking fallback used when notifications are unavailable.
type Alerter interface {
	Alert(ctx context.Context, message string) error
}

// Lookup resolves the current version of a task at fire time.
type Lookup func(id string) (domain.Task, bool)

// Entry describes a pending reminder.
type Entry struct {
	TaskID string    `json:"task_id"`
	Title  string    `json:"title"`
	DueAt  time.Time `json:"due_at"`
	FireAt time.Time `json:"fire_at"`
}

// Plan computes when a reminder for t would fire. It returns false for tasks
// that do not want a reminder, have no date, or are already due.
func Plan(t domain.Task, now time.Time, loc *time.Location) (Entry, bool) {
	if !t.Remind {
		return Entry{}, false
	}
	due, ok := t.DueInstant(loc)
	if !ok {
		return Entry{}, false
	}
	delay := due.Sub(now)
	if delay <= 0 {
		return Entry{}, false
	}
	if delay > MaxDelay {
		delay = MaxDelay
	}
	return Entry{TaskID: t.ID, Title: t.Title, DueAt: due, FireAt: now.Add(delay)}, true
}

// PlanAll returns the reminders that would be scheduled for tasks, ordered
// by fire time.
func PlanAll(tasks []domain.Task, now time.Time, loc *time.Location) []Entry {
	var out []Entry
	for _, t := range tasks {
		if e, ok := Plan(t, now, loc); ok {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// Options configures a Scheduler.
type Options struct {
	Clock    Clock
	Notifier Notifier
	Alerter  Alerter
	Lookup   Lookup
	Location *time.Location
	Logger   *log.Logger
}

// Scheduler is the process-owned reminder table.
type Scheduler struct {
	clock    Clock
	notifier Notifier
	alerter  Alerter
	lookup   Lookup
	loc      *time.Location
	logger   *log.Logger

	mu      sync.Mutex
	entries map[string]*pending
	gen     uint64
	stopped bool
}

type pending struct {
	entry Entry
	task  domain.Task
	timer Timer
	gen   uint64
}

// New creates a Scheduler.
func New(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Scheduler{
		clock:    opts.Clock,
		notifier: opts.Notifier,
		alerter:  opts.Alerter,
		lookup:   opts.Lookup,
		loc:      opts.Location,
		logger:   opts.Logger,
		entries:  make(map[string]*pending),
	}
}

// Schedule arms a reminder for t, replacing any pending one for the same
// task. It returns false, leaving nothing pending for the task, when t does
// not want a reminder or its due instant has already passed.
func (s *Scheduler) Schedule(t domain.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(t.ID)
	if s.stopped {
		return false
	}

	now := s.clock.Now()
	e, ok := Plan(t, now, s.loc)
	if !ok {
		return false
	}

	s.gen++
	gen := s.gen
	id := t.ID
	p := &pending{entry: e, task: t.Clone(), gen: gen}
	p.timer = s.clock.AfterFunc(e.FireAt.Sub(now), func() {
		s.fire(id, gen)
	})
	s.entries[id] = p
	return true
}

// Cancel removes the pending reminder for a task. It reports whether one
// was pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(id)
}

// CancelAll removes every pending reminder.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.entries {
		s.cancelLocked(id)
	}
}

// Stop cancels everything and refuses further scheduling.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.entries {
		s.cancelLocked(id)
	}
	s.stopped = true
}

// Pending lists the pending reminders ordered by fire time.
func (s *Scheduler) Pending() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, p := range s.entries {
		out = append(out, p.entry)
	}
	sortEntries(out)
	return out
}

// Permission returns the current notification permission.
func (s *Scheduler) Permission() Permission {
	if s.notifier == nil {
		return PermissionDenied
	}
	return s.notifier.Permission()
}

// RequestPermission asks the platform for notification permission.
func (s *Scheduler) RequestPermission(ctx context.Context) (Permission, error) {
	if s.notifier == nil {
		return PermissionDenied, nil
	}
	return s.notifier.RequestPermission(ctx)
}

func (s *Scheduler) cancelLocked(id string) bool {
	p, ok := s.entries[id]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(s.entries, id)
	return true
}

func (s *Scheduler) fire(id string, gen uint64) {
	s.mu.Lock()
	p, ok := s.entries[id]
	if !ok || p.gen != gen {
		// cancelled or replaced after the timer started
		s.mu.Unlock()
		return
	}
	delete(s.entries, id)
	s.mu.Unlock()

	t := p.task
	if s.lookup != nil {
		current, ok := s.lookup(id)
		if !ok {
			s.logger.Printf("Reminder for %s skipped: task no longer exists", id)
			return
		}
		if !current.Remind {
			s.logger.Printf("Reminder for %s skipped: reminder turned off", id)
			return
		}
		if due, ok := current.DueInstant(s.loc); !ok || !due.Equal(p.entry.DueAt) {
			s.logger.Printf("Reminder for %s skipped: task was rescheduled", id)
			return
		}
		t = current
	}

	s.deliver(context.Background(), t)
}

func (s *Scheduler) deliver(ctx context.Context, t domain.Task) {
	if s.notifier != nil && s.notifier.Permission() == PermissionGranted {
		body := t.Title
		if t.Description != "" {
			body += " - " + t.Description
		}
		err := s.notifier.Notify(ctx, Notification{Title: NotificationTitle, Body: body, Tag: t.ID})
		if err == nil {
			return
		}
		s.logger.Printf("Notification for %s failed, falling back to alert: %v", t.ID, err)
	}

	if s.alerter == nil {
		return
	}
	if err := s.alerter.Alert(ctx, "Reminder: "+t.Title); err != nil {
		s.logger.Printf("Alert for %s failed: %v", t.ID, err)
	}
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FireAt.Before(entries[j].FireAt)
	})
}

// Package service holds the planner's task store object and its mutation API.
package service

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/reminder"
	"github.com/studyplanner/planner/internal/store"
	"github.com/studyplanner/planner/pkg/idgen"
)

// Reminders is the part of the reminder scheduler the service drives.
type Reminders interface {
	Schedule(t domain.Task) bool
	Cancel(id string) bool
	CancelAll()
	Pending() []reminder.Entry
	RequestPermission(ctx context.Context) (reminder.Permission, error)
}

// Options configures a TaskService. Only Store is required.
type Options struct {
	Store     *store.TaskStore
	Reminders Reminders
	Logger    *log.Logger
	Now       func() time.Time
	NewID     func() (string, error)
}

// TaskService owns the ordered task list and mirrors every change to the
// store. It is safe for concurrent use; mutations are serialized.
type TaskService struct {
	store     *store.TaskStore
	reminders Reminders
	logger    *log.Logger
	now       func() time.Time
	newID     func() (string, error)

	mu        sync.Mutex
	tasks     []domain.Task
	listeners []func([]domain.Task)
}

// NewTaskService creates a new TaskService. Call Load before use.
func NewTaskService(opts Options) *TaskService {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = idgen.Generate
	}
	return &TaskService{
		store:     opts.Store,
		reminders: opts.Reminders,
		logger:    opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		tasks:     []domain.Task{},
	}
}

// Load reads the persisted tasks and arms reminders for those that want one.
// Notification permission is requested once when any loaded task has
// reminders enabled.
func (s *TaskService) Load(ctx context.Context) {
	loaded := s.store.Load(ctx)

	s.mu.Lock()
	s.tasks = loaded
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.reminders != nil && anyRemind(snapshot) {
		if _, err := s.reminders.RequestPermission(ctx); err != nil {
			s.logger.Printf("Warning: notification permission request failed: %v", err)
		}
		s.mu.Lock()
		s.rescheduleLocked()
		s.mu.Unlock()
	}

	s.notify(snapshot)
}

// OnChange registers a listener called with a fresh snapshot after every
// change to the task list.
func (s *TaskService) OnChange(fn func([]domain.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Create validates the draft and appends a new task.
func (s *TaskService) Create(ctx context.Context, d domain.Draft) (*domain.Task, error) {
	d.Normalize()
	if errs := d.Validate(); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}

	id, err := s.newID()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	task := domain.NewTask(d, id, s.now())

	s.mu.Lock()
	next := append(s.cloneLocked(), *task)
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if task.Remind && s.reminders != nil {
		s.reminders.Schedule(*task)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	out := task.Clone()
	return &out, nil
}

// Update overwrites the mutable fields of a task with the draft. ID, created
// and done are preserved. An unknown id is a no-op and returns nil.
func (s *TaskService) Update(ctx context.Context, id string, d domain.Draft) (*domain.Task, error) {
	d.Normalize()
	if errs := d.Validate(); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	next := s.cloneLocked()
	next[idx].Apply(d)
	updated := next[idx].Clone()
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.reminders != nil {
		// Schedule cancels the previous entry and rearms only when wanted.
		s.reminders.Schedule(updated)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	return &updated, nil
}

// Delete removes a task after the confirmer agrees. It reports whether a
// task was removed; a declined confirmation or unknown id removes nothing.
func (s *TaskService) Delete(ctx context.Context, id string, c Confirmer) (bool, error) {
	s.mu.Lock()
	exists := s.indexLocked(id) >= 0
	s.mu.Unlock()
	if !exists {
		return false, nil
	}

	if c == nil {
		return false, domain.NewConfirmationRequiredError("delete task " + id)
	}
	ok, err := c.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		// removed while the confirmation was pending
		s.mu.Unlock()
		return false, nil
	}
	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	if s.reminders != nil {
		s.reminders.Cancel(id)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	return true, nil
}

// ToggleDone flips the completion flag of a task. An unknown id is a no-op
// and returns nil. Pending reminders are left as they are.
func (s *TaskService) ToggleDone(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	next := s.cloneLocked()
	next[idx].Done = !next[idx].Done
	toggled := next[idx].Clone()
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return &toggled, nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(id string) (*domain.Task, error) {
	t, ok := s.Lookup(id)
	if !ok {
		return nil, domain.NewTaskNotFoundError(id)
	}
	return &t, nil
}

// Lookup returns a copy of the task with the given id.
func (s *TaskService) Lookup(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return s.tasks[idx].Clone(), true
}

// Snapshot returns a copy of all tasks in store order.
func (s *TaskService) Snapshot() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// RequestReminderPermission asks for notification permission. It is called
// when the user turns reminders on for a task.
func (s *TaskService) RequestReminderPermission(ctx context.Context) (reminder.Permission, error) {
	if s.reminders == nil {
		return reminder.PermissionDenied, nil
	}
	return s.reminders.RequestPermission(ctx)
}

// PendingReminders lists the armed reminders of this process.
func (s *TaskService) PendingReminders() []reminder.Entry {
	if s.reminders == nil {
		return []reminder.Entry{}
	}
	return s.reminders.Pending()
}

// commitLocked persists next and makes it current. On failure the in-memory
// list is left unchanged.
// rescheduleLocked drops every pending reminder and rearms one per task that
// wants it. The scheduler is only driven under s.mu so its table follows
// the commit order.
func (s *TaskService) rescheduleLocked() {
	s.reminders.CancelAll()
	for _, t := range s.tasks {
		if t.Remind {
			s.reminders.Schedule(t)
		}
	}
}

func (s *TaskService) commitLocked(ctx context.Context, next []domain.Task) error {
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Printf("Error: %v", err)
		return domain.NewInternalError(err)
	}
	s.tasks = next
	return nil
}

func (s *TaskService) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskService) cloneLocked() []domain.Task {
	out := make([]domain.Task, len(s.tasks), len(s.tasks)+1)
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *TaskService) snapshotLocked() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *TaskService) notify(snapshot []domain.Task) {
	s.mu.Lock()
	listeners := append([]func([]domain.Task){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func anyRemind(tasks []domain.Task) bool {
	for _, t := range tasks {
		if t.Remind {
			return true
		}
	}
	return false
}

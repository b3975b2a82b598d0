package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplanner/planner/internal/domain"
)

var start = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type fakeNotifier struct {
	mu         sync.Mutex
	permission Permission
	requested  int
	notes      []Notification
	err        error
}

func (n *fakeNotifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.permission
}

func (n *fakeNotifier) RequestPermission(ctx context.Context) (Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requested++
	if n.permission == PermissionDefault {
		n.permission = PermissionGranted
	}
	return n.permission, nil
}

func (n *fakeNotifier) Notify(ctx context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notes = append(n.notes, note)
	return nil
}

type fakeAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *fakeAlerter) Alert(ctx context.Context, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
	return nil
}

type fixture struct {
	clock    *FakeClock
	notifier *fakeNotifier
	alerter  *fakeAlerter
	tasks    map[string]domain.Task
	sched    *Scheduler
}

func newFixture(permission Permission) *fixture {
	f := &fixture{
		clock:    NewFakeClock(start),
		notifier: &fakeNotifier{permission: permission},
		alerter:  &fakeAlerter{},
		tasks:    map[string]domain.Task{},
	}
	f.sched = New(Options{
		Clock:    f.clock,
		Notifier: f.notifier,
		Alerter:  f.alerter,
		Location: time.UTC,
		Lookup: func(id string) (domain.Task, bool) {
			t, ok := f.tasks[id]
			return t, ok
		},
	})
	return f
}

func (f *fixture) add(t domain.Task) domain.Task {
	f.tasks[t.ID] = t
	return t
}

func remindTask(id, date, tm string) domain.Task {
	t := domain.Task{ID: id, Title: "Task " + id, Date: strPtr(date), Remind: true, Priority: domain.PriorityMedium}
	if tm != "" {
		t.Time = strPtr(tm)
	}
	return t
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name      string
		task      domain.Task
		wantOK    bool
		wantDelay time.Duration
	}{
		{"future reminder", remindTask("a", "2024-01-10", "09:00"), true, time.Hour},
		{"remind disabled", func() domain.Task { x := remindTask("a", "2024-01-10", "09:00"); x.Remind = false; return x }(), false, 0},
		{"no date", domain.Task{ID: "a", Remind: true}, false, 0},
		{"already due", remindTask("a", "2024-01-10", "07:00"), false, 0},
		{"exactly now", remindTask("a", "2024-01-10", "08:00"), false, 0},
		{"date only is midnight", remindTask("a", "2024-01-11", ""), true, 16 * time.Hour},
		{"far future is capped", remindTask("a", "2030-01-01", "00:00"), true, MaxDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Plan(tt.task, start, time.UTC)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantDelay, e.FireAt.Sub(start))
				assert.Equal(t, tt.task.ID, e.TaskID)
			}
		})
	}
}

func TestMaxDelayIsJSTimerLimit(t *testing.T) {
	assert.Equal(t, int64(2147483647), MaxDelay.Milliseconds())
}

func TestPlanAll_OrdersByFireTime(t *testing.T) {
	tasks := []domain.Task{
		remindTask("late", "2024-01-12", "10:00"),
		remindTask("past", "2024-01-01", "10:00"),
		remindTask("soon", "2024-01-10", "09:00"),
	}

	got := PlanAll(tasks, start, time.UTC)

	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].TaskID)
	assert.Equal(t, "late", got[1].TaskID)
}

func TestSchedule_FiresNotificationWhenGranted(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := remindTask("a", "2024-01-10", "09:00")
	task.Description = "chapter 3"
	f.add(task)

	require.True(t, f.sched.Schedule(task))
	assert.Len(t, f.sched.Pending(), 1)

	f.clock.Advance(59 * time.Minute)
	assert.Empty(t, f.notifier.notes)

	f.clock.Advance(time.Minute)
	require.Len(t, f.notifier.notes, 1)
	assert.Equal(t, Notification{Title: NotificationTitle, Body: "Task a - chapter 3", Tag: "a"}, f.notifier.notes[0])
	assert.Empty(t, f.alerter.messages)
	assert.Empty(t, f.sched.Pending())
}

func TestSchedule_AlertsWhenNotGranted(t *testing.T) {
	for _, perm := range []Permission{PermissionDenied, PermissionDefault} {
		t.Run(string(perm), func(t *testing.T) {
			f := newFixture(perm)
			task := f.add(remindTask("a", "2024-01-10", "09:00"))

			f.sched.Schedule(task)
			f.clock.Advance(time.Hour)

			assert.Empty(t, f.notifier.notes)
			assert.Equal(t, []string{"Reminder: Task a"}, f.alerter.messages)
		})
	}
}

func TestSchedule_NotifyFailureFallsBackToAlert(t *testing.T) {
	f := newFixture(PermissionGranted)
	f.notifier.err = errors.New("no display")
	task := f.add(remindTask("a", "2024-01-10", "09:00"))

	f.sched.Schedule(task)
	f.clock.Advance(time.Hour)

	assert.Equal(t, []string{"Reminder: Task a"}, f.alerter.messages)
}

func TestSchedule_PastDueIsDropped(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := f.add(remindTask("a", "2024-01-09", "09:00"))

	assert.False(t, f.sched.Schedule(task))
	assert.Empty(t, f.sched.Pending())
	assert.Equal(t, 0, f.clock.Pending())
}

func TestSchedule_ReplacesPendingEntry(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := f.add(remindTask("a", "2024-01-10", "09:00"))
	f.sched.Schedule(task)

	moved := f.add(remindTask("a", "2024-01-10", "10:00"))
	f.sched.Schedule(moved)

	pending := f.sched.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, start.Add(2*time.Hour), pending[0].FireAt)
	assert.Equal(t, 1, f.clock.Pending())

	f.clock.Advance(3 * time.Hour)
	assert.Len(t, f.notifier.notes, 1, "replaced reminder must not fire")
}

func TestSchedule_RemindDisabledCancels(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := f.add(remindTask("a", "2024-01-10", "09:00"))
	f.sched.Schedule(task)

	task.Remind = false
	f.add(task)
	assert.False(t, f.sched.Schedule(task))

	f.clock.Advance(2 * time.Hour)
	assert.Empty(t, f.notifier.notes)
	assert.Empty(t, f.alerter.messages)
}

func TestCancel(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := f.add(remindTask("a", "2024-01-10", "09:00"))
	f.sched.Schedule(task)

	assert.True(t, f.sched.Cancel("a"))
	assert.False(t, f.sched.Cancel("a"))

	f.clock.Advance(2 * time.Hour)
	assert.Empty(t, f.notifier.notes)
}

func TestCancelAll(t *testing.T) {
	f := newFixture(PermissionGranted)
	f.sched.Schedule(f.add(remindTask("a", "2024-01-10", "09:00")))
	f.sched.Schedule(f.add(remindTask("b", "2024-01-10", "10:00")))

	f.sched.CancelAll()

	assert.Empty(t, f.sched.Pending())
	f.clock.Advance(3 * time.Hour)
	assert.Empty(t, f.notifier.notes)
}

func TestFire_UsesCurrentTask(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := f.add(remindTask("a", "2024-01-10", "09:00"))
	f.sched.Schedule(task)

	renamed := task
	renamed.Title = "Renamed"
	f.add(renamed)

	f.clock.Advance(time.Hour)
	require.Len(t, f.notifier.notes, 1)
	assert.Equal(t, "Renamed", f.notifier.notes[0].Body)
}

func TestFire_SkipsDeletedTask(t *testing.T) {
	f := newFixture(PermissionGranted)
	task := f.add(remindTask("a", "2024-01-10", "09:00"))
	f.sched.Schedule(task)
	delete(f.tasks, "a")

	f.clock.Advance(time.Hour)

	assert.Empty(t, f.notifier.notes)
	assert.Empty(t, f.alerter.messages)
}

func TestStop_RefusesNewReminders(t *testing.T) {
	f := newFixture(PermissionGranted)
	f.sched.Schedule(f.add(remindTask("a", "2024-01-10", "09:00")))

	f.sched.Stop()

	assert.Empty(t, f.sched.Pending())
	assert.False(t, f.sched.Schedule(f.add(remindTask("b", "2024-01-10", "10:00"))))
}

func TestPermission(t *testing.T) {
	f := newFixture(PermissionDefault)
	assert.Equal(t, PermissionDefault, f.sched.Permission())

	got, err := f.sched.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, got)
	assert.Equal(t, PermissionGranted, f.sched.Permission())

	bare := New(Options{})
	assert.Equal(t, PermissionDenied, bare.Permission())
}

func TestFire_SkipsStaleEntryWhenReminderTurnedOff(t *testing.T) {
	f := newFixture(PermissionGranted)
	stale := remindTask("a", "2024-01-10", "09:00")
	current := stale
	current.Remind = false
	f.add(current)

	// the older version arrives last
	f.sched.Schedule(current)
	require.True(t, f.sched.Schedule(stale))

	f.clock.Advance(72 * time.Hour)

	assert.Empty(t, f.notifier.notes)
	assert.Empty(t, f.alerter.messages)
}

func TestFire_SkipsStaleEntryWhenDueMoved(t *testing.T) {
	f := newFixture(PermissionGranted)
	stale := remindTask("a", "2024-01-10", "09:00")
	f.add(remindTask("a", "2024-01-12", "09:00"))

	require.True(t, f.sched.Schedule(stale))
	f.clock.Advance(2 * time.Hour)

	assert.Empty(t, f.notifier.notes)
	assert.Empty(t, f.alerter.messages)
}

package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/query"
	"github.com/studyplanner/planner/internal/reminder"
	"github.com/studyplanner/planner/internal/service"
	"github.com/studyplanner/planner/internal/store"
)

func newTestService(t *testing.T) *service.TaskService {
	t.Helper()

	m, err := store.NewManager(t.TempDir(), store.BackendFile)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	kv, err := m.Open("test")
	require.NoError(t, err)

	svc := service.NewTaskService(service.Options{Store: store.NewTaskStore(kv, nil)})
	svc.Load(context.Background())
	return svc
}

func newTestModel(t *testing.T) (Model, *service.TaskService) {
	t.Helper()
	svc := newTestService(t)
	return New(context.Background(), svc, time.UTC, nil), svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func createTask(t *testing.T, svc *service.TaskService, d domain.Draft) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), d)
	require.NoError(t, err)
	return task
}

func TestModel_AddTask(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, runes("a"))
	require.Equal(t, modeForm, m.mode)

	m = press(m, typeText("Read ch.1")...)
	m = press(m, enter)

	assert.Equal(t, modeList, m.mode)
	tasks := svc.Snapshot()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Read ch.1", tasks[0].Title)
	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	assert.Nil(t, tasks[0].Date)
	require.Len(t, m.view.List, 1)
}

func TestModel_EmptyTitleShowsMessage(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, runes("a"), enter)

	assert.Equal(t, EmptyTitleMessage, m.message)
	assert.Contains(t, m.View(), EmptyTitleMessage)
	assert.Empty(t, svc.Snapshot())

	// Any key dismisses the message and keeps the form open.
	m = press(m, runes("x"))
	assert.Empty(t, m.message)
	assert.Equal(t, modeForm, m.mode)
	assert.Empty(t, m.form.inputs[fieldTitle].Value())
}

func TestModel_InvalidDateShowsValidationError(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, runes("a"))
	m = press(m, typeText("Quiz")...)
	m = press(m, tab, tab)
	m = press(m, typeText("2024-13-40")...)
	m = press(m, enter)

	assert.Contains(t, m.message, "date must be YYYY-MM-DD")
	assert.Empty(t, svc.Snapshot())
}

func TestModel_EditTask(t *testing.T) {
	m, svc := newTestModel(t)
	task := createTask(t, svc, domain.Draft{Title: "Read", Priority: domain.PriorityLow})
	m.refresh()

	m = press(m, runes("e"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, task.ID, m.form.editingID)
	assert.Equal(t, "Read", m.form.inputs[fieldTitle].Value())
	assert.Equal(t, "low", m.form.inputs[fieldPriority].Value())

	m = press(m, typeText(" v2")...)
	m = press(m, enter)

	got, ok := svc.Lookup(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Read v2", got.Title)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, task.Created, got.Created)
}

func TestModel_EscCancelsForm(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, runes("a"))
	m = press(m, typeText("Draft")...)
	m = press(m, esc)

	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, svc.Snapshot())
}

func TestModel_ToggleDone(t *testing.T) {
	m, svc := newTestModel(t)
	task := createTask(t, svc, domain.Draft{Title: "Read"})
	m.refresh()

	m = press(m, space)
	got, _ := svc.Lookup(task.ID)
	assert.True(t, got.Done)
	assert.Equal(t, 1, m.view.Progress.Done)

	m = press(m, space)
	got, _ = svc.Lookup(task.ID)
	assert.False(t, got.Done)
	assert.Equal(t, 0, m.view.Progress.Done)
}

func TestModel_DeleteAsksFirst(t *testing.T) {
	m, svc := newTestModel(t)
	createTask(t, svc, domain.Draft{Title: "Read"})
	m.refresh()

	m = press(m, runes("d"))
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), "Delete this task?")

	m = press(m, runes("n"))
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, svc.Snapshot(), 1)

	m = press(m, runes("d"), runes("y"))
	assert.Empty(t, svc.Snapshot())
	assert.Empty(t, m.view.List)
	assert.Equal(t, 0, m.selected)
}

func TestModel_FilterAndSortCycle(t *testing.T) {
	m, svc := newTestModel(t)
	done := createTask(t, svc, domain.Draft{Title: "Done one"})
	_, err := svc.ToggleDone(context.Background(), done.ID)
	require.NoError(t, err)
	createTask(t, svc, domain.Draft{Title: "Open one"})
	m.refresh()

	m = press(m, runes("f"))
	assert.Equal(t, query.StatusTodo, m.vs.Status)
	require.Len(t, m.view.List, 1)
	assert.Equal(t, "Open one", m.view.List[0].Title)

	m = press(m, runes("f"))
	assert.Equal(t, query.StatusDone, m.vs.Status)
	require.Len(t, m.view.List, 1)
	assert.Equal(t, "Done one", m.view.List[0].Title)

	m = press(m, runes("f"))
	assert.Equal(t, query.StatusAll, m.vs.Status)

	assert.Equal(t, query.SortCreated, m.vs.Sort)
	m = press(m, runes("s"))
	assert.Equal(t, query.SortDate, m.vs.Sort)
	m = press(m, runes("s"), runes("s"))
	assert.Equal(t, query.SortCreated, m.vs.Sort)
}

func TestModel_Search(t *testing.T) {
	m, svc := newTestModel(t)
	createTask(t, svc, domain.Draft{Title: "Biology notes"})
	createTask(t, svc, domain.Draft{Title: "Chemistry lab"})
	m.refresh()

	m = press(m, runes("/"))
	require.Equal(t, modeSearch, m.mode)
	m = press(m, typeText("bio")...)

	assert.Equal(t, "bio", m.vs.Search)
	require.Len(t, m.view.List, 1)
	assert.Equal(t, "Biology notes", m.view.List[0].Title)

	m = press(m, esc)
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.vs.Search)
	assert.Len(t, m.view.List, 2)
}

func TestModel_RemindCheckboxRequestsPermission(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, runes("a"))
	for i := 0; i < fieldRemind; i++ {
		m = press(m, tab)
	}
	require.Equal(t, fieldRemind, m.form.focus)

	next, cmd := m.Update(space)
	m = next.(Model)
	assert.True(t, m.form.remind)
	require.NotNil(t, cmd)

	msg := cmd()
	perm, ok := msg.(permissionMsg)
	require.True(t, ok)
	assert.Equal(t, reminder.PermissionDenied, perm.permission)

	m = press(m, msg)
	assert.Contains(t, m.status, "blocked")

	// Turning it off again asks nothing.
	next, cmd = m.Update(space)
	assert.False(t, next.(Model).form.remind)
	assert.Nil(t, cmd)
}

func TestModel_AlertIsModal(t *testing.T) {
	m, svc := newTestModel(t)
	createTask(t, svc, domain.Draft{Title: "Read"})
	m.refresh()

	m = press(m, alertMsg("Reminder: Quiz"))
	assert.Contains(t, m.View(), "Reminder: Quiz")

	// Keys other than dismiss do nothing while the alert is up.
	m = press(m, space)
	assert.False(t, svc.Snapshot()[0].Done)
	assert.NotEmpty(t, m.alert)

	m = press(m, enter)
	assert.Empty(t, m.alert)
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_EmptyViews(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "No tasks found.")
	assert.Contains(t, view, "No upcoming tasks with dates.")
	assert.Contains(t, view, "0 / 0 completed")
}

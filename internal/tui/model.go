// Package tui is the interactive terminal front end of the planner.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/query"
	"github.com/studyplanner/planner/internal/reminder"
	"github.com/studyplanner/planner/internal/render"
	"github.com/studyplanner/planner/internal/service"
)

// EmptyTitleMessage is shown when a form is saved without a title.
const EmptyTitleMessage = "Please enter a task title."

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
)

var (
	statusCycle = []query.Status{query.StatusAll, query.StatusTodo, query.StatusDone}
	sortCycle   = []query.SortKey{query.SortCreated, query.SortDate, query.SortPriority}
)

type permissionMsg struct {
	permission reminder.Permission
	err        error
}

// Model is the bubbletea model of the planner UI.
type Model struct {
	ctx    context.Context
	svc    *service.TaskService
	loc    *time.Location
	alerts <-chan string

	vs       render.ViewState
	view     render.Model
	selected int
	width    int
	height   int

	mode     mode
	search   textinput.Model
	form     form
	deleteID string
	message  string // blocks input until dismissed
	alert    string // reminder alert, shown until dismissed
	status   string
	keys     keyMap
	help     help.Model
}

// New creates the UI model. alerts may be nil.
func New(ctx context.Context, svc *service.TaskService, loc *time.Location, alerts <-chan string) Model {
	if loc == nil {
		loc = time.Local
	}

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 30
	search.PromptStyle = labelStyle

	m := Model{
		ctx:    ctx,
		svc:    svc,
		loc:    loc,
		alerts: alerts,
		vs: render.ViewState{
			Status: query.StatusAll,
			Sort:   query.SortCreated,
		},
		search: search,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.alerts == nil {
		return nil
	}
	return waitForAlert(m.alerts)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case alertMsg:
		m.alert = string(msg)
		return m, waitForAlert(m.alerts)

	case permissionMsg:
		m.status = permissionStatus(msg.permission, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		cmd := m.form.update(msg)
		return m, cmd
	}
	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Modals swallow the key that dismisses them.
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			m.alert = ""
		}
		return m, nil
	}
	if m.message != "" {
		m.message = ""
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.view.List)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Filter):
		m.vs.Status = nextStatus(m.vs.Status)
		m.refresh()

	case key.Matches(msg, m.keys.Sort):
		m.vs.Sort = nextSort(m.vs.Sort)
		m.refresh()

	case key.Matches(msg, m.keys.Add):
		m.form = newForm()
		m.mode = modeForm
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selectedTask(); ok {
			m.form = formFor(t)
			m.mode = modeForm
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selectedItem(); ok {
			if _, err := m.svc.ToggleDone(m.ctx, item.ID); err != nil {
				m.message = err.Error()
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selectedItem(); ok {
			m.deleteID = item.ID
			m.mode = modeConfirm
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case tea.KeyEsc:
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeList
		m.vs.Search = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.vs.Search = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter":
		if m.form.focus == fieldRemind {
			return m.toggleRemind()
		}
		return m.submitForm()
	case " ":
		if m.form.focus == fieldRemind {
			return m.toggleRemind()
		}
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.deleteID
	m.deleteID = ""
	m.mode = modeList

	switch msg.String() {
	case "y", "Y":
		// The prompt already asked; the service does not ask again.
		if _, err := m.svc.Delete(m.ctx, id, service.AlwaysConfirm); err != nil {
			m.message = err.Error()
		}
		m.refresh()
	}
	return m, nil
}

// toggleRemind flips the checkbox. Turning it on asks for notification
// permission.
func (m Model) toggleRemind() (tea.Model, tea.Cmd) {
	m.form.remind = !m.form.remind
	if !m.form.remind {
		return m, nil
	}

	svc, ctx := m.svc, m.ctx
	return m, func() tea.Msg {
		p, err := svc.RequestReminderPermission(ctx)
		return permissionMsg{permission: p, err: err}
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.titleEmpty() {
		m.message = EmptyTitleMessage
		return m, nil
	}

	var err error
	if m.form.editingID == "" {
		_, err = m.svc.Create(m.ctx, m.form.draft())
	} else {
		var updated *domain.Task
		updated, err = m.svc.Update(m.ctx, m.form.editingID, m.form.draft())
		if err == nil && updated == nil {
			err = domain.NewTaskNotFoundError(m.form.editingID)
		}
	}
	if err != nil {
		m.message = errorText(err)
		return m, nil
	}

	m.mode = modeList
	m.refresh()
	return m, nil
}

// refresh reprojects the view from the current tasks.
func (m *Model) refresh() {
	m.view = render.Project(m.svc.Snapshot(), m.vs, m.loc)
	if m.selected >= len(m.view.List) {
		m.selected = len(m.view.List) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedItem() (render.ListItem, bool) {
	if m.selected < 0 || m.selected >= len(m.view.List) {
		return render.ListItem{}, false
	}
	return m.view.List[m.selected], true
}

func (m Model) selectedTask() (domain.Task, bool) {
	item, ok := m.selectedItem()
	if !ok {
		return domain.Task{}, false
	}
	return m.svc.Lookup(item.ID)
}

func nextStatus(s query.Status) query.Status {
	for i, v := range statusCycle {
		if v == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return query.StatusAll
}

func nextSort(s query.SortKey) query.SortKey {
	for i, v := range sortCycle {
		if v == s {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return query.SortCreated
}

func permissionStatus(p reminder.Permission, err error) string {
	if err != nil {
		return fmt.Sprintf("Notifications unavailable: %v", err)
	}
	if p == reminder.PermissionGranted {
		return "Notifications enabled"
	}
	return "Notifications blocked; reminders will show here"
}

func errorText(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) && de.Code == domain.ErrCodeValidationFailed {
		if details, ok := de.Context["details"].([]string); ok && len(details) > 1 {
			return de.Message + ": " + strings.Join(details, "; ")
		}
	}
	return err.Error()
}

// Run runs the UI until the user quits.
func Run(ctx context.Context, svc *service.TaskService, loc *time.Location, alerts *AlertSink) error {
	var ch <-chan string
	if alerts != nil {
		ch = alerts.ch
	}
	p := tea.NewProgram(New(ctx, svc, loc, ch), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studyplanner/planner/internal/domain"
)

// Form field indices. The remind checkbox follows the text inputs.
const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldTime
	fieldPriority
	fieldRemind
	fieldCount
)

var fieldLabels = [...]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldDate:        "Date",
	fieldTime:        "Time",
	fieldPriority:    "Priority",
	fieldRemind:      "Remind",
}

// form is the add/edit form. editingID is empty when adding.
type form struct {
	inputs    []textinput.Model
	remind    bool
	focus     int
	editingID string
}

func newForm() form {
	inputs := make([]textinput.Model, fieldRemind)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 200
		inputs[i].Prompt = ""

		switch i {
		case fieldTitle:
			inputs[i].Placeholder = "What to study"
		case fieldDescription:
			inputs[i].Placeholder = "Notes"
		case fieldDate:
			inputs[i].Placeholder = "YYYY-MM-DD"
			inputs[i].CharLimit = 10
		case fieldTime:
			inputs[i].Placeholder = "HH:MM"
			inputs[i].CharLimit = 5
		case fieldPriority:
			inputs[i].Placeholder = "high, medium or low"
			inputs[i].CharLimit = 6
			inputs[i].SetValue(string(domain.PriorityMedium))
		}
	}
	inputs[fieldTitle].Focus()

	return form{inputs: inputs}
}

// formFor returns a form filled with the task's values.
func formFor(t domain.Task) form {
	f := newForm()
	f.editingID = t.ID
	f.inputs[fieldTitle].SetValue(t.Title)
	f.inputs[fieldDescription].SetValue(t.Description)
	if t.Date != nil {
		f.inputs[fieldDate].SetValue(*t.Date)
	}
	if t.Time != nil {
		f.inputs[fieldTime].SetValue(*t.Time)
	}
	f.inputs[fieldPriority].SetValue(string(t.Priority))
	f.remind = t.Remind
	return f
}

// draft reads the form into a draft. Empty date and time are dropped by
// Normalize.
func (f form) draft() domain.Draft {
	date := f.inputs[fieldDate].Value()
	tm := f.inputs[fieldTime].Value()
	return domain.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Date:        &date,
		Time:        &tm,
		Priority:    domain.Priority(f.inputs[fieldPriority].Value()),
		Remind:      f.remind,
	}
}

func (f form) titleEmpty() bool {
	return strings.TrimSpace(f.inputs[fieldTitle].Value()) == ""
}

func (f *form) setFocus(i int) tea.Cmd {
	if i < 0 {
		i = fieldCount - 1
	}
	i %= fieldCount

	if f.focus < fieldRemind {
		f.inputs[f.focus].Blur()
	}
	f.focus = i
	if f.focus < fieldRemind {
		return f.inputs[f.focus].Focus()
	}
	return nil
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// update passes a key to the focused text input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus >= fieldRemind {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view() string {
	var b strings.Builder

	heading := "New task"
	if f.editingID != "" {
		heading = "Edit task"
	}
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		label := labelStyle.Render(padRight(fieldLabels[i], 12))
		if i == f.focus {
			label = focusedLabelStyle.Render(padRight(fieldLabels[i], 12))
		}

		var value string
		if i == fieldRemind {
			box := "[ ]"
			if f.remind {
				box = "[x]"
			}
			value = box + " notify at the due time"
		} else {
			value = f.inputs[i].View()
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab move • space toggles remind • enter save • esc cancel"))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

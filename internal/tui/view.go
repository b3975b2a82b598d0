package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/render"
)

const (
	defaultWidth     = 100
	progressBarWidth = 30
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2)

	progressFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	progressEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	priorityStyles = map[domain.Priority]lipgloss.Style{
		domain.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		domain.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	if m.alert != "" {
		return modalStyle.Render(headerStyle.Render("Reminder") + "\n\n" + m.alert + "\n\n" + helpStyle.Render("enter to dismiss"))
	}
	if m.message != "" {
		return modalStyle.Render(m.message + "\n\n" + helpStyle.Render("press any key"))
	}
	if m.mode == modeForm {
		body := m.form.view()
		if m.status != "" {
			body += "\n" + labelStyle.Render(m.status)
		}
		return paneStyle.Render(body)
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	listWidth := width * 3 / 5
	timelineWidth := width - listWidth - 4

	var b strings.Builder
	b.WriteString(headerStyle.Render("Study Planner"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("status: %s  sort: %s", m.vs.Status, m.vs.Sort)))
	b.WriteString("\n")
	if m.mode == modeSearch || m.vs.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(listWidth).Render(m.listView(listWidth)),
		paneStyle.Width(timelineWidth).Render(m.timelineView(timelineWidth)),
	)
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(progressView(m.view.Progress))
	b.WriteString("\n")

	switch {
	case m.mode == modeConfirm:
		b.WriteString(focusedLabelStyle.Render("Delete this task? (y/n)"))
	case m.status != "":
		b.WriteString(labelStyle.Render(m.status))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) listView(width int) string {
	if len(m.view.List) == 0 {
		return labelStyle.Render(m.view.EmptyList)
	}

	lines := make([]string, 0, len(m.view.List))
	for i, item := range m.view.List {
		lines = append(lines, m.itemView(item, i == m.selected, width-2))
	}
	return strings.Join(lines, "\n")
}

func (m Model) itemView(item render.ListItem, selected bool, width int) string {
	box := "[ ]"
	if item.Done {
		box = "[x]"
	}

	title := item.Title
	if item.Done {
		title = doneStyle.Render(title)
	}
	badge := priorityStyles[domain.Priority(item.Priority)].Render(item.Badge)

	line := fmt.Sprintf("%s %s %s", box, title, badge)
	if item.Due != "" {
		line += " " + labelStyle.Render(item.Due)
	}
	if item.Description != "" {
		line += "\n    " + labelStyle.Render(truncate(item.Description, width-4))
	}

	if selected {
		return selectedStyle.Width(width).Render(line)
	}
	return line
}

func (m Model) timelineView(width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Upcoming"))
	b.WriteString("\n")

	if len(m.view.Timeline) == 0 {
		b.WriteString(labelStyle.Render(m.view.EmptyTimeline))
		return b.String()
	}

	for _, item := range m.view.Timeline {
		when := item.Date
		if item.Time != "" {
			when += " " + item.Time
		}
		b.WriteString(labelStyle.Render(when))
		b.WriteString(" ")
		b.WriteString(truncate(item.Title, width-len(when)-3))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func progressView(bar render.ProgressBar) string {
	filled := bar.Percent * progressBarWidth / 100
	return progressFilledStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled)) +
		" " + bar.Text
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen < 4 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

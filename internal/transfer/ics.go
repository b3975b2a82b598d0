package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/studyplanner/planner/internal/domain"
)

const (
	icsDateLayout     = "20060102"
	icsDateTimeLayout = "20060102T150405"
	icsStampLayout    = "20060102T150405Z"
)

// TimedEventLength is the duration given to events of tasks with a time.
const TimedEventLength = time.Hour

// BuildICS builds an iCalendar document with one event per dated task.
// Tasks without a date, or with a date that does not parse, are skipped.
// Date-only tasks become all-day events; timed tasks use floating local
// times. Tasks with reminders carry a display alarm at the start.
func BuildICS(tasks []domain.Task, now time.Time, loc *time.Location) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Study Planner//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	stamp := now.UTC().Format(icsStampLayout)
	for _, t := range tasks {
		due, ok := t.DueInstant(loc)
		if !ok {
			continue
		}

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+escapeICSText(fmt.Sprintf("%s@study-planner", t.ID)),
			"DTSTAMP:"+stamp,
			"SUMMARY:"+escapeICSText(t.Title),
		)
		if t.Time == nil {
			lines = append(lines,
				"DTSTART;VALUE=DATE:"+due.Format(icsDateLayout),
				"DTEND;VALUE=DATE:"+due.AddDate(0, 0, 1).Format(icsDateLayout),
			)
		} else {
			lines = append(lines,
				"DTSTART:"+due.Format(icsDateTimeLayout),
				"DTEND:"+due.Add(TimedEventLength).Format(icsDateTimeLayout),
			)
		}
		if desc := strings.TrimSpace(t.Description); desc != "" {
			lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
		}
		lines = append(lines, fmt.Sprintf("PRIORITY:%d", icsPriority(t.Priority)))
		if t.Done {
			lines = append(lines, "X-STUDY-PLANNER-DONE:TRUE")
		}
		if t.Remind {
			lines = append(lines,
				"BEGIN:VALARM",
				"ACTION:DISPLAY",
				"DESCRIPTION:"+escapeICSText(t.Title),
				"TRIGGER:PT0M",
				"END:VALARM",
			)
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

// icsPriority maps to the RFC 5545 scale, where 1 is highest.
func icsPriority(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 1
	case domain.PriorityLow:
		return 9
	default:
		return 5
	}
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}

// Package transfer writes the task list in the supported export formats.
package transfer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/store"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// BackupName is the base name of exported files.
const BackupName = "study-planner-backup"

// ParseFormat parses a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatICS, "ical":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, yaml or ics)", s)
	}
}

// Filename returns the default download name for the format.
func (f Format) Filename() string {
	return BackupName + "." + string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	default:
		return "application/json"
	}
}

// Export writes tasks to w in the given format. JSON output is the
// persisted array and can be imported again; the other formats are
// one-way.
func Export(w io.Writer, tasks []domain.Task, f Format, now time.Time, loc *time.Location) error {
	switch f {
	case FormatJSON:
		data, err := store.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		return writeYAML(w, tasks)
	case FormatICS:
		_, err := io.WriteString(w, BuildICS(tasks, now, loc))
		return err
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

func writeYAML(w io.Writer, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

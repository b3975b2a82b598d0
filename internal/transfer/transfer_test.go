package transfer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/store"
)

func strPtr(s string) *string { return &s }

var now = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

func sample() []domain.Task {
	return []domain.Task{
		{ID: "t-1", Title: "Read ch.1", Description: "intro, part 1", Date: strPtr("2024-01-10"), Time: strPtr("09:00"), Priority: domain.PriorityHigh, Remind: true, Created: 1},
		{ID: "t-2", Title: "Essay", Date: strPtr("2024-01-12"), Priority: domain.PriorityLow, Created: 2, Done: true},
		{ID: "t-3", Title: "Someday", Priority: domain.PriorityMedium, Created: 3},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"ics", FormatICS, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "study-planner-backup.json", FormatJSON.Filename())
	assert.Equal(t, "study-planner-backup.ics", FormatICS.Filename())
}

func TestExport_JSONIsImportable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sample(), FormatJSON, now, time.UTC))

	got, err := store.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestExport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sample(), FormatYAML, now, time.UTC))

	var got []domain.Task
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Read ch.1", got[0].Title)
	assert.Equal(t, "09:00", *got[0].Time)
	assert.Nil(t, got[2].Date)
	assert.True(t, got[1].Done)
}

func TestExport_YAMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, FormatYAML, now, time.UTC))
	assert.Equal(t, "[]\n", buf.String())
}

func TestBuildICS(t *testing.T) {
	out := BuildICS(sample(), now, time.UTC)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"), "undated task is skipped")

	assert.Contains(t, out, "UID:t-1@study-planner")
	assert.Contains(t, out, "DTSTAMP:20240105T120000Z")
	assert.Contains(t, out, "DTSTART:20240110T090000\r\nDTEND:20240110T100000")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240112\r\nDTEND;VALUE=DATE:20240113")
	assert.Contains(t, out, `DESCRIPTION:intro\, part 1`)
	assert.Contains(t, out, "PRIORITY:1")
	assert.Contains(t, out, "PRIORITY:9")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VALARM"))
	assert.NotContains(t, out, "Someday")
}

func TestEscapeICSText(t *testing.T) {
	assert.Equal(t, `a\;b\,c\\d\ne`, escapeICSText("a;b,c\\d\ne"))
}

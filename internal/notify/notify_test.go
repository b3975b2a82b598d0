package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplanner/planner/internal/reminder"
)

type call struct {
	name string
	args []string
}

func fakeDesktop(goos string, found bool) (*Desktop, *[]call) {
	var calls []call
	d := &Desktop{
		goos: goos,
		lookPath: func(file string) (string, error) {
			if !found {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + file, nil
		},
		run: func(ctx context.Context, name string, args ...string) error {
			calls = append(calls, call{name: name, args: args})
			return nil
		},
		permission: reminder.PermissionDefault,
	}
	return d, &calls
}

func TestDesktop_PermissionLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		goos  string
		found bool
		want  reminder.Permission
	}{
		{"linux with notify-send", "linux", true, reminder.PermissionGranted},
		{"linux without helper", "linux", false, reminder.PermissionDenied},
		{"macOS", "darwin", true, reminder.PermissionGranted},
		{"unsupported platform", "windows", true, reminder.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := fakeDesktop(tt.goos, tt.found)
			assert.Equal(t, reminder.PermissionDefault, d.Permission())

			got, err := d.RequestPermission(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, d.Permission())
		})
	}
}

func TestDesktop_DecidedPermissionIsSticky(t *testing.T) {
	d, _ := fakeDesktop("linux", false)
	_, _ = d.RequestPermission(context.Background())

	d.lookPath = func(string) (string, error) { return "/usr/bin/notify-send", nil }
	got, _ := d.RequestPermission(context.Background())

	assert.Equal(t, reminder.PermissionDenied, got)
}

func TestDesktop_Notify(t *testing.T) {
	n := reminder.Notification{Title: "Study Reminder", Body: "Read ch.1 - intro", Tag: "t-1"}

	t.Run("linux", func(t *testing.T) {
		d, calls := fakeDesktop("linux", true)
		_, _ = d.RequestPermission(context.Background())

		require.NoError(t, d.Notify(context.Background(), n))
		require.Len(t, *calls, 1)
		c := (*calls)[0]
		assert.Equal(t, "/usr/bin/notify-send", c.name)
		assert.Equal(t, []string{"Study Reminder", "Read ch.1 - intro"}, c.args[len(c.args)-2:])
	})

	t.Run("darwin", func(t *testing.T) {
		d, calls := fakeDesktop("darwin", true)
		_, _ = d.RequestPermission(context.Background())

		require.NoError(t, d.Notify(context.Background(), n))
		require.Len(t, *calls, 1)
		c := (*calls)[0]
		assert.Equal(t, "/usr/bin/osascript", c.name)
		assert.Equal(t, `display notification "Read ch.1 - intro" with title "Study Reminder"`, c.args[1])
	})

	t.Run("without permission", func(t *testing.T) {
		d, calls := fakeDesktop("linux", true)

		assert.Error(t, d.Notify(context.Background(), n))
		assert.Empty(t, *calls)
	})
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	require.NoError(t, term.Alert(context.Background(), "Reminder: Read"))
	assert.Equal(t, "\aReminder: Read\n", buf.String())

	buf.Reset()
	require.NoError(t, term.Notify(context.Background(), reminder.Notification{Title: "Study Reminder", Body: "Read"}))
	assert.True(t, strings.Contains(buf.String(), "Study Reminder: Read"))
	assert.Equal(t, reminder.PermissionGranted, term.Permission())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	n, err := New(KindTerminal, &buf)
	require.NoError(t, err)
	assert.IsType(t, &Terminal{}, n)

	n, err = New("", &buf)
	require.NoError(t, err)
	assert.IsType(t, &Desktop{}, n)

	n, err = New(KindNone, &buf)
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = New("pager", &buf)
	assert.Error(t, err)
}

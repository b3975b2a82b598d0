package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAlertQueueFull is returned when alerts arrive faster than the UI
// shows them.
var ErrAlertQueueFull = errors.New("alert queue full")

// AlertSink turns reminder alerts and terminal notifications into UI
// messages. It implements reminder.Alerter and io.Writer.
type AlertSink struct {
	ch chan string
}

// NewAlertSink creates a sink that buffers up to size alerts.
func NewAlertSink(size int) *AlertSink {
	if size < 1 {
		size = 1
	}
	return &AlertSink{ch: make(chan string, size)}
}

// Alert queues message. It never blocks the caller.
func (s *AlertSink) Alert(ctx context.Context, message string) error {
	select {
	case s.ch <- message:
		return nil
	default:
		return ErrAlertQueueFull
	}
}

// Write queues every non-empty line of p as an alert.
func (s *AlertSink) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\a"))
		if line == "" {
			continue
		}
		if err := s.Alert(context.Background(), line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

type alertMsg string

// waitForAlert waits for the next alert on ch.
func waitForAlert(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return alertMsg(msg)
	}
}

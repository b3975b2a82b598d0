package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/studyplanner/planner/internal/reminder"
)

// Terminal writes reminders to a writer, ringing the terminal bell. It is
// both the alert fallback and, when configured, a notifier that is always
// granted.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal creates a terminal notifier writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Alert(ctx context.Context, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.w, "\a%s\n", message)
	return err
}

func (t *Terminal) Permission() reminder.Permission {
	return reminder.PermissionGranted
}

func (t *Terminal) RequestPermission(ctx context.Context) (reminder.Permission, error) {
	return reminder.PermissionGranted, nil
}

func (t *Terminal) Notify(ctx context.Context, n reminder.Notification) error {
	return t.Alert(ctx, fmt.Sprintf("%s: %s", n.Title, n.Body))
}

// Func adapts a function to the reminder.Alerter interface.
type Func func(ctx context.Context, message string) error

func (f Func) Alert(ctx context.Context, message string) error {
	return f(ctx, message)
}

// Kind names a notifier backend in configuration.
type Kind string

const (
	KindDesktop  Kind = "desktop"
	KindTerminal Kind = "terminal"
	KindNone     Kind = "none"
)

// New returns the notifier for kind. Terminal output goes to w. KindNone
// yields a nil notifier so every reminder takes the alert path.
func New(kind Kind, w io.Writer) (reminder.Notifier, error) {
	switch kind {
	case KindDesktop, "":
		return NewDesktop(), nil
	case KindTerminal:
		return NewTerminal(w), nil
	case KindNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notifier %q (want desktop, terminal or none)", kind)
	}
}

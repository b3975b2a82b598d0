// Package notify delivers reminder notifications to the desktop or terminal.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"github.com/studyplanner/planner/internal/reminder"
)

// Desktop sends notifications through the platform helper binary:
// notify-send on Linux and osascript on macOS.
type Desktop struct {
	goos     string
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error

	mu         sync.Mutex
	permission reminder.Permission
	helper     string
}

// NewDesktop creates a desktop notifier for the running platform.
func NewDesktop() *Desktop {
	return &Desktop{
		goos:       runtime.GOOS,
		lookPath:   exec.LookPath,
		run:        runCommand,
		permission: reminder.PermissionDefault,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// Permission returns default until RequestPermission has been called.
func (d *Desktop) Permission() reminder.Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

// RequestPermission grants permission when the platform helper is
// installed. A decided permission is not asked again.
func (d *Desktop) RequestPermission(ctx context.Context) (reminder.Permission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.permission != reminder.PermissionDefault {
		return d.permission, nil
	}

	name := helperFor(d.goos)
	if name == "" {
		d.permission = reminder.PermissionDenied
		return d.permission, nil
	}
	path, err := d.lookPath(name)
	if err != nil {
		d.permission = reminder.PermissionDenied
		return d.permission, nil
	}

	d.helper = path
	d.permission = reminder.PermissionGranted
	return d.permission, nil
}

// Notify shows the notification. It fails unless permission was granted.
func (d *Desktop) Notify(ctx context.Context, n reminder.Notification) error {
	d.mu.Lock()
	helper, perm := d.helper, d.permission
	d.mu.Unlock()

	if perm != reminder.PermissionGranted {
		return fmt.Errorf("notification permission is %s", perm)
	}

	switch d.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(n.Body), strconv.Quote(n.Title))
		return d.run(ctx, helper, "-e", script)
	default:
		return d.run(ctx, helper, "--app-name=planner", "--hint=string:x-canonical-private-synchronous:"+n.Tag, n.Title, n.Body)
	}
}

func helperFor(goos string) string {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

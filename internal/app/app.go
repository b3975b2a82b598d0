// Package app wires configuration, storage, reminders and the task service
// into one application root.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/studyplanner/planner/internal/config"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/notify"
	"github.com/studyplanner/planner/internal/reminder"
	"github.com/studyplanner/planner/internal/service"
	"github.com/studyplanner/planner/internal/store"
)

// Options controls what Open builds beyond the task service.
type Options struct {
	// Reminders arms reminder timers. Only long-running processes want this.
	Reminders bool
	// Alerter replaces the terminal alert fallback.
	Alerter reminder.Alerter
	// Output receives terminal notifications and alerts. Defaults to stderr.
	Output   io.Writer
	Logger   *log.Logger
	Location *time.Location
	Clock    reminder.Clock
}

// App is an opened planner.
type App struct {
	Config    *config.ResolvedConfig
	Manager   *store.Manager
	Service   *service.TaskService
	Scheduler *reminder.Scheduler
	Location  *time.Location
	Logger    *log.Logger
}

// Open opens the configured planner and loads its tasks.
func Open(ctx context.Context, cfg *config.ResolvedConfig, opts Options) (*App, error) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[planner] ", log.LstdFlags)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	backend, err := store.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	manager, err := store.NewManager(cfg.DataDir, backend)
	if err != nil {
		return nil, err
	}
	kv, err := manager.Open(cfg.Planner)
	if err != nil {
		manager.Close()
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Manager:  manager,
		Location: opts.Location,
		Logger:   opts.Logger,
	}

	var reminders service.Reminders
	if opts.Reminders && cfg.RemindersEnabled {
		notifier, err := notify.New(notify.Kind(cfg.Notifier), opts.Output)
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("invalid reminders configuration: %w", err)
		}
		alerter := opts.Alerter
		if alerter == nil {
			alerter = notify.NewTerminal(opts.Output)
		}
		a.Scheduler = reminder.New(reminder.Options{
			Clock:    opts.Clock,
			Notifier: notifier,
			Alerter:  alerter,
			Location: opts.Location,
			Logger:   opts.Logger,
			Lookup: func(id string) (domain.Task, bool) {
				return a.Service.Lookup(id)
			},
		})
		reminders = a.Scheduler
	}

	a.Service = service.NewTaskService(service.Options{
		Store:     store.NewTaskStore(kv, opts.Logger),
		Reminders: reminders,
		Logger:    opts.Logger,
	})
	a.Service.Load(ctx)

	return a, nil
}

// Close stops pending reminders and closes the store.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	return a.Manager.Close()
}

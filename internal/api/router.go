package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/studyplanner/planner/internal/api/handler"
	"github.com/studyplanner/planner/internal/api/middleware"
	"github.com/studyplanner/planner/internal/app"
)

// NewRouter creates and configures the HTTP router for an opened planner.
func NewRouter(a *app.App) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging(a.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Timezone(a.Location))

	systemHandler := handler.NewSystemHandler(a.Manager, a.Config.Planner)
	taskHandler := handler.NewTaskHandler(a.Service)
	viewHandler := handler.NewViewHandler(a.Service)
	transferHandler := handler.NewTransferHandler(a.Service)
	reminderHandler := handler.NewReminderHandler(a.Service)

	r.Route("/v1", func(r chi.Router) {
		// System
		r.Get("/health", systemHandler.Health)
		r.Get("/planners", systemHandler.ListPlanners)

		// Task CRUD
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		r.Post("/tasks/{id}/toggle", taskHandler.ToggleTask)

		// Views
		r.Get("/view", viewHandler.View)
		r.Get("/timeline", viewHandler.Timeline)
		r.Get("/progress", viewHandler.Progress)

		// Export / import
		r.Get("/export", transferHandler.Export)
		r.Post("/import", transferHandler.Import)

		// Reminders
		r.Get("/reminders", reminderHandler.ListReminders)
		r.Post("/reminders/permission", reminderHandler.RequestPermission)
	})

	return r
}

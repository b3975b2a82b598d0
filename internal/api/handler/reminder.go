package handler

import (
	"net/http"

	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/reminder"
	"github.com/studyplanner/planner/internal/service"
)

// ReminderHandler exposes the reminder table of the running process.
type ReminderHandler struct {
	svc *service.TaskService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(svc *service.TaskService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// PermissionResponse reports the notification permission.
type PermissionResponse struct {
	Permission reminder.Permission `json:"permission"`
}

// ListReminders handles GET /reminders.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	pending := h.svc.PendingReminders()
	response.List(w, pending, len(pending))
}

// RequestPermission handles POST /reminders/permission.
func (h *ReminderHandler) RequestPermission(w http.ResponseWriter, r *http.Request) {
	perm, err := h.svc.RequestReminderPermission(r.Context())
	if err != nil {
		response.Error(w, domain.NewInternalError(err))
		return
	}
	response.OK(w, PermissionResponse{Permission: perm})
}

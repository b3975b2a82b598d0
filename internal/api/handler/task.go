package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyplanner/planner/internal/api/middleware"
	"github.com/studyplanner/planner/internal/api/request"
	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/query"
	"github.com/studyplanner/planner/internal/service"
)

// TaskHandler handles task CRUD operations.
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.TaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	task, err := h.svc.Create(r.Context(), req.Draft())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, task)
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// ListTasks handles GET /tasks. The status, q and sort parameters run the
// list view query.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	vs := request.ParseViewState(r)

	tasks := query.List(h.svc.Snapshot(), query.Params{
		Status: vs.Status,
		Search: vs.Search,
		Sort:   vs.Sort,
		Loc:    middleware.GetLocation(r.Context()),
	})

	response.List(w, tasks, len(tasks))
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var req request.TaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	task, err := h.svc.Update(r.Context(), taskID, req.Draft())
	if err != nil {
		response.Error(w, err)
		return
	}
	if task == nil {
		response.Error(w, domain.NewTaskNotFoundError(taskID))
		return
	}

	response.OK(w, task)
}

// DeleteTask handles DELETE /tasks/{id}?confirm=true.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	confirmed, err := request.ParseConfirm(r)
	if err != nil {
		response.Error(w, domain.NewValidationError([]string{err.Error()}))
		return
	}
	if !confirmed {
		response.Error(w, domain.NewConfirmationRequiredError("delete task "+taskID))
		return
	}

	deleted, err := h.svc.Delete(r.Context(), taskID, service.AlwaysConfirm)
	if err != nil {
		response.Error(w, err)
		return
	}
	if !deleted {
		response.Error(w, domain.NewTaskNotFoundError(taskID))
		return
	}

	response.NoContent(w)
}

// ToggleTask handles POST /tasks/{id}/toggle.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	task, err := h.svc.ToggleDone(r.Context(), taskID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if task == nil {
		response.Error(w, domain.NewTaskNotFoundError(taskID))
		return
	}

	response.OK(w, task)
}

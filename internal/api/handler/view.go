package handler

import (
	"net/http"

	"github.com/studyplanner/planner/internal/api/middleware"
	"github.com/studyplanner/planner/internal/api/request"
	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/query"
	"github.com/studyplanner/planner/internal/render"
	"github.com/studyplanner/planner/internal/service"
)

// ViewHandler serves the rendered views.
type ViewHandler struct {
	svc *service.TaskService
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(svc *service.TaskService) *ViewHandler {
	return &ViewHandler{svc: svc}
}

// View handles GET /view: list, timeline and progress in one model.
func (h *ViewHandler) View(w http.ResponseWriter, r *http.Request) {
	model := render.Project(h.svc.Snapshot(), request.ParseViewState(r), middleware.GetLocation(r.Context()))
	response.OK(w, model)
}

// Timeline handles GET /timeline.
func (h *ViewHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	model := render.Project(h.svc.Snapshot(), render.ViewState{}, middleware.GetLocation(r.Context()))
	response.List(w, model.Timeline, len(model.Timeline))
}

// Progress handles GET /progress.
func (h *ViewHandler) Progress(w http.ResponseWriter, r *http.Request) {
	response.OK(w, render.Progress(query.ComputeProgress(h.svc.Snapshot())))
}

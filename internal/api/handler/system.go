package handler

import (
	"net/http"

	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/store"
)

// SystemHandler handles system-level operations.
type SystemHandler struct {
	manager *store.Manager
	planner string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(manager *store.Manager, planner string) *SystemHandler {
	return &SystemHandler{manager: manager, planner: planner}
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok", "planner": h.planner})
}

// ListPlanners handles GET /v1/planners.
func (h *SystemHandler) ListPlanners(w http.ResponseWriter, r *http.Request) {
	planners, err := h.manager.ListPlanners()
	if err != nil {
		response.Error(w, domain.NewInternalError(err))
		return
	}

	if planners == nil {
		planners = []string{}
	}

	response.OK(w, planners)
}

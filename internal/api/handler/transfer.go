package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studyplanner/planner/internal/api/middleware"
	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/service"
	"github.com/studyplanner/planner/internal/transfer"
)

// MaxImportSize caps the body of an import request.
const MaxImportSize = 10 << 20

// TransferHandler handles export and import.
type TransferHandler struct {
	svc *service.TaskService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(svc *service.TaskService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Export handles GET /export?format=json|yaml|ics.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := transfer.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.Error(w, domain.NewValidationError([]string{err.Error()}))
		return
	}

	var buf bytes.Buffer
	if err := transfer.Export(&buf, h.svc.Snapshot(), format, time.Now(), middleware.GetLocation(r.Context())); err != nil {
		response.Error(w, domain.NewInternalError(err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Import handles POST /import with a JSON array body.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxImportSize+1))
	if err != nil {
		response.Error(w, domain.NewInvalidImportError("failed to read request body"))
		return
	}
	if len(data) > MaxImportSize {
		response.Error(w, domain.NewInvalidImportError("file is too large"))
		return
	}

	n, err := h.svc.Import(r.Context(), data)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]int{"imported": n})
}

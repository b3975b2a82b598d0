package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studyplanner/planner/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains error details.
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ListResponse wraps a list with its size.
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an error response based on the domain error.
func Error(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewInternalError(err)
	}

	status := mapErrorCodeToStatus(domainErr.Code)
	JSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Context: domainErr.Context,
		},
	})
}

// List sends a list response.
func List(w http.ResponseWriter, data interface{}, total int) {
	JSON(w, http.StatusOK, ListResponse{Data: data, Total: total})
}

// Created sends a 201 Created response with JSON body.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with JSON body.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code domain.ErrorCode) int {
	return mapErrorCodeToStatus(code)
}

func mapErrorCodeToStatus(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeTaskNotFound:
		return http.StatusNotFound
	case domain.ErrCodeValidationFailed, domain.ErrCodeInvalidImport, domain.ErrCodeConfirmationRequired:
		return http.StatusBadRequest
	case domain.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeTaskNotFound         ErrorCode = "TASK_NOT_FOUND"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidImport        ErrorCode = "INVALID_IMPORT"
	ErrCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrCodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents an error in the domain layer with context.
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewTaskNotFoundError creates a task not found error.
func NewTaskNotFoundError(taskID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: fmt.Sprintf("Task %s not found", taskID),
		Context: map[string]interface{}{"id": taskID},
	}
}

// NewValidationError creates a validation error.
func NewValidationError(details []string) *DomainError {
	msg := "Validation failed"
	if len(details) == 1 {
		msg = fmt.Sprintf("Validation failed: %s", details[0])
	}
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: msg,
		Context: map[string]interface{}{"details": details},
	}
}

// NewInvalidImportError creates an error for import data that is not a JSON
// array of tasks.
func NewInvalidImportError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidImport,
		Message: "Invalid file",
		Context: map[string]interface{}{"reason": reason},
	}
}

// NewConfirmationRequiredError creates an error for destructive operations
// that were not confirmed.
func NewConfirmationRequiredError(action string) *DomainError {
	return &DomainError{
		Code:    ErrCodeConfirmationRequired,
		Message: fmt.Sprintf("Confirmation required to %s", action),
		Context: map[string]interface{}{"action": action},
	}
}

// NewInternalError creates an internal error.
func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInternalError,
		Message: "An internal error occurred",
		Context: map[string]interface{}{},
	}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

package planner

import "errors"

// Sentinel errors for connection-related issues.
var (
	// ErrServerNotRunning indicates the server is not reachable.
	ErrServerNotRunning = errors.New("server is not running or unreachable")
	// ErrServerUnhealthy indicates the health check failed.
	ErrServerUnhealthy = errors.New("server health check failed")
)

// ErrorCode represents a domain error code from the API.
type ErrorCode string

const (
	ErrCodeTaskNotFound         ErrorCode = "TASK_NOT_FOUND"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidImport        ErrorCode = "INVALID_IMPORT"
	ErrCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrCodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// Error represents an error response from the planner API.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// Details returns the validation problems carried by the error.
func (e *Error) Details() []string {
	return extractStringSlice(e.Context, "details")
}

// apiErrorResponse wraps the error in the API response format.
type apiErrorResponse struct {
	Error apiError `json:"error"`
}

// apiError is the JSON structure for an API error.
type apiError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// IsTaskNotFound returns true if the error indicates a task was not found.
func IsTaskNotFound(err error) bool {
	return hasErrorCode(err, ErrCodeTaskNotFound)
}

// IsValidationFailed returns true if the error indicates validation failed.
func IsValidationFailed(err error) bool {
	return hasErrorCode(err, ErrCodeValidationFailed)
}

// IsInvalidImport returns true if the import data was rejected.
func IsInvalidImport(err error) bool {
	return hasErrorCode(err, ErrCodeInvalidImport)
}

// IsConfirmationRequired returns true if a destructive call was not confirmed.
func IsConfirmationRequired(err error) bool {
	return hasErrorCode(err, ErrCodeConfirmationRequired)
}

// IsServerNotRunning returns true if the error indicates the server is not running.
func IsServerNotRunning(err error) bool {
	return errors.Is(err, ErrServerNotRunning)
}

// IsServerUnhealthy returns true if the error indicates the server is unhealthy.
func IsServerUnhealthy(err error) bool {
	return errors.Is(err, ErrServerUnhealthy)
}

// hasErrorCode checks if the error has the given error code.
func hasErrorCode(err error, code ErrorCode) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Audit Trail Business Logic (AUD) ----

func ErrValidation(message string) *AppError {
	return New("AUD_001", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("AUD_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAnonymizationDisabled() *AppError {
	return New("AUD_003", "Anonymization is disabled by configuration", http.StatusConflict)
}

func ErrInvalidRange() *AppError {
	return New("AUD_004", "Invalid range: start must not be after end", http.StatusBadRequest)
}

func ErrInvalidConfig(message string) *AppError {
	return New("AUD_005", message, http.StatusBadRequest)
}

// ---- Export (EXP) ----

func ErrExportFailure(err error) *AppError {
	return Wrap("EXP_001", "Export serialization failure", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

func ErrStoreError(err error) *AppError {
	return Wrap("SYS_001", "Internal store error", http.StatusInternalServerError, err)
}

func ErrPublishError(err error) *AppError {
	return Wrap("SYS_002", "Notification publish failure", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Package errors provides custom error types for the Amanah detection API.
// All service-layer errors should use AppError to ensure consistent error
// responses that carry enough diagnostic detail for remediation without
// leaking internals the caller has no use for.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Detection pipeline errors.
var (
	// ErrPersistence covers any failure of the backing store during insert
	// or query. The pipeline never retries: a transaction that persisted
	// before a later step failed stays persisted and unscored, and the
	// caller owns any retry or backfill policy.
	ErrPersistence = &AppError{Code: "PERSISTENCE_ERROR", Message: "Persistent store operation failed", StatusCode: http.StatusInternalServerError}

	// ErrInvalidAmount is raised when scoring encounters a non-finite
	// amount. Rejecting loudly avoids masking data-quality problems as
	// low-risk transactions.
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Transaction amount is not a valid number", StatusCode: http.StatusUnprocessableEntity}
)

// Transaction and flag errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrFlagNotFound        = &AppError{Code: "FLAG_NOT_FOUND", Message: "Anomaly flag not found", StatusCode: http.StatusNotFound}
	ErrDuplicateFlag       = &AppError{Code: "DUPLICATE_FLAG", Message: "Transaction already has an anomaly flag", StatusCode: http.StatusConflict}
)

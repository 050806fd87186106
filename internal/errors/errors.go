// Package errors provides custom error types for the gagyebu API.
// All service-layer errors use AppError so that responses are consistent
// and never leak internal details to clients.
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
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
)

// Fixed-transaction (recurring rule) errors.
var (
	ErrFixedNotFound      = &AppError{Code: "FIXED_NOT_FOUND", Message: "Fixed transaction not found", StatusCode: http.StatusNotFound}
	ErrNotAnInstallment   = &AppError{Code: "NOT_AN_INSTALLMENT", Message: "Fixed transaction is not an installment", StatusCode: http.StatusBadRequest}
	ErrInvalidInstallment = &AppError{Code: "INVALID_INSTALLMENT", Message: "Installment principal and months must be positive", StatusCode: http.StatusBadRequest}
)

// Budget goal errors.
var (
	ErrGoalNotFound  = &AppError{Code: "GOAL_NOT_FOUND", Message: "Budget goal not found", StatusCode: http.StatusNotFound}
	ErrDuplicateGoal = &AppError{Code: "DUPLICATE_GOAL", Message: "A goal for this category already exists", StatusCode: http.StatusConflict}
)

// Settings errors.
var (
	ErrInvalidCycleDay = &AppError{Code: "INVALID_CYCLE_DAY", Message: "Cycle start day must be between 1 and 31", StatusCode: http.StatusBadRequest}
)

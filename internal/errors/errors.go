// Package errors provides custom error types for the FinVue API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
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

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrUnknownCategory     = &AppError{Code: "UNKNOWN_CATEGORY", Message: "Category is not in the active set for this type", StatusCode: http.StatusBadRequest}
	ErrUnsupportedCurrency = &AppError{Code: "UNSUPPORTED_CURRENCY", Message: "Currency is not supported", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists for this type", StatusCode: http.StatusConflict}
	ErrLastCategory      = &AppError{Code: "LAST_CATEGORY", Message: "Cannot remove the last category of a type", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound    = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetNotExpense  = &AppError{Code: "BUDGET_NOT_EXPENSE", Message: "Budgets can only be set for expense categories", StatusCode: http.StatusBadRequest}
)

// Pulse errors.
var (
	ErrPulseNotFound    = &AppError{Code: "PULSE_NOT_FOUND", Message: "Recurring pulse not found", StatusCode: http.StatusNotFound}
	ErrUnknownFrequency = &AppError{Code: "UNKNOWN_FREQUENCY", Message: "Unknown pulse frequency", StatusCode: http.StatusInternalServerError}
)

// Advisor errors.
var (
	ErrAdvisorUnavailable = &AppError{Code: "ADVISOR_UNAVAILABLE", Message: "The AI advisor is unavailable right now. Please try again later.", StatusCode: http.StatusBadGateway}
	ErrParseFailed        = &AppError{Code: "PARSE_FAILED", Message: "Could not understand that transaction description", StatusCode: http.StatusUnprocessableEntity}
)

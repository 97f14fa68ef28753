package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`

	base *AppError
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether the error derives from target, so errors.Is works
// against the package sentinels even when detail was added.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e == t || (e.base != nil && e.base.Is(target))
}

// WithDetail returns a copy of the error carrying extra message context.
// The copy still matches the original via errors.Is.
func (e *AppError) WithDetail(detail string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message + ": " + detail,
		base:    e,
	}
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Point-of-sale errors. All are user-facing and recoverable; the POS
// screen decides how to present them.
var (
	ErrMissingRequiredModifier = &AppError{Code: http.StatusUnprocessableEntity, Message: "A required modifier group has no selection"}
	ErrInsufficientStock       = &AppError{Code: http.StatusConflict, Message: "Not enough stock available"}
	ErrCannotMoveEntireTicket  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cannot move every item to a new ticket"}
	ErrNothingSelected         = &AppError{Code: http.StatusBadRequest, Message: "No line items selected"}
	ErrInvalidPaymentMethod    = &AppError{Code: http.StatusUnprocessableEntity, Message: "Payment method is invalid or inactive"}
	ErrEmptyTicket             = &AppError{Code: http.StatusBadRequest, Message: "Ticket has no items"}
	ErrNoOpenSession           = &AppError{Code: http.StatusConflict, Message: "No open cash session"}
	ErrSessionAlreadyOpen      = &AppError{Code: http.StatusConflict, Message: "A cash session is already open"}
	ErrSessionClosed           = &AppError{Code: http.StatusConflict, Message: "Cash session is already closed"}
	ErrInsufficientTender      = &AppError{Code: http.StatusUnprocessableEntity, Message: "Tendered amount does not cover the total"}
)

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}

package errors

import (
	"net/http"

	"courierhub/internal/errors"
)

// Kind is the coarse category of a domain failure.
type Kind string

const (
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidState      Kind = "INVALID_STATE"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindConflict          Kind = "CONFLICT"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindForbidden         Kind = "FORBIDDEN"
	KindInternal          Kind = "INTERNAL"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Kind() Kind        // Domain failure category
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors derived from the same predefined error through WithDetails.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Kind returns the domain failure category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types
var (
	// Generic kinds
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		KindInvalidInput,
		"INVALID_INPUT",
		"Invalid input",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		KindInvalidInput,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		KindConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	// Courier-related errors
	ErrCourierNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"COURIER_NOT_FOUND",
		"Courier not found",
		"",
	)

	ErrCourierAlreadyExists = NewBaseError(
		http.StatusConflict,
		KindConflict,
		"COURIER_ALREADY_EXISTS",
		"A courier with this name or code already exists",
		"",
	)

	ErrInvalidWeight = NewBaseError(
		http.StatusBadRequest,
		KindInvalidInput,
		"INVALID_WEIGHT",
		"Package weight must be greater than zero and at most 1000 kg",
		"",
	)

	// Shipment-related errors
	ErrShipmentNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"SHIPMENT_NOT_FOUND",
		"Shipment not found",
		"",
	)

	ErrShipmentNotDeletable = NewBaseError(
		http.StatusBadRequest,
		KindInvalidState,
		"SHIPMENT_NOT_DELETABLE",
		"Can only delete pending or cancelled shipments",
		"",
	)

	ErrInvalidState = NewBaseError(
		http.StatusConflict,
		KindInvalidState,
		"INVALID_STATE",
		"Operation not allowed in the shipment's current status",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		KindInvalidInput,
		"INVALID_STATUS",
		"Unknown shipment status",
		"",
	)

	ErrCannotProgress = NewBaseError(
		http.StatusBadRequest,
		KindInvalidTransition,
		"CANNOT_PROGRESS",
		"Shipment already at final status or cannot progress",
		"",
	)

	ErrTrackingIDConflict = NewBaseError(
		http.StatusConflict,
		KindConflict,
		"TRACKING_ID_CONFLICT",
		"Tracking ID already in use",
		"",
	)

	ErrTrackingNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"TRACKING_NOT_FOUND",
		"No tracking information found",
		"",
	)

	// Notification-related errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		KindConflict,
		"USER_ALREADY_EXISTS",
		"This email is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusUnauthorized,
		KindUnauthorized,
		"ACCOUNT_INACTIVE",
		"This account has been deactivated",
		"",
	)

	ErrWeakPassword = NewBaseError(
		http.StatusBadRequest,
		KindInvalidInput,
		"WEAK_PASSWORD",
		"Password does not meet the strength requirements",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		KindInternal,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Access-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		KindUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		KindForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrOperatorRequired = NewBaseError(
		http.StatusForbidden,
		KindForbidden,
		"OPERATOR_REQUIRED",
		"Only staff or admin may change shipment status",
		"",
	)

	// Label-related errors
	ErrLabelNotGenerated = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"LABEL_NOT_GENERATED",
		"No label has been generated for this shipment",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		KindInternal,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		KindInternal,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Kind returns the domain failure category
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

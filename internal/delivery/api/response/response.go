// Package response writes the JSON envelopes of the API.
package response

import (
	"net/http"

	deliverycontext "courierhub/internal/delivery/context"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data    any       `json:"data"`
	Message string    `json:"message,omitempty"`
	Meta    *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "SHIPMENT_NOT_FOUND"
	Kind    string `json:"kind,omitempty"`    // Domain failure category, e.g., "NOT_FOUND"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID  string            `json:"request_id"`           // Request tracking ID
	Pagination *usecase.PageInfo `json:"pagination,omitempty"` // Set on paged listings
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

// SuccessWithMessage returns a successful response carrying a human-readable message
func SuccessWithMessage(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Message: message, Meta: meta(c)})
}

// Paginated returns a page of data with its pagination metadata
func Paginated(c echo.Context, data any, page usecase.PageInfo) error {
	m := meta(c)
	m.Pagination = &page

	return c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: m})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= 500 || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

// AppError renders a domain error with its kind and, for client errors, its details
func AppError(c echo.Context, appErr domainerrors.AppError, details any) error {
	status := appErr.HTTPCode()
	if status >= 500 || status == http.StatusUnauthorized || status == http.StatusForbidden {
		details = nil
	}

	return c.JSON(status, ErrorResponse{
		Error: &ErrorInfo{
			Code:    appErr.ErrorCode(),
			Kind:    string(appErr.Kind()),
			Message: appErr.Message(),
			Details: details,
		},
		Meta: meta(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// DetailsOf returns the details of appErr, or nil when it has none
func DetailsOf(appErr domainerrors.AppError) any {
	if appErr.Details() == "" {
		return nil
	}

	return appErr.Details()
}

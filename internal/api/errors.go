// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interntrack/backend/internal/models"
	"github.com/interntrack/backend/internal/parser"
	"github.com/interntrack/backend/internal/store"
)

// APIError is the error payload every endpoint returns on failure. The
// message is serialized under "error", which is the key the client
// reads.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
}

// NewMalformedInputError creates a 400 error for an unusable upload
func NewMalformedInputError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "MALFORMED_INPUT",
		Message: message,
	}
}

// NewValidationError creates a 400 error for a rejected patch
func NewValidationError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(name string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("company not found: %s", name),
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
}

// mapError translates domain errors into transport errors. Anything
// unrecognized becomes a 500 without leaking internals.
func mapError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var malformed *parser.MalformedInputError
	if errors.As(err, &malformed) {
		return NewMalformedInputError(malformed.Error())
	}

	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return NewValidationError(validation.Error())
	}

	if errors.Is(err, store.ErrNotFound) {
		return &APIError{
			Status:  http.StatusNotFound,
			Code:    "NOT_FOUND",
			Message: "Company not found.",
		}
	}

	return NewInternalError("An unexpected error occurred")
}

// ErrorHandler is installed as echo's HTTPErrorHandler so every error
// leaves through the same JSON shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = mapError(err)
	}

	_ = c.JSON(apiErr.Status, apiErr)
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the application. Each maps to one failure class:
// bad user input, an external API refusing us, a missing record, missing
// provider credentials, a storage write failing, or an unrecognized provider.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConfiguration   = "CONFIGURATION_ERROR"
	CodePersistence     = "PERSISTENCE_ERROR"
	CodeUnknownProvider = "UNKNOWN_PROVIDER"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`

	// UpstreamStatus is the numeric status an external API answered with,
	// zero when the failure was not upstream.
	UpstreamStatus int `json:"upstream_status,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// NewError creates a new application error
func NewError(statusCode int, code string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewValidationError reports bad user input, naming the offending field
func NewValidationError(field, message string) *AppError {
	err := NewError(http.StatusBadRequest, CodeValidation, message)
	if field != "" {
		err.Details = map[string]string{"field": field}
	}
	return err
}

// NewUpstreamError reports a non-2xx answer from an external API
func NewUpstreamError(status int, message string) *AppError {
	err := NewError(http.StatusBadGateway, CodeUpstream, message)
	err.UpstreamStatus = status
	return err
}

// NewNotFoundError reports a record lookup miss
func NewNotFoundError(message string) *AppError {
	return NewError(http.StatusNotFound, CodeNotFound, message)
}

// NewConfigurationError reports missing credentials or settings
func NewConfigurationError(message string) *AppError {
	return NewError(http.StatusPreconditionFailed, CodeConfiguration, message)
}

// NewPersistenceError reports a storage write or read failure
func NewPersistenceError(message string) *AppError {
	return NewError(http.StatusInternalServerError, CodePersistence, message)
}

// NewUnknownProviderError reports an unrecognized provider kind
func NewUnknownProviderError(kind string) *AppError {
	err := NewError(http.StatusBadRequest, CodeUnknownProvider, "unknown provider kind")
	err.Details = map[string]string{"provider": kind}
	return err
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(code string, message string) *AppError {
	return NewError(http.StatusInternalServerError, code, message)
}

// FromError converts any error to an AppError, wrapping unknown errors as internal
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewError(http.StatusInternalServerError, CodeInternal, err.Error())
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

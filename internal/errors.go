package internal

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call the way the backend surfaces it:
// one kind per branch of the response interceptor.
type ErrorKind string

const (
	ErrorKindValidation   ErrorKind = "VALIDATION_ERROR"
	ErrorKindUnauthorized ErrorKind = "UNAUTHORIZED"
	ErrorKindForbidden    ErrorKind = "FORBIDDEN"
	ErrorKindNotFound     ErrorKind = "NOT_FOUND"
	ErrorKindServer       ErrorKind = "SERVER_ERROR"
	ErrorKindNetwork      ErrorKind = "NETWORK_ERROR"
	ErrorKindParse        ErrorKind = "PARSE_ERROR"
	ErrorKindUnexpected   ErrorKind = "UNEXPECTED_ERROR"
)

// APIError is the failure shape every call through the transport returns.
// Detail carries the backend's "detail" field when the response had one;
// Message is the user-facing fallback shown when it did not.
type APIError struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// UserMessage is what gets surfaced in a notification: the server detail
// when present, the fixed fallback otherwise.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

func NewValidationError(detail string) *APIError {
	return &APIError{
		Kind:       ErrorKindValidation,
		Message:    "request invalid",
		Detail:     detail,
		StatusCode: http.StatusBadRequest,
	}
}

func NewUnauthorizedError() *APIError {
	return &APIError{
		Kind:       ErrorKindUnauthorized,
		Message:    "session expired, please log in again",
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError() *APIError {
	return &APIError{
		Kind:       ErrorKindForbidden,
		Message:    "you do not have permission to access this",
		StatusCode: http.StatusForbidden,
	}
}

func NewNotFoundError() *APIError {
	return &APIError{
		Kind:       ErrorKindNotFound,
		Message:    "the requested resource does not exist",
		StatusCode: http.StatusNotFound,
	}
}

func NewServerError() *APIError {
	return &APIError{
		Kind:       ErrorKindServer,
		Message:    "server error, please try again later",
		StatusCode: http.StatusInternalServerError,
	}
}

func NewNetworkError(cause error) *APIError {
	return &APIError{
		Kind:    ErrorKindNetwork,
		Message: "network error, please check your connection",
		Cause:   cause,
	}
}

func NewParseError(cause error) *APIError {
	return &APIError{
		Kind:    ErrorKindParse,
		Message: "could not decode server response",
		Cause:   cause,
	}
}

func NewUnexpectedError(statusCode int, detail string) *APIError {
	return &APIError{
		Kind:       ErrorKindUnexpected,
		Message:    "request failed",
		Detail:     detail,
		StatusCode: statusCode,
	}
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the error's kind, or ErrorKindUnexpected for foreign errors.
func KindOf(err error) ErrorKind {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind
	}
	return ErrorKindUnexpected
}

// ErrorDetail extracts the server-provided detail from err, falling back to
// the given message. Containers use this to fill their error field.
func ErrorDetail(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

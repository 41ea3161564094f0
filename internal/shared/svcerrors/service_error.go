package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryInvalidArgument  = "invalid_argument"
	categoryResourceConflict = "resource_conflict"
	categoryUnavailable      = "unavailable"
	categoryInternal         = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// ServiceError is the error type every service of visit-analytics returns to its callers.
// Code is stable per failure (ING_1000, QRY_1002, ...) and is what clients, logs and the
// error_code metric label agree on. Message is safe to return to clients; Cause is not.
type ServiceError struct {
	Category       string
	Code           string
	Message        string
	Cause          error
	HttpStatusCode int
}

func newServiceError(category string, status int, code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       category,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: status,
	}
}

// NewInvalidArgumentError reports a request the caller has to fix (400).
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryInvalidArgument, http.StatusBadRequest, code, message, cause)
}

// NewResourceConflictError reports a request that conflicts with stored state (409),
// such as a replayed idempotency key or an event for a frozen day.
func NewResourceConflictError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryResourceConflict, http.StatusConflict, code, message, cause)
}

// NewUnavailableError reports work abandoned because its context ended (503).
// The request can be retried as is.
func NewUnavailableError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryUnavailable, http.StatusServiceUnavailable, code, message, cause)
}

// NewInternalError hides the cause behind a generic message (500).
func NewInternalError(code string, cause error) *ServiceError {
	return newServiceError(categoryInternal, http.StatusInternalServerError, code, "internal server error", cause)
}

func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// AsServiceError finds the first ServiceError in err's chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// CodeOf returns the code of the ServiceError in err's chain, SYS_9001 for any other
// error and "" for nil. It is meant for error_code metric labels.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if svcErr, ok := AsServiceError(err); ok {
		return svcErr.Code
	}
	return errorCodeInternalUndefined
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

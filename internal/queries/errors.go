package queries

import (
	"errors"
	"fmt"

	"visit-analytics/internal/shared/svcerrors"
)

var (
	ErrUnsupportedField = errors.New("unsupported field")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidLimit     = errors.New("invalid limit")
)

const (
	codeUnsupportedField = "QRY_1000"
	codeInvalidDateRange = "QRY_1001"
	codeInvalidLimit     = "QRY_1002"

	codeQueryCancelled = "QRY_9000"
)

// errUnsupportedField returns an error when a field is unknown or cannot serve the query kind.
func errUnsupportedField(query string, field string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnsupportedField,
		fmt.Sprintf("field %q is not supported by %s", field, query),
		fmt.Errorf("%w: query=%s field=%q", ErrUnsupportedField, query, field))
}

func errInvalidDateRange(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidDateRange, cause.Error(),
		fmt.Errorf("%w: %w", ErrInvalidDateRange, cause))
}

func errInvalidLimit(limit string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidLimit,
		fmt.Sprintf("limit must be a non-negative integer, got %q", limit),
		fmt.Errorf("%w: %q", ErrInvalidLimit, limit))
}

// errQueryCancelled returns an error when the query context ends before the result is built.
func errQueryCancelled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeQueryCancelled, "query cancelled before completion",
		fmt.Errorf("queryCancelled: %w", cause))
}

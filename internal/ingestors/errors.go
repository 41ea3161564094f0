package ingestors

import (
	"errors"
	"fmt"

	"visit-analytics/internal/shared/svcerrors"
)

var (
	ErrMalformedEvent = errors.New("malformed event")
)

// IngestionService errors
const (
	codeValidationFailed      = "ING_1000"
	codeBatchAlreadyProcessed = "ING_1001"
	codeMalformedEvent        = "ING_1002"

	codeInternalRawBatchStoreFailed  = "ING_9000"
	codeInternalEventPublisherFailed = "ING_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errEventBatchAlreadyProcessed returns an error when a batch with the same idempotency key was stored before.
func errEventBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "event batch already processed", cause)
}

func errMalformedEvent(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedEvent, cause.Error(), cause)
}

// errInternalRawBatchStoreFailed returns an error when the raw batch store operation fails.
func errInternalRawBatchStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRawBatchStoreFailed, fmt.Errorf("rawBatchStoreFailed: %w", cause))
}

// errInternalEventPublisherFailed returns an error when publishing normalized events fails.
func errInternalEventPublisherFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventPublisherFailed, fmt.Errorf("eventPublisherFailed: %w", cause))
}

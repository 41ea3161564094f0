package aggregators

import (
	"errors"
	"fmt"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/svcerrors"
)

var (
	ErrOutsideRetention = errors.New("event is outside the retention window")
	ErrDayFrozen        = errors.New("day is frozen")
	ErrRegistryClosed   = errors.New("service registry is closed")
)

const (
	codeOutsideRetention = "AGG_1000"
	codeDayFrozen        = "AGG_1001"

	codeInternalRegistryClosed = "AGG_9000"
	codeInternalArchiveFailed  = "AGG_9001"
)

// errOutsideRetention returns an error when an event is dated before the retention window.
func errOutsideRetention(day, cutoff models.Day) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeOutsideRetention,
		fmt.Sprintf("day %s is before the retention window starting %s", day, cutoff),
		fmt.Errorf("%w: day=%s cutoff=%s", ErrOutsideRetention, day, cutoff))
}

// errDayFrozen returns an error when an event targets a frozen day.
func errDayFrozen(service string, day models.Day) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeDayFrozen,
		fmt.Sprintf("day %s is frozen", day),
		fmt.Errorf("%w: service=%s day=%s", ErrDayFrozen, service, day))
}

// errInternalRegistryClosed returns an error when an event arrives after the registry was closed.
func errInternalRegistryClosed() *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRegistryClosed, ErrRegistryClosed)
}

// errInternalArchiveFailed returns an error when a day summary cannot be archived.
func errInternalArchiveFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalArchiveFailed, fmt.Errorf("archiveFailed: %w", cause))
}

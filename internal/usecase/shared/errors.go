package shared

import (
	"errors"
	"fmt"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/pkg/errs"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrResourceNotFound    = errs.New("resource not found")
	ErrResourceUnavailable = errs.New("resource is not available for booking")
	ErrForbidden           = errs.New("not allowed to act on this reservation")
	ErrReservationConflict = errs.New("time slot conflicts with an existing reservation")
)

// ConflictError lists the active reservations that block a window.
type ConflictError struct {
	Conflicts []*reservation.Reservation
}

func NewConflictError(conflicts []*reservation.Reservation) *ConflictError {
	return &ConflictError{Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	return ConflictDetail(len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrReservationConflict
}

func ConflictDetail(n int) string {
	return fmt.Sprintf("Time slot conflicts with %d existing booking(s)", n)
}

var invalidDomainErrors = []error{
	reservation.ErrInvalidWindow,
	reservation.ErrWindowOrder,
	reservation.ErrInvalidStatus,
	reservation.ErrReasonRequired,
	reservation.ErrWindowPassed,
	reservation.ErrNotEnded,
	reservation.ErrUnknownStatus,
}

// Classify marks err with the caller-visible kind it belongs to. Errors that
// already carry a kind, such as store failures, pass through unchanged.
func Classify(err error) error {
	if err == nil || errs.KindOf(err) != errs.KindInternal {
		return err
	}

	switch {
	case errs.Is(err, ErrReservationNotFound), errs.Is(err, ErrResourceNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case errs.Is(err, ErrForbidden):
		return errs.Mark(err, errs.ErrForbidden)
	case errs.Is(err, ErrResourceUnavailable):
		return errs.Mark(err, errs.ErrUnavailable)
	case errs.Is(err, ErrReservationConflict):
		return errs.Mark(err, errs.ErrConflict)
	}

	for _, target := range invalidDomainErrors {
		if errors.Is(err, target) {
			return errs.Mark(err, errs.ErrInvalid)
		}
	}
	return err
}

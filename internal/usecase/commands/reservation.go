package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/domain/resource"
	"resource-hub/internal/domain/user"
	"resource-hub/internal/pkg/clock"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	RequesterID uuid.UUID
	ResourceID  uuid.UUID
	Start       time.Time
	End         time.Time
	Notes       *string
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error)
	Approve(ctx context.Context, id, approverID uuid.UUID, notes *string) (*reservation.Reservation, error)
	Reject(ctx context.Context, id, approverID uuid.UUID, reason string) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id, callerID uuid.UUID, reason *string) (*reservation.Reservation, error)
	Complete(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// CompleteExpired completes up to limit approved reservations whose window
	// has ended and reports how many were completed.
	CompleteExpired(ctx context.Context, limit int) (int, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	clock   clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, factory *reservation.Factory, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
	}
}

// Create is optimistic: the conflict check and the insert are not serialized
// against other creations, so two overlapping pending reservations may both
// land. Approve is where overlaps are settled.
func (uc *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error) {
	var created *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadResource(ctx, tx.Reads(), in.ResourceID)
		if err != nil {
			return err
		}
		if !res.IsBookable() {
			return shared.ErrResourceUnavailable
		}

		r, err := uc.factory.NewPending(res.ID(), in.RequesterID, in.Start, in.End, in.Notes)
		if err != nil {
			return err
		}

		conflicts, err := reservation.NewConflictDetector(tx.Reads()).FindConflicts(ctx, res.ID(), r.Window(), nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return shared.NewConflictError(conflicts)
		}

		if err := tx.Reservations().Insert(ctx, r); err != nil {
			return err
		}
		if err := enqueueEvent(ctx, tx, EventCreated, r, uc.clock.Now()); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	slog.InfoContext(ctx, "reservation created",
		"reservation_id", created.ID(),
		"resource_id", created.ResourceID(),
		"requester_id", created.RequesterID())
	return created, nil
}

func (uc *reservationCommandsImpl) Approve(ctx context.Context, id, approverID uuid.UUID, notes *string) (*reservation.Reservation, error) {
	return uc.transition(ctx, id, &approverID, EventApproved, approveGuard,
		func(ctx context.Context, tx shared.Tx, r *reservation.Reservation, now time.Time) error {
			if err := r.Approve(approverID, notes, now); err != nil {
				return err
			}
			// Another reservation may have been approved since this one was created.
			conflicts, err := reservation.NewConflictDetector(tx.Reads()).FindApprovalConflicts(ctx, r.ResourceID(), r.Window(), r.ID())
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return shared.NewConflictError(conflicts)
			}
			return nil
		})
}

func (uc *reservationCommandsImpl) Reject(ctx context.Context, id, approverID uuid.UUID, reason string) (*reservation.Reservation, error) {
	return uc.transition(ctx, id, &approverID, EventRejected, approveGuard,
		func(_ context.Context, _ shared.Tx, r *reservation.Reservation, now time.Time) error {
			return r.Reject(approverID, reason, now)
		})
}

func (uc *reservationCommandsImpl) Cancel(ctx context.Context, id, callerID uuid.UUID, reason *string) (*reservation.Reservation, error) {
	return uc.transition(ctx, id, &callerID, EventCancelled, reservation.CanCancel,
		func(_ context.Context, _ shared.Tx, r *reservation.Reservation, now time.Time) error {
			return r.Cancel(reason, now)
		})
}

// Complete is bookkeeping driven by the sweeper; it carries no caller.
func (uc *reservationCommandsImpl) Complete(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return uc.transition(ctx, id, nil, EventCompleted, nil,
		func(_ context.Context, _ shared.Tx, r *reservation.Reservation, now time.Time) error {
			return r.Complete(now)
		})
}

func (uc *reservationCommandsImpl) CompleteExpired(ctx context.Context, limit int) (int, error) {
	ids, err := uc.uow.CommandReads().ExpiredApproved(ctx, uc.clock.Now(), limit)
	if err != nil {
		return 0, shared.Classify(err)
	}

	completed := 0
	for _, id := range ids {
		if _, err := uc.Complete(ctx, id); err != nil {
			// Cancelled or already completed since the scan.
			if errs.KindOf(err) == errs.KindInvalid || errs.KindOf(err) == errs.KindNotFound {
				slog.DebugContext(ctx, "skipping reservation during completion sweep",
					"reservation_id", id, "error", err.Error())
				continue
			}
			return completed, err
		}
		completed++
	}
	return completed, nil
}

type guard func(actor user.Actor, r *reservation.Reservation, res *resource.Resource) bool

func approveGuard(actor user.Actor, _ *reservation.Reservation, res *resource.Resource) bool {
	return reservation.CanApprove(actor, res)
}

type mutation func(ctx context.Context, tx shared.Tx, r *reservation.Reservation, now time.Time) error

// transition runs one state change under the resource's transaction lock:
// lock, re-read the row, authorize, mutate, compare-and-swap on the old status.
func (uc *reservationCommandsImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	actorID *uuid.UUID,
	event string,
	allowed guard,
	mutate mutation,
) (*reservation.Reservation, error) {
	var out *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		located, err := loadReservation(ctx, tx.Reads().ReservationByID, id)
		if err != nil {
			return err
		}
		if err := tx.Reservations().LockResource(ctx, located.ResourceID()); err != nil {
			return err
		}
		r, err := loadReservation(ctx, tx.Reads().ReservationByIDForUpdate, id)
		if err != nil {
			return err
		}

		res, err := loadResource(ctx, tx.Reads(), r.ResourceID())
		if err != nil {
			return err
		}
		if allowed != nil {
			actor, err := shared.LoadActor(ctx, tx.Reads(), *actorID)
			if err != nil {
				return err
			}
			if !allowed(actor, r, res) {
				return shared.ErrForbidden
			}
		}

		now := uc.clock.Now()
		prev := r.Status()
		if err := mutate(ctx, tx, r, now); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateDecision(ctx, r, prev); err != nil {
			return err
		}
		if err := enqueueEvent(ctx, tx, event, r, now); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	slog.InfoContext(ctx, "reservation transitioned",
		"reservation_id", out.ID(),
		"status", out.Status().String())
	return out, nil
}

func loadReservation(
	ctx context.Context,
	find func(context.Context, uuid.UUID) (*reservation.Reservation, error),
	id uuid.UUID,
) (*reservation.Reservation, error) {
	r, err := find(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, shared.ErrReservationNotFound
		}
		return nil, err
	}
	return r, nil
}

func loadResource(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*resource.Resource, error) {
	res, err := reads.ResourceByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, shared.ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

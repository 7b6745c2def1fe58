package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/domain/user"
	"resource-hub/internal/pkg/clock"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/pkg/patch"
	"resource-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 10
	AvailableDetail  = "Time slot is available"
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID, status *reservation.Status, limit, offset int) ([]*ReservationView, int, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, status *reservation.Status) ([]*ReservationView, error)
	// ListPending returns pending reservations, limited to resources of ownerID when it is set.
	ListPending(ctx context.Context, ownerID *uuid.UUID) ([]*ReservationView, error)
	ListUpcoming(ctx context.Context, requesterID uuid.UUID, now time.Time, limit int) ([]*ReservationView, error)
	ListPast(ctx context.Context, requesterID uuid.UUID, now time.Time, limit int) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, callerID, id uuid.UUID) (*ReservationView, error)
	ListForRequester(ctx context.Context, requesterID uuid.UUID, status *reservation.Status, page PageRequest) (*Page[*ReservationView], error)
	ListForResource(ctx context.Context, resourceID uuid.UUID, status *reservation.Status) ([]*ReservationView, error)
	PendingApprovals(ctx context.Context, callerID uuid.UUID) ([]*ReservationView, error)
	Upcoming(ctx context.Context, requesterID uuid.UUID, limit int) ([]*ReservationView, error)
	Past(ctx context.Context, requesterID uuid.UUID, limit int) ([]*ReservationView, error)
	CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (*Availability, error)
}

type reservationQueriesImpl struct {
	store  ReservationReadStore
	uow    shared.UnitOfWork
	policy reservation.Policy
	clock  clock.Clock
}

func NewReservationQueries(store ReservationReadStore, uow shared.UnitOfWork, policy reservation.Policy, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{
		store:  store,
		uow:    uow,
		policy: policy,
		clock:  clk,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, callerID, id uuid.UUID) (*ReservationView, error) {
	actor, err := shared.LoadActor(ctx, q.uow.CommandReads(), callerID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, shared.Classify(shared.ErrReservationNotFound)
		}
		return nil, err
	}
	if !reservation.MayView(actor, view.RequesterID, view.ResourceOwnerID) {
		return nil, shared.Classify(shared.ErrForbidden)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListForRequester(ctx context.Context, requesterID uuid.UUID, status *reservation.Status, page PageRequest) (*Page[*ReservationView], error) {
	page = page.Normalize()
	offset, err := page.Offset()
	if err != nil {
		return nil, err
	}
	rows, total, err := q.store.ListByRequester(ctx, requesterID, status, page.PerPage, offset)
	if err != nil {
		return nil, err
	}
	return NewPage(rows, page, total), nil
}

func (q *reservationQueriesImpl) ListForResource(ctx context.Context, resourceID uuid.UUID, status *reservation.Status) ([]*ReservationView, error) {
	if _, err := q.uow.CommandReads().ResourceByID(ctx, resourceID); err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, shared.Classify(shared.ErrResourceNotFound)
		}
		return nil, err
	}
	return q.store.ListByResource(ctx, resourceID, status)
}

// PendingApprovals is the approval inbox: admins see every pending
// reservation, everyone else sees those on resources they own.
func (q *reservationQueriesImpl) PendingApprovals(ctx context.Context, callerID uuid.UUID) ([]*ReservationView, error) {
	actor, err := shared.LoadActor(ctx, q.uow.CommandReads(), callerID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if actor.Role == user.RoleAdmin {
		return q.store.ListPending(ctx, nil)
	}
	return q.store.ListPending(ctx, &callerID)
}

func (q *reservationQueriesImpl) Upcoming(ctx context.Context, requesterID uuid.UUID, limit int) ([]*ReservationView, error) {
	return q.store.ListUpcoming(ctx, requesterID, q.clock.Now(), listLimit(limit))
}

func (q *reservationQueriesImpl) Past(ctx context.Context, requesterID uuid.UUID, limit int) ([]*ReservationView, error) {
	return q.store.ListPast(ctx, requesterID, q.clock.Now(), listLimit(limit))
}

// CheckAvailability answers what Create would decide right now, without writing.
func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (*Availability, error) {
	var result *Availability
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		res, err := reads.ResourceByID(ctx, resourceID)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return shared.ErrResourceNotFound
			}
			return err
		}
		if !res.IsBookable() {
			result = &Availability{Detail: shared.ErrResourceUnavailable.Error()}
			return nil
		}

		window, err := q.policy.ValidateWindow(q.clock.Now(), start, end)
		if err != nil {
			result = &Availability{Detail: err.Error()}
			return nil
		}

		conflicts, err := reservation.NewConflictDetector(reads).FindConflicts(ctx, resourceID, window, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			result = &Availability{
				Detail:    shared.ConflictDetail(len(conflicts)),
				Conflicts: toConflictViews(conflicts),
			}
			return nil
		}

		result = &Availability{Available: true, Detail: AvailableDetail}
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}
	return result, nil
}

func toConflictViews(rs []*reservation.Reservation) []ConflictView {
	out := make([]ConflictView, len(rs))
	for i, r := range rs {
		out[i] = ConflictView{
			ReservationID: r.ID(),
			StartTime:     r.Window().Start(),
			EndTime:       r.Window().End(),
			Status:        r.Status().String(),
		}
	}
	return out
}

func listLimit(limit int) int {
	return patch.Bounded(limit, DefaultListLimit, MaxPerPage)
}

//go:build unit || e2e

package memstore

import (
	"context"
	"sort"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/usecase/queries"

	"github.com/google/uuid"
)

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reservations[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrNotFound, "memstore: reservation %s", id)
	}
	return s.view(r), nil
}

func (s *Store) ListByRequester(_ context.Context, requesterID uuid.UUID, status *reservation.Status, limit, offset int) ([]*queries.ReservationView, int, error) {
	rows := s.filter(func(r *reservation.Reservation) bool {
		return r.RequesterID() == requesterID && (status == nil || r.Status() == *status)
	}, newestFirst)
	total := len(rows)
	if offset >= total {
		return []*queries.ReservationView{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return rows[offset:end], total, nil
}

func (s *Store) ListByResource(_ context.Context, resourceID uuid.UUID, status *reservation.Status) ([]*queries.ReservationView, error) {
	return s.filter(func(r *reservation.Reservation) bool {
		return r.ResourceID() == resourceID && (status == nil || r.Status() == *status)
	}, earliestFirst), nil
}

func (s *Store) ListPending(_ context.Context, ownerID *uuid.UUID) ([]*queries.ReservationView, error) {
	return s.filter(func(r *reservation.Reservation) bool {
		if r.Status() != reservation.StatusPending {
			return false
		}
		if ownerID == nil {
			return true
		}
		res, ok := s.data.resources[r.ResourceID()]
		return ok && res.OwnerID() == *ownerID
	}, earliestFirst), nil
}

func (s *Store) ListUpcoming(_ context.Context, requesterID uuid.UUID, now time.Time, limit int) ([]*queries.ReservationView, error) {
	rows := s.filter(func(r *reservation.Reservation) bool {
		return r.RequesterID() == requesterID && r.IsActive() && r.Window().Start().After(now)
	}, earliestFirst)
	return head(rows, limit), nil
}

func (s *Store) ListPast(_ context.Context, requesterID uuid.UUID, now time.Time, limit int) ([]*queries.ReservationView, error) {
	rows := s.filter(func(r *reservation.Reservation) bool {
		return r.RequesterID() == requesterID && r.Window().End().Before(now)
	}, func(a, b *queries.ReservationView) bool { return a.StartTime.After(b.StartTime) })
	return head(rows, limit), nil
}

func (s *Store) filter(keep func(*reservation.Reservation) bool, less func(a, b *queries.ReservationView) bool) []*queries.ReservationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*queries.ReservationView{}
	for _, r := range s.data.reservations {
		if keep(r) {
			out = append(out, s.view(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (s *Store) view(r *reservation.Reservation) *queries.ReservationView {
	v := &queries.ReservationView{
		ID:          r.ID(),
		ResourceID:  r.ResourceID(),
		RequesterID: r.RequesterID(),
		StartTime:   r.Window().Start(),
		EndTime:     r.Window().End(),
		Status:      r.Status().String(),
		Notes:       r.Notes(),
		ApproverID:  r.ApproverID(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
	if res, ok := s.data.resources[r.ResourceID()]; ok {
		v.ResourceName = res.Name()
		v.ResourceOwnerID = res.OwnerID()
	}
	switch d := r.Decision().(type) {
	case reservation.Approved:
		v.ApprovalNotes = d.Notes
	case reservation.Rejected:
		reason := d.Reason
		v.RejectionReason = &reason
	case reservation.Cancelled:
		at := d.At
		v.CancelledAt = &at
		v.CancellationReason = d.Reason
	case reservation.Completed:
		at := d.At
		v.CompletedAt = &at
	}
	return v
}

func newestFirst(a, b *queries.ReservationView) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID.String() < b.ID.String()
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func earliestFirst(a, b *queries.ReservationView) bool {
	if a.StartTime.Equal(b.StartTime) {
		return a.ID.String() < b.ID.String()
	}
	return a.StartTime.Before(b.StartTime)
}

func head(rows []*queries.ReservationView, limit int) []*queries.ReservationView {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

package readstore

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/readstore/reservation.go -package=readstoremock

import (
	"context"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/converter"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/pkg/pgconv"
	"resource-hub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadQueries interface {
	GetReservation(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Reservations, error)
	GetReservationForUpdate(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Reservations, error)
	FindActiveOverlapping(ctx context.Context, db pgsql.DBTX, arg pgsql.FindActiveOverlappingParams) ([]pgsql.Reservations, error)
	ListExpiredApproved(ctx context.Context, db pgsql.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error)

	GetReservationView(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.ReservationViewRow, error)
	ListReservationViewsByRequester(ctx context.Context, db pgsql.DBTX, arg pgsql.ListReservationViewsByRequesterParams) ([]pgsql.ReservationViewRow, error)
	CountReservationsByRequester(ctx context.Context, db pgsql.DBTX, requesterID uuid.UUID, status pgtype.Text) (int64, error)
	ListReservationViewsByResource(ctx context.Context, db pgsql.DBTX, resourceID uuid.UUID, status pgtype.Text) ([]pgsql.ReservationViewRow, error)
	ListPendingReservationViews(ctx context.Context, db pgsql.DBTX, ownerID pgtype.UUID) ([]pgsql.ReservationViewRow, error)
	ListUpcomingReservationViews(ctx context.Context, db pgsql.DBTX, arg pgsql.ListTimelineParams) ([]pgsql.ReservationViewRow, error)
	ListPastReservationViews(ctx context.Context, db pgsql.DBTX, arg pgsql.ListTimelineParams) ([]pgsql.ReservationViewRow, error)
}

// ReservationReadStore serves both the query side views and the domain
// loads the write side needs inside a transaction.
type ReservationReadStore struct {
	queries ReservationReadQueries
	db      pgsql.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db pgsql.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := s.queries.GetReservationView(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return converter.ReservationViewFromRow(row), nil
}

func (s *ReservationReadStore) ListByRequester(ctx context.Context, requesterID uuid.UUID, status *reservation.Status, limit, offset int) ([]*queries.ReservationView, int, error) {
	statusParam := converter.StatusFilterToPgtype(status)

	total, err := s.queries.CountReservationsByRequester(ctx, s.db, requesterID, statusParam)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reservations by requester", err)
	}

	// #nosec G115 -- queries.PageRequest keeps limit and offset within int32
	rows, err := s.queries.ListReservationViewsByRequester(ctx, s.db, pgsql.ListReservationViewsByRequesterParams{
		RequesterID: requesterID,
		Status:      statusParam,
		Limit:       int32(limit),
		Offset:      int32(offset),
	})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list reservations by requester", err)
	}

	return converter.ReservationViewsFromRows(rows), int(total), nil
}

func (s *ReservationReadStore) ListByResource(ctx context.Context, resourceID uuid.UUID, status *reservation.Status) ([]*queries.ReservationView, error) {
	rows, err := s.queries.ListReservationViewsByResource(ctx, s.db, resourceID, converter.StatusFilterToPgtype(status))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by resource", err)
	}
	return converter.ReservationViewsFromRows(rows), nil
}

func (s *ReservationReadStore) ListPending(ctx context.Context, ownerID *uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := s.queries.ListPendingReservationViews(ctx, s.db, pgconv.UUIDPtrToPgtype(ownerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending reservations", err)
	}
	return converter.ReservationViewsFromRows(rows), nil
}

func (s *ReservationReadStore) ListUpcoming(ctx context.Context, requesterID uuid.UUID, now time.Time, limit int) ([]*queries.ReservationView, error) {
	rows, err := s.queries.ListUpcomingReservationViews(ctx, s.db, timelineParams(requesterID, now, limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming reservations", err)
	}
	return converter.ReservationViewsFromRows(rows), nil
}

func (s *ReservationReadStore) ListPast(ctx context.Context, requesterID uuid.UUID, now time.Time, limit int) ([]*queries.ReservationView, error) {
	rows, err := s.queries.ListPastReservationViews(ctx, s.db, timelineParams(requesterID, now, limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list past reservations", err)
	}
	return converter.ReservationViewsFromRows(rows), nil
}

func timelineParams(requesterID uuid.UUID, now time.Time, limit int) pgsql.ListTimelineParams {
	return pgsql.ListTimelineParams{
		RequesterID: requesterID,
		Now:         pgconv.TimeToPgtype(now),
		Limit:       int32(limit), // #nosec G115 -- bounded by request validation
	}
}

func (s *ReservationReadStore) Reservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.load(ctx, id, s.queries.GetReservation)
}

func (s *ReservationReadStore) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.load(ctx, id, s.queries.GetReservationForUpdate)
}

func (s *ReservationReadStore) load(
	ctx context.Context,
	id uuid.UUID,
	get func(context.Context, pgsql.DBTX, uuid.UUID) (pgsql.Reservations, error),
) (*reservation.Reservation, error) {
	row, err := get(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation", err)
	}

	r, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is inconsistent", err, infra.KindDBFailure)
	}
	return r, nil
}

func (s *ReservationReadStore) FindActiveOverlapping(ctx context.Context, resourceID uuid.UUID, w reservation.Window, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := s.queries.FindActiveOverlapping(ctx, s.db, pgsql.FindActiveOverlappingParams{
		ResourceID: resourceID,
		StartTime:  pgconv.TimeToPgtype(w.Start()),
		EndTime:    pgconv.TimeToPgtype(w.End()),
		ExcludeID:  pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}

	result := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := converter.ReservationFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation is inconsistent", err, infra.KindDBFailure)
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *ReservationReadStore) ExpiredApproved(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	// #nosec G115 -- sweep batch size comes from config
	ids, err := s.queries.ListExpiredApproved(ctx, s.db, pgconv.TimeToPgtype(now), int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired reservations", err)
	}
	return ids, nil
}

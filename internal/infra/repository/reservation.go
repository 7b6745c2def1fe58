package repository

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation.go -package=repositorymock

import (
	"context"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/converter"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	InsertReservation(ctx context.Context, db pgsql.DBTX, arg pgsql.InsertReservationParams) error
	UpdateReservationDecision(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateReservationDecisionParams) (int64, error)
	LockResource(ctx context.Context, db pgsql.DBTX, resourceID uuid.UUID) error
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      pgsql.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db pgsql.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	params := converter.ReservationToInsertParams(res)

	if err := r.queries.InsertReservation(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) UpdateDecision(ctx context.Context, res *reservation.Reservation, prev reservation.Status) error {
	params := converter.ReservationToDecisionParams(res, prev)

	affected, err := r.queries.UpdateReservationDecision(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation decision", err)
	}
	if affected == 0 {
		return errs.Wrapf(reservation.ErrInvalidStatus, "reservation %s is no longer %s", res.ID(), prev)
	}
	return nil
}

func (r *ReservationRepository) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	if err := r.queries.LockResource(ctx, r.db, resourceID); err != nil {
		return infra.WrapRepoErr("failed to lock resource", err)
	}
	return nil
}

package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `r.id, r.resource_id, r.requester_id, r.start_time, r.end_time, r.status, r.notes,
	r.approver_id, r.approval_notes, r.rejection_reason, r.cancellation_reason,
	r.cancelled_at, r.completed_at, r.created_at, r.updated_at`

const reservationViewColumns = reservationColumns + `, res.name, res.owner_id`

func scanReservation(row pgx.Row) (Reservations, error) {
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.RequesterID,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.Notes,
		&i.ApproverID,
		&i.ApprovalNotes,
		&i.RejectionReason,
		&i.CancellationReason,
		&i.CancelledAt,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanReservationView(row pgx.Row) (ReservationViewRow, error) {
	var i ReservationViewRow
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.RequesterID,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.Notes,
		&i.ApproverID,
		&i.ApprovalNotes,
		&i.RejectionReason,
		&i.CancellationReason,
		&i.CancelledAt,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ResourceName,
		&i.ResourceOwnerID,
	)
	return i, err
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		i, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertReservation = `
INSERT INTO reservations (
	id, resource_id, requester_id, start_time, end_time, status, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type InsertReservationParams struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	StartTime   pgtype.Timestamptz
	EndTime     pgtype.Timestamptz
	Status      string
	Notes       pgtype.Text
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) InsertReservation(ctx context.Context, db DBTX, arg InsertReservationParams) error {
	_, err := db.Exec(ctx, insertReservation,
		arg.ID,
		arg.ResourceID,
		arg.RequesterID,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.Notes,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateReservationDecision = `
UPDATE reservations
SET status = $2,
	approver_id = $3,
	approval_notes = $4,
	rejection_reason = $5,
	cancellation_reason = $6,
	cancelled_at = $7,
	completed_at = $8,
	updated_at = $9
WHERE id = $1 AND status = $10
`

type UpdateReservationDecisionParams struct {
	ID                 uuid.UUID
	Status             string
	ApproverID         pgtype.UUID
	ApprovalNotes      pgtype.Text
	RejectionReason    pgtype.Text
	CancellationReason pgtype.Text
	CancelledAt        pgtype.Timestamptz
	CompletedAt        pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
	PrevStatus         string
}

// UpdateReservationDecision reports the number of rows written; zero means
// the row is gone or its status is no longer PrevStatus.
func (q *Queries) UpdateReservationDecision(ctx context.Context, db DBTX, arg UpdateReservationDecisionParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservationDecision,
		arg.ID,
		arg.Status,
		arg.ApproverID,
		arg.ApprovalNotes,
		arg.RejectionReason,
		arg.CancellationReason,
		arg.CancelledAt,
		arg.CompletedAt,
		arg.UpdatedAt,
		arg.PrevStatus,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const lockResource = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

func (q *Queries) LockResource(ctx context.Context, db DBTX, resourceID uuid.UUID) error {
	_, err := db.Exec(ctx, lockResource, resourceID.String())
	return err
}

const getReservation = `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.id = $1`

func (q *Queries) GetReservation(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservation, id))
}

const getReservationForUpdate = getReservation + ` FOR UPDATE`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationForUpdate, id))
}

const findActiveOverlapping = `
SELECT ` + reservationColumns + `
FROM reservations r
WHERE r.resource_id = $1
	AND r.status IN ('pending', 'approved')
	AND r.start_time < $3
	AND $2 < r.end_time
	AND ($4::uuid IS NULL OR r.id <> $4::uuid)
ORDER BY r.start_time, r.id
`

type FindActiveOverlappingParams struct {
	ResourceID uuid.UUID
	StartTime  pgtype.Timestamptz
	EndTime    pgtype.Timestamptz
	ExcludeID  pgtype.UUID
}

func (q *Queries) FindActiveOverlapping(ctx context.Context, db DBTX, arg FindActiveOverlappingParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, findActiveOverlapping, arg.ResourceID, arg.StartTime, arg.EndTime, arg.ExcludeID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReservation)
}

const listExpiredApproved = `
SELECT id FROM reservations
WHERE status = 'approved' AND end_time < $1
ORDER BY end_time, id
LIMIT $2
`

func (q *Queries) ListExpiredApproved(ctx context.Context, db DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listExpiredApproved, now, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (uuid.UUID, error) {
		var id uuid.UUID
		err := row.Scan(&id)
		return id, err
	})
}

const reservationViewFrom = ` FROM reservations r JOIN resources res ON res.id = r.resource_id`

const getReservationView = `SELECT ` + reservationViewColumns + reservationViewFrom + ` WHERE r.id = $1`

func (q *Queries) GetReservationView(ctx context.Context, db DBTX, id uuid.UUID) (ReservationViewRow, error) {
	return scanReservationView(db.QueryRow(ctx, getReservationView, id))
}

const listReservationViewsByRequester = `SELECT ` + reservationViewColumns + reservationViewFrom + `
WHERE r.requester_id = $1 AND ($2::text IS NULL OR r.status = $2::text)
ORDER BY r.created_at DESC, r.id
LIMIT $3 OFFSET $4
`

type ListReservationViewsByRequesterParams struct {
	RequesterID uuid.UUID
	Status      pgtype.Text
	Limit       int32
	Offset      int32
}

func (q *Queries) ListReservationViewsByRequester(ctx context.Context, db DBTX, arg ListReservationViewsByRequesterParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationViewsByRequester, arg.RequesterID, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReservationView)
}

const countReservationsByRequester = `
SELECT count(*) FROM reservations
WHERE requester_id = $1 AND ($2::text IS NULL OR status = $2::text)
`

func (q *Queries) CountReservationsByRequester(ctx context.Context, db DBTX, requesterID uuid.UUID, status pgtype.Text) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countReservationsByRequester, requesterID, status).Scan(&count)
	return count, err
}

const listReservationViewsByResource = `SELECT ` + reservationViewColumns + reservationViewFrom + `
WHERE r.resource_id = $1 AND ($2::text IS NULL OR r.status = $2::text)
ORDER BY r.start_time, r.id
`

func (q *Queries) ListReservationViewsByResource(ctx context.Context, db DBTX, resourceID uuid.UUID, status pgtype.Text) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationViewsByResource, resourceID, status)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReservationView)
}

const listPendingReservationViews = `SELECT ` + reservationViewColumns + reservationViewFrom + `
WHERE r.status = 'pending' AND ($1::uuid IS NULL OR res.owner_id = $1::uuid)
ORDER BY r.start_time, r.id
`

func (q *Queries) ListPendingReservationViews(ctx context.Context, db DBTX, ownerID pgtype.UUID) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listPendingReservationViews, ownerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReservationView)
}

const listUpcomingReservationViews = `SELECT ` + reservationViewColumns + reservationViewFrom + `
WHERE r.requester_id = $1 AND r.status IN ('pending', 'approved') AND r.start_time > $2
ORDER BY r.start_time, r.id
LIMIT $3
`

type ListTimelineParams struct {
	RequesterID uuid.UUID
	Now         pgtype.Timestamptz
	Limit       int32
}

func (q *Queries) ListUpcomingReservationViews(ctx context.Context, db DBTX, arg ListTimelineParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listUpcomingReservationViews, arg.RequesterID, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReservationView)
}

const listPastReservationViews = `SELECT ` + reservationViewColumns + reservationViewFrom + `
WHERE r.requester_id = $1 AND r.end_time < $2
ORDER BY r.start_time DESC, r.id
LIMIT $3
`

func (q *Queries) ListPastReservationViews(ctx context.Context, db DBTX, arg ListTimelineParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listPastReservationViews, arg.RequesterID, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReservationView)
}

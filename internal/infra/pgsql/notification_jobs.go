package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, status, run_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	Status  string
	RunAt   pgtype.Timestamptz
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob,
		arg.Kind,
		arg.Topic,
		arg.Payload,
		arg.Status,
		arg.RunAt,
	)
	return err
}

// Claimed rows move to running so a concurrent relay skips them even after
// this transaction commits. A running row last touched before $2 belongs to
// a relay that never reported back and is claimed again.
const claimDueNotificationJobs = `
UPDATE notification_jobs
SET status = 'running', attempts = attempts + 1, updated_at = $1
WHERE id IN (
	SELECT id FROM notification_jobs
	WHERE (status = 'queued' AND run_at <= $1)
		OR (status = 'running' AND updated_at < $2)
	ORDER BY run_at, id
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, status, attempts, last_error, run_at, created_at, updated_at
`

type ClaimDueNotificationJobsParams struct {
	Now         pgtype.Timestamptz
	StaleBefore pgtype.Timestamptz
	Limit       int32
}

func (q *Queries) ClaimDueNotificationJobs(ctx context.Context, db DBTX, arg ClaimDueNotificationJobsParams) ([]NotificationJobs, error) {
	rows, err := db.Query(ctx, claimDueNotificationJobs, arg.Now, arg.StaleBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (NotificationJobs, error) {
		var i NotificationJobs
		err := row.Scan(
			&i.ID,
			&i.Kind,
			&i.Topic,
			&i.Payload,
			&i.Status,
			&i.Attempts,
			&i.LastError,
			&i.RunAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		)
		return i, err
	})
}

const markNotificationJobSent = `
UPDATE notification_jobs SET status = 'sent', last_error = NULL, updated_at = now() WHERE id = $1
`

func (q *Queries) MarkNotificationJobSent(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, markNotificationJobSent, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// A null RetryAt gives the job up for good.
const markNotificationJobFailed = `
UPDATE notification_jobs
SET status = CASE WHEN $3::timestamptz IS NULL THEN 'failed' ELSE 'queued' END,
	run_at = COALESCE($3::timestamptz, run_at),
	last_error = $2,
	updated_at = now()
WHERE id = $1
`

type MarkNotificationJobFailedParams struct {
	ID        uuid.UUID
	LastError pgtype.Text
	RetryAt   pgtype.Timestamptz
}

func (q *Queries) MarkNotificationJobFailed(ctx context.Context, db DBTX, arg MarkNotificationJobFailedParams) (int64, error) {
	tag, err := db.Exec(ctx, markNotificationJobFailed, arg.ID, arg.LastError, arg.RetryAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package repository

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/repository/notification.go -package=repositorymock

import (
	"context"
	"time"

	"resource-hub/internal/infra"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/pkg/pgconv"
	"resource-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

const jobStatusQueued = "queued"

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateNotificationJobParams) error
	ClaimDueNotificationJobs(ctx context.Context, db pgsql.DBTX, arg pgsql.ClaimDueNotificationJobsParams) ([]pgsql.NotificationJobs, error)
	MarkNotificationJobSent(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (int64, error)
	MarkNotificationJobFailed(ctx context.Context, db pgsql.DBTX, arg pgsql.MarkNotificationJobFailedParams) (int64, error)
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      pgsql.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db pgsql.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	params := pgsql.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  jobStatusQueued,
	}

	if err := r.queries.CreateNotificationJob(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	// #nosec G115 -- relay batch sizes come from config and stay small
	rows, err := r.queries.ClaimDueNotificationJobs(ctx, r.db, pgsql.ClaimDueNotificationJobsParams{
		Now:         pgconv.TimeToPgtype(now),
		StaleBefore: pgconv.TimeToPgtype(now.Add(-shared.ClaimLease)),
		Limit:       int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: int(row.Attempts),
		}
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	affected, err := r.queries.MarkNotificationJobSent(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	return nil
}

// MarkFailed requeues the job at retryAt, or gives it up when retryAt is nil.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt *time.Time) error {
	params := pgsql.MarkNotificationJobFailedParams{
		ID:        id,
		LastError: pgconv.StringToPgtype(lastError),
		RetryAt:   pgconv.TimePtrToPgtype(retryAt),
	}

	affected, err := r.queries.MarkNotificationJobFailed(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	return nil
}

//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resource-hub/internal/infra"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/infra/repository"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/pkg/pgconv"
	"resource-hub/internal/usecase/shared"
	repositorymock "resource-hub/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newNotificationRepo(t *testing.T) (*repository.NotificationRepository, *repositorymock.MockNotificationWriteQueries, pgsql.DBTX) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	return repository.NewNotificationRepository(mockQueries, mockDB), mockQueries, mockDB
}

func TestNotificationRepository_CreateJob(t *testing.T) {
	ctx := context.Background()
	runAt := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)
	payload := []byte(`{"reservation_id":"x"}`)

	t.Run("success: job is queued", func(t *testing.T) {
		repo, mockQueries, mockDB := newNotificationRepo(t)
		mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.CreateNotificationJobParams) error {
				assert.Equal(t, "reservation", arg.Kind)
				assert.Equal(t, "reservation.created", arg.Topic)
				assert.Equal(t, payload, arg.Payload)
				assert.Equal(t, "queued", arg.Status)
				assert.True(t, arg.RunAt.Time.Equal(runAt))
				return nil
			})

		require.NoError(t, repo.CreateJob(ctx, "reservation", "reservation.created", payload, runAt))
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		repo, mockQueries, mockDB := newNotificationRepo(t)
		mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, gomock.Any()).Return(errors.New("boom"))

		err := repo.CreateJob(ctx, "reservation", "reservation.created", payload, runAt)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestNotificationRepository_ClaimDue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("success: rows are mapped to jobs", func(t *testing.T) {
		repo, mockQueries, mockDB := newNotificationRepo(t)
		id := uuid.New()
		mockQueries.EXPECT().ClaimDueNotificationJobs(ctx, mockDB, pgsql.ClaimDueNotificationJobsParams{
			Now:         pgconv.TimeToPgtype(now),
			StaleBefore: pgconv.TimeToPgtype(now.Add(-shared.ClaimLease)),
			Limit:       10,
		}).
			Return([]pgsql.NotificationJobs{{
				ID:       id,
				Kind:     "reservation",
				Topic:    "reservation.approved",
				Payload:  []byte(`{}`),
				Status:   "running",
				Attempts: 2,
			}}, nil)

		jobs, err := repo.ClaimDue(ctx, now, 10)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, id, jobs[0].ID)
		assert.Equal(t, "reservation.approved", jobs[0].Topic)
		assert.Equal(t, 2, jobs[0].Attempts)
	})

	t.Run("error: lost connection is transient", func(t *testing.T) {
		repo, mockQueries, mockDB := newNotificationRepo(t)
		mockQueries.EXPECT().ClaimDueNotificationJobs(ctx, mockDB, gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"})

		_, err := repo.ClaimDue(ctx, now, 10)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))
		assert.True(t, errs.Is(err, errs.ErrTransient))
	})
}

func TestNotificationRepository_Mark(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	retryAt := time.Date(2030, 5, 1, 8, 0, 30, 0, time.UTC)

	testCases := []struct {
		name       string
		call       func(*repository.NotificationRepository) error
		setupMock  func(*repositorymock.MockNotificationWriteQueries, pgsql.DBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: sent",
			call: func(r *repository.NotificationRepository) error { return r.MarkSent(ctx, id) },
			setupMock: func(mock *repositorymock.MockNotificationWriteQueries, tx pgsql.DBTX) {
				mock.EXPECT().MarkNotificationJobSent(ctx, tx, id).Return(int64(1), nil)
			},
		},
		{
			name: "error: sent job vanished",
			call: func(r *repository.NotificationRepository) error { return r.MarkSent(ctx, id) },
			setupMock: func(mock *repositorymock.MockNotificationWriteQueries, tx pgsql.DBTX) {
				mock.EXPECT().MarkNotificationJobSent(ctx, tx, id).Return(int64(0), nil)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name: "success: requeued with retry time",
			call: func(r *repository.NotificationRepository) error { return r.MarkFailed(ctx, id, "broker down", &retryAt) },
			setupMock: func(mock *repositorymock.MockNotificationWriteQueries, tx pgsql.DBTX) {
				mock.EXPECT().MarkNotificationJobFailed(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.MarkNotificationJobFailedParams) (int64, error) {
						assert.Equal(t, id, arg.ID)
						assert.Equal(t, "broker down", arg.LastError.String)
						assert.True(t, arg.RetryAt.Valid)
						assert.True(t, arg.RetryAt.Time.Equal(retryAt))
						return 1, nil
					})
			},
		},
		{
			name: "success: given up without retry time",
			call: func(r *repository.NotificationRepository) error { return r.MarkFailed(ctx, id, "broker down", nil) },
			setupMock: func(mock *repositorymock.MockNotificationWriteQueries, tx pgsql.DBTX) {
				mock.EXPECT().MarkNotificationJobFailed(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.MarkNotificationJobFailedParams) (int64, error) {
						assert.False(t, arg.RetryAt.Valid)
						return 1, nil
					})
			},
		},
		{
			name: "error: failed job vanished",
			call: func(r *repository.NotificationRepository) error { return r.MarkFailed(ctx, id, "x", nil) },
			setupMock: func(mock *repositorymock.MockNotificationWriteQueries, tx pgsql.DBTX) {
				mock.EXPECT().MarkNotificationJobFailed(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
			expectKind: infra.KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mockQueries, mockDB := newNotificationRepo(t)
			tc.setupMock(mockQueries, mockDB)

			err := tc.call(repo)

			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got %v", tc.expectKind, err)
		})
	}
}

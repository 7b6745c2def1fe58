//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/infra/repository"
	"resource-hub/internal/pkg/errs"
	"resource-hub/tests/common/builder"
	repositorymock "resource-hub/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Insert Reservation Tests
// =============================================================================

func TestReservationRepository_Insert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name           string
		setupMock      func(*repositorymock.MockReservationWriteQueries, *reservation.Reservation, pgsql.DBTX)
		expectedError  bool
		expectKind     infra.RepositoryErrorKind
		expectSentinel error
	}{
		{
			name: "success: reservation inserted as pending",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, r *reservation.Reservation, tx pgsql.DBTX) {
				mock.EXPECT().InsertReservation(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.InsertReservationParams) error {
						assert.Equal(t, r.ID(), arg.ID)
						assert.Equal(t, "pending", arg.Status)
						assert.True(t, arg.StartTime.Time.Equal(r.Window().Start()))
						assert.True(t, arg.Notes.Valid)
						return nil
					})
			},
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				mock.EXPECT().InsertReservation(ctx, tx, gomock.Any()).Return(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: duplicate id",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().InsertReservation(ctx, tx, gomock.Any()).Return(dup)
			},
			expectedError:  true,
			expectKind:     infra.KindDuplicateKey,
			expectSentinel: errs.ErrConflict,
		},
		{
			name: "error: unknown resource",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				fk := &pgconn.PgError{Code: "23503", Message: "insert violates foreign key constraint"}
				mock.EXPECT().InsertReservation(ctx, tx, gomock.Any()).Return(fk)
			},
			expectedError:  true,
			expectKind:     infra.KindForeignKeyViolated,
			expectSentinel: errs.ErrNotFound,
		},
		{
			name: "error: connection lost",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				lost := &pgconn.PgError{Code: "08006", Message: "connection failure"}
				mock.EXPECT().InsertReservation(ctx, tx, gomock.Any()).Return(lost)
			},
			expectedError:  true,
			expectKind:     infra.KindUnavailable,
			expectSentinel: errs.ErrTransient,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			domainReservation := builder.NewReservationBuilder().BuildDomain()
			tc.setupMock(mockQueries, domainReservation, mockDB)

			actualError := repo.Insert(ctx, domainReservation)

			if tc.expectedError {
				require.Error(t, actualError)
				if tc.expectKind != "" {
					assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				}
				if tc.expectSentinel != nil {
					assert.True(t, errs.Is(actualError, tc.expectSentinel))
				}
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// UpdateDecision Tests
// =============================================================================

func TestReservationRepository_UpdateDecision(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	approve := func(r *reservation.Reservation) {
		notes := "ok"
		require.NoError(t, r.Approve(uuid.New(), &notes, now))
	}

	testCases := []struct {
		name          string
		mutate        func(*reservation.Reservation)
		prev          reservation.Status
		setupMock     func(*repositorymock.MockReservationWriteQueries, *reservation.Reservation, pgsql.DBTX)
		expectedError bool
		expectInvalid bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name:   "success: approval columns are written against the previous status",
			mutate: approve,
			prev:   reservation.StatusPending,
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, r *reservation.Reservation, tx pgsql.DBTX) {
				mock.EXPECT().UpdateReservationDecision(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.UpdateReservationDecisionParams) (int64, error) {
						assert.Equal(t, r.ID(), arg.ID)
						assert.Equal(t, "approved", arg.Status)
						assert.Equal(t, "pending", arg.PrevStatus)
						assert.True(t, arg.ApproverID.Valid)
						assert.Equal(t, "ok", arg.ApprovalNotes.String)
						assert.False(t, arg.RejectionReason.Valid)
						assert.False(t, arg.CancelledAt.Valid)
						assert.True(t, arg.UpdatedAt.Time.Equal(now))
						return 1, nil
					})
			},
		},
		{
			name: "success: cancellation clears approval columns",
			mutate: func(r *reservation.Reservation) {
				reason := "plans changed"
				require.NoError(t, r.Cancel(&reason, now))
			},
			prev: reservation.StatusPending,
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				mock.EXPECT().UpdateReservationDecision(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.UpdateReservationDecisionParams) (int64, error) {
						assert.Equal(t, "cancelled", arg.Status)
						assert.False(t, arg.ApproverID.Valid)
						assert.Equal(t, "plans changed", arg.CancellationReason.String)
						assert.True(t, arg.CancelledAt.Valid)
						return 1, nil
					})
			},
		},
		{
			name:   "error: status moved underneath",
			mutate: approve,
			prev:   reservation.StatusPending,
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				mock.EXPECT().UpdateReservationDecision(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
			expectedError: true,
			expectInvalid: true,
		},
		{
			name:   "error: second approved overlap hits the exclusion constraint",
			mutate: approve,
			prev:   reservation.StatusPending,
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgsql.DBTX) {
				excl := &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"}
				mock.EXPECT().UpdateReservationDecision(ctx, tx, gomock.Any()).Return(int64(0), excl)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			domainReservation := builder.NewReservationBuilder().BuildDomain()
			tc.mutate(domainReservation)
			tc.setupMock(mockQueries, domainReservation, mockDB)

			actualError := repo.UpdateDecision(ctx, domainReservation, tc.prev)

			if !tc.expectedError {
				assert.NoError(t, actualError)
				return
			}
			require.Error(t, actualError)
			if tc.expectInvalid {
				assert.ErrorIs(t, actualError, reservation.ErrInvalidStatus)
			}
			if tc.expectKind != "" {
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			}
		})
	}
}

func TestReservationRepository_LockResource(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, mockDB)
	resourceID := uuid.New()

	mockQueries.EXPECT().LockResource(ctx, mockDB, resourceID).Return(nil)
	require.NoError(t, repo.LockResource(ctx, resourceID))

	deadlock := &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}
	mockQueries.EXPECT().LockResource(ctx, mockDB, resourceID).Return(deadlock)
	err := repo.LockResource(ctx, resourceID)
	require.Error(t, err)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr), "unit of work retries on this code")
	assert.Equal(t, "40P01", pgErr.Code)
}

// =============================================================================
// Test Helpers
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the queries mock instead.")
}

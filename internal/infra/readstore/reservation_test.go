//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/infra/readstore"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/pkg/pgconv"
	readstoremock "resource-hub/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testStart = time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	testEnd   = testStart.Add(time.Hour)
)

func reservationRow(status string) pgsql.Reservations {
	return pgsql.Reservations{
		ID:          uuid.New(),
		ResourceID:  uuid.New(),
		RequesterID: uuid.New(),
		StartTime:   pgconv.TimeToPgtype(testStart),
		EndTime:     pgconv.TimeToPgtype(testEnd),
		Status:      status,
		CreatedAt:   pgconv.TimeToPgtype(testStart.Add(-48 * time.Hour)),
		UpdatedAt:   pgconv.TimeToPgtype(testStart.Add(-48 * time.Hour)),
	}
}

func newReservationStore(t *testing.T) (*readstore.ReservationReadStore, *readstoremock.MockReservationReadQueries, pgsql.DBTX) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
	mockDB := &mockDBTX{}
	return readstore.NewReservationReadStore(mockQueries, mockDB), mockQueries, mockDB
}

// =============================================================================
// Domain Load Tests
// =============================================================================

func TestReservationReadStore_Reservation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name           string
		row            func() pgsql.Reservations
		queryErr       error
		expectStatus   reservation.Status
		expectKind     infra.RepositoryErrorKind
		expectNotFound bool
	}{
		{
			name:         "success: pending row",
			row:          func() pgsql.Reservations { return reservationRow("pending") },
			expectStatus: reservation.StatusPending,
		},
		{
			name: "success: approved row carries approver",
			row: func() pgsql.Reservations {
				row := reservationRow("approved")
				row.ApproverID = pgconv.UUIDToPgtype(uuid.New())
				row.ApprovalNotes = pgconv.StringToPgtype("fine")
				return row
			},
			expectStatus: reservation.StatusApproved,
		},
		{
			name:           "error: no rows",
			row:            func() pgsql.Reservations { return pgsql.Reservations{} },
			queryErr:       pgx.ErrNoRows,
			expectKind:     infra.KindNotFound,
			expectNotFound: true,
		},
		{
			name:       "error: unknown status stored",
			row:        func() pgsql.Reservations { return reservationRow("archived") },
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "error: approved row without approver",
			row:        func() pgsql.Reservations { return reservationRow("approved") },
			expectKind: infra.KindDBFailure,
		},
		{
			name: "error: inverted window stored",
			row: func() pgsql.Reservations {
				row := reservationRow("pending")
				row.EndTime = pgconv.TimeToPgtype(testStart.Add(-time.Hour))
				return row
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, mockQueries, mockDB := newReservationStore(t)
			row := tc.row()
			id := uuid.New()
			mockQueries.EXPECT().GetReservation(ctx, mockDB, id).Return(row, tc.queryErr)

			actual, err := store.Reservation(ctx, id)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.Nil(t, actual)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got %v", tc.expectKind, err)
				assert.Equal(t, tc.expectNotFound, errs.Is(err, errs.ErrNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, row.ID, actual.ID())
			assert.Equal(t, tc.expectStatus, actual.Status())
			assert.True(t, actual.Window().Start().Equal(testStart))
		})
	}
}

func TestReservationReadStore_ReservationForUpdate(t *testing.T) {
	ctx := context.Background()
	store, mockQueries, mockDB := newReservationStore(t)
	row := reservationRow("pending")

	mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, row.ID).Return(row, nil)

	actual, err := store.ReservationForUpdate(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, actual.ID())
}

func TestReservationReadStore_FindActiveOverlapping(t *testing.T) {
	ctx := context.Background()
	window, err := reservation.NewWindow(testStart, testEnd)
	require.NoError(t, err)
	resourceID := uuid.New()

	t.Run("success: parameters carry the window and exclusion", func(t *testing.T) {
		store, mockQueries, mockDB := newReservationStore(t)
		exclude := uuid.New()
		mockQueries.EXPECT().FindActiveOverlapping(ctx, mockDB, pgsql.FindActiveOverlappingParams{
			ResourceID: resourceID,
			StartTime:  pgconv.TimeToPgtype(testStart),
			EndTime:    pgconv.TimeToPgtype(testEnd),
			ExcludeID:  pgconv.UUIDToPgtype(exclude),
		}).Return([]pgsql.Reservations{reservationRow("pending"), reservationRow("pending")}, nil)

		found, err := store.FindActiveOverlapping(ctx, resourceID, window, &exclude)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("success: no exclusion sends null", func(t *testing.T) {
		store, mockQueries, mockDB := newReservationStore(t)
		mockQueries.EXPECT().FindActiveOverlapping(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ pgsql.DBTX, arg pgsql.FindActiveOverlappingParams) ([]pgsql.Reservations, error) {
				assert.False(t, arg.ExcludeID.Valid)
				return []pgsql.Reservations{}, nil
			})

		found, err := store.FindActiveOverlapping(ctx, resourceID, window, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("error: inconsistent row aborts the scan", func(t *testing.T) {
		store, mockQueries, mockDB := newReservationStore(t)
		mockQueries.EXPECT().FindActiveOverlapping(ctx, mockDB, gomock.Any()).
			Return([]pgsql.Reservations{reservationRow("pending"), reservationRow("bogus")}, nil)

		_, err := store.FindActiveOverlapping(ctx, resourceID, window, nil)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("error: pool exhausted is transient", func(t *testing.T) {
		store, mockQueries, mockDB := newReservationStore(t)
		mockQueries.EXPECT().FindActiveOverlapping(ctx, mockDB, gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "53300", Message: "too many connections"})

		_, err := store.FindActiveOverlapping(ctx, resourceID, window, nil)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrTransient))
	})
}

// =============================================================================
// View Tests
// =============================================================================

func TestReservationReadStore_ListByRequester(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	pending := reservation.StatusPending

	t.Run("success: count and page", func(t *testing.T) {
		store, mockQueries, mockDB := newReservationStore(t)
		filter := pgconv.StringToPgtype("pending")
		view := pgsql.ReservationViewRow{
			Reservations:    reservationRow("pending"),
			ResourceName:    "Room A",
			ResourceOwnerID: uuid.New(),
		}
		gomock.InOrder(
			mockQueries.EXPECT().CountReservationsByRequester(ctx, mockDB, requesterID, filter).Return(int64(7), nil),
			mockQueries.EXPECT().ListReservationViewsByRequester(ctx, mockDB, pgsql.ListReservationViewsByRequesterParams{
				RequesterID: requesterID,
				Status:      filter,
				Limit:       5,
				Offset:      5,
			}).Return([]pgsql.ReservationViewRow{view}, nil),
		)

		items, total, err := store.ListByRequester(ctx, requesterID, &pending, 5, 5)
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Room A", items[0].ResourceName)
		assert.Equal(t, "pending", items[0].Status)
		assert.True(t, items[0].StartTime.Equal(testStart))
		assert.Nil(t, items[0].ApproverID)
	})

	t.Run("error: count fails before listing", func(t *testing.T) {
		store, mockQueries, mockDB := newReservationStore(t)
		mockQueries.EXPECT().CountReservationsByRequester(ctx, mockDB, requesterID, pgtype.Text{}).
			Return(int64(0), errors.New("boom"))

		_, _, err := store.ListByRequester(ctx, requesterID, nil, 20, 0)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	store, mockQueries, mockDB := newReservationStore(t)
	id := uuid.New()

	mockQueries.EXPECT().GetReservationView(ctx, mockDB, id).Return(pgsql.ReservationViewRow{}, pgx.ErrNoRows)

	_, err := store.FindByID(ctx, id)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestReservationReadStore_Timeline(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	now := testStart
	expected := pgsql.ListTimelineParams{RequesterID: requesterID, Now: pgconv.TimeToPgtype(now), Limit: 3}

	store, mockQueries, mockDB := newReservationStore(t)
	mockQueries.EXPECT().ListUpcomingReservationViews(ctx, mockDB, expected).Return([]pgsql.ReservationViewRow{}, nil)
	mockQueries.EXPECT().ListPastReservationViews(ctx, mockDB, expected).Return(nil, errors.New("boom"))

	upcoming, err := store.ListUpcoming(ctx, requesterID, now, 3)
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	_, err = store.ListPast(ctx, requesterID, now, 3)
	require.Error(t, err)
}

func TestReservationReadStore_ListPending(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	store, mockQueries, mockDB := newReservationStore(t)
	mockQueries.EXPECT().ListPendingReservationViews(ctx, mockDB, pgconv.UUIDToPgtype(ownerID)).Return([]pgsql.ReservationViewRow{}, nil)
	mockQueries.EXPECT().ListPendingReservationViews(ctx, mockDB, pgtype.UUID{}).Return([]pgsql.ReservationViewRow{}, nil)

	_, err := store.ListPending(ctx, &ownerID)
	require.NoError(t, err)
	_, err = store.ListPending(ctx, nil)
	require.NoError(t, err)
}

func TestReservationReadStore_ExpiredApproved(t *testing.T) {
	ctx := context.Background()
	store, mockQueries, mockDB := newReservationStore(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mockQueries.EXPECT().ListExpiredApproved(ctx, mockDB, pgconv.TimeToPgtype(testEnd), int32(50)).Return(ids, nil)

	actual, err := store.ExpiredApproved(ctx, testEnd, 50)
	require.NoError(t, err)
	assert.Equal(t, ids, actual)
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
	return nil
}

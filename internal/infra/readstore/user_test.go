//go:build unit

package readstore_test

import (
	"context"
	"testing"

	"resource-hub/internal/domain/user"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/readstore"
	readstoremock "resource-hub/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserReadStore_RoleOf(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	testCases := []struct {
		name       string
		raw        string
		queryErr   error
		expected   user.Role
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: staff", raw: "staff", expected: user.RoleStaff},
		{name: "success: admin", raw: "admin", expected: user.RoleAdmin},
		{name: "error: unknown user", queryErr: pgx.ErrNoRows, expectKind: infra.KindNotFound},
		{name: "error: unknown stored role", raw: "superuser", expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockUserReadQueries(ctrl)
			mockDB := &mockDBTX{}
			store := readstore.NewUserReadStore(mockQueries, mockDB)
			mockQueries.EXPECT().GetUserRole(ctx, mockDB, id).Return(tc.raw, tc.queryErr)

			role, err := store.RoleOf(ctx, id)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got %v", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, role)
		})
	}
}

package readstore

//go:generate mockgen -source=user.go -destination=../../../tests/mock/readstore/user.go -package=readstoremock

import (
	"context"

	"resource-hub/internal/domain/user"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/converter"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserRole(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (string, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      pgsql.DBTX
}

func NewUserReadStore(queries UserReadQueries, db pgsql.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *UserReadStore) RoleOf(ctx context.Context, id uuid.UUID) (user.Role, error) {
	raw, err := s.queries.GetUserRole(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to find user role", err)
	}

	role, err := converter.RoleFromRow(raw)
	if err != nil {
		return "", infra.WrapRepoErr("stored user role is invalid", err, infra.KindDBFailure)
	}
	return role, nil
}

package readstore

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/readstore/resource.go -package=readstoremock

import (
	"context"

	"resource-hub/internal/domain/resource"
	"resource-hub/internal/infra"
	"resource-hub/internal/infra/converter"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ResourceReadQueries interface {
	GetResource(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Resources, error)
}

type ResourceReadStore struct {
	queries ResourceReadQueries
	db      pgsql.DBTX
}

func NewResourceReadStore(queries ResourceReadQueries, db pgsql.DBTX) *ResourceReadStore {
	return &ResourceReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := s.queries.GetResource(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	res, err := converter.ResourceFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored resource is inconsistent", err, infra.KindDBFailure)
	}
	return res, nil
}

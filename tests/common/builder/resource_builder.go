//go:build unit || e2e

package builder

import (
	"resource-hub/internal/domain/resource"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Name             string
	Status           resource.Status
	RequiresApproval bool
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:               uuid.New(),
		OwnerID:          uuid.New(),
		Name:             "Room A",
		Status:           resource.StatusPublished,
		RequiresApproval: true,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

func (r *ResourceBuilder) BuildDomain() *resource.Resource {
	return resource.Reconstruct(r.ID, r.OwnerID, r.Name, r.Status, r.RequiresApproval)
}

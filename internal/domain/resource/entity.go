package resource

import (
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownStatus = errors.New("unknown resource status")

type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	StatusArchived  Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPublished, StatusDraft, StatusArchived:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// Resource is the catalog's view of a bookable thing. The catalog owns it;
// reservations only read it.
type Resource struct {
	id               uuid.UUID
	ownerID          uuid.UUID
	name             string
	status           Status
	requiresApproval bool
}

func Reconstruct(id, ownerID uuid.UUID, name string, status Status, requiresApproval bool) *Resource {
	return &Resource{
		id:               id,
		ownerID:          ownerID,
		name:             name,
		status:           status,
		requiresApproval: requiresApproval,
	}
}

func (r *Resource) IsBookable() bool {
	return r.status == StatusPublished
}

func (r *Resource) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) OwnerID() uuid.UUID     { return r.ownerID }
func (r *Resource) Name() string           { return r.name }
func (r *Resource) Status() Status         { return r.status }
func (r *Resource) RequiresApproval() bool { return r.requiresApproval }

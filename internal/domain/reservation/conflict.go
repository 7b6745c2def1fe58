package reservation

import (
	"context"

	"github.com/google/uuid"
)

// OverlapFinder is the store query behind conflict detection. Implementations
// return active reservations of the resource whose windows intersect w.
type OverlapFinder interface {
	FindActiveOverlapping(ctx context.Context, resourceID uuid.UUID, w Window, excludeID *uuid.UUID) ([]*Reservation, error)
}

type ConflictDetector struct {
	finder OverlapFinder
}

func NewConflictDetector(finder OverlapFinder) *ConflictDetector {
	return &ConflictDetector{finder: finder}
}

// FindConflicts returns every active reservation on resourceID overlapping w,
// skipping excludeID. Rows from the store are filtered again so an
// over-fetching query cannot produce a false conflict.
func (d *ConflictDetector) FindConflicts(ctx context.Context, resourceID uuid.UUID, w Window, excludeID *uuid.UUID) ([]*Reservation, error) {
	rows, err := d.finder.FindActiveOverlapping(ctx, resourceID, w, excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]*Reservation, 0, len(rows))
	for _, r := range rows {
		if r.ResourceID() != resourceID || !r.IsActive() {
			continue
		}
		if excludeID != nil && r.ID() == *excludeID {
			continue
		}
		if r.Window().Overlaps(w) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts, nil
}

// FindApprovalConflicts narrows FindConflicts to approved reservations. A
// pending overlap does not block an approval; it becomes unapprovable once
// this one is approved.
func (d *ConflictDetector) FindApprovalConflicts(ctx context.Context, resourceID uuid.UUID, w Window, excludeID uuid.UUID) ([]*Reservation, error) {
	conflicts, err := d.FindConflicts(ctx, resourceID, w, &excludeID)
	if err != nil {
		return nil, err
	}
	approved := conflicts[:0]
	for _, r := range conflicts {
		if r.Status() == StatusApproved {
			approved = append(approved, r)
		}
	}
	return approved, nil
}

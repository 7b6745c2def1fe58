//go:build unit

package reservation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resource-hub/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sloppyFinder returns every row it holds, whatever the arguments.
type sloppyFinder struct {
	rows []*reservation.Reservation
	err  error
}

func (f sloppyFinder) FindActiveOverlapping(context.Context, uuid.UUID, reservation.Window, *uuid.UUID) ([]*reservation.Reservation, error) {
	return f.rows, f.err
}

func TestFindConflicts(t *testing.T) {
	resourceID := uuid.New()
	mk := func(startH, endH int, status reservation.Decision) *reservation.Reservation {
		w := mustWindow(t, base.Add(time.Duration(startH)*time.Hour), base.Add(time.Duration(endH)*time.Hour))
		return reservation.Reconstruct(uuid.New(), resourceID, uuid.New(), w, status, nil, base, base)
	}

	pending := mk(2, 4, reservation.Pending{})
	approved := mk(3, 5, reservation.Approved{ApproverID: uuid.New()})
	adjacent := mk(4, 6, reservation.Pending{})
	cancelled := mk(2, 4, reservation.Cancelled{At: base})
	rejected := mk(2, 4, reservation.Rejected{ApproverID: uuid.New(), Reason: "no"})
	w := mustWindow(t, base.Add(2*time.Hour), base.Add(4*time.Hour))
	otherResource := reservation.Reconstruct(uuid.New(), uuid.New(), uuid.New(), w, reservation.Pending{}, nil, base, base)

	detector := reservation.NewConflictDetector(sloppyFinder{
		rows: []*reservation.Reservation{pending, approved, adjacent, cancelled, rejected, otherResource},
	})

	t.Run("only active overlapping rows of the resource", func(t *testing.T) {
		got, err := detector.FindConflicts(context.Background(), resourceID, w, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []*reservation.Reservation{pending, approved}, got)
	})

	t.Run("excluded id is skipped", func(t *testing.T) {
		id := pending.ID()
		got, err := detector.FindConflicts(context.Background(), resourceID, w, &id)
		require.NoError(t, err)
		assert.Equal(t, []*reservation.Reservation{approved}, got)
	})

	t.Run("adjacent window has no conflicts", func(t *testing.T) {
		later := mustWindow(t, base.Add(6*time.Hour), base.Add(8*time.Hour))
		got, err := detector.FindConflicts(context.Background(), resourceID, later, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("approval only yields to approved overlaps", func(t *testing.T) {
		candidate := uuid.New()
		got, err := detector.FindApprovalConflicts(context.Background(), resourceID, w, candidate)
		require.NoError(t, err)
		assert.Equal(t, []*reservation.Reservation{approved}, got)

		got, err = detector.FindApprovalConflicts(context.Background(), resourceID, w, approved.ID())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("store error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := reservation.NewConflictDetector(sloppyFinder{err: boom}).
			FindConflicts(context.Background(), resourceID, w, nil)
		require.ErrorIs(t, err, boom)
	})
}

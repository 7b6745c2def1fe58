package reservation

import (
	"time"

	"resource-hub/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock  clock.Clock
	Policy Policy
}

func NewFactory(clock clock.Clock, policy Policy) *Factory {
	return &Factory{
		Clock:  clock,
		Policy: policy,
	}
}

// NewPending validates the raw bounds against the policy and returns a
// pending reservation. Conflict detection is the caller's job.
func (f *Factory) NewPending(resourceID, requesterID uuid.UUID, start, end time.Time, notes *string) (*Reservation, error) {
	now := f.Clock.Now()
	window, err := f.Policy.ValidateWindow(now, start, end)
	if err != nil {
		return nil, err
	}
	return New(uuid.New(), resourceID, requesterID, window, notes, now), nil
}

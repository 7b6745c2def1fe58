package reservation

import (
	"errors"
	"time"
)

var ErrWindowOrder = errors.New("end time must be after start time")

// Window is the half-open interval [start, end) a reservation occupies.
// Both ends are kept in UTC.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return Window{}, ErrWindowOrder
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps reports whether the two windows share any instant.
// Touching windows (one ends where the other starts) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w Window) HasEnded(now time.Time) bool {
	return now.After(w.end)
}

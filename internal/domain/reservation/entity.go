package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus  = errors.New("invalid status")
	ErrReasonRequired = errors.New("rejection reason is required")
	ErrWindowPassed   = errors.New("cannot cancel a reservation whose window has passed")
	ErrNotEnded       = errors.New("reservation window has not ended yet")
)

type Reservation struct {
	id          uuid.UUID
	resourceID  uuid.UUID
	requesterID uuid.UUID
	window      Window
	decision    Decision
	notes       *string
	createdAt   time.Time
	updatedAt   time.Time
}

// New builds a pending reservation. The window is assumed to have passed
// the booking policy already.
func New(id, resourceID, requesterID uuid.UUID, window Window, notes *string, now time.Time) *Reservation {
	if id == uuid.Nil {
		id = uuid.New()
	}
	now = now.UTC()
	return &Reservation{
		id:          id,
		resourceID:  resourceID,
		requesterID: requesterID,
		window:      window,
		decision:    Pending{},
		notes:       trimmed(notes),
		createdAt:   now,
		updatedAt:   now,
	}
}

func Reconstruct(
	id, resourceID, requesterID uuid.UUID,
	window Window,
	decision Decision,
	notes *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	if decision == nil {
		decision = Pending{}
	}
	return &Reservation{
		id:          id,
		resourceID:  resourceID,
		requesterID: requesterID,
		window:      window,
		decision:    decision,
		notes:       notes,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) Approve(approverID uuid.UUID, notes *string, now time.Time) error {
	if err := r.expect("approve", StatusPending); err != nil {
		return err
	}
	r.set(Approved{ApproverID: approverID, Notes: trimmed(notes)}, now)
	return nil
}

func (r *Reservation) Reject(approverID uuid.UUID, reason string, now time.Time) error {
	if err := r.expect("reject", StatusPending); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	r.set(Rejected{ApproverID: approverID, Reason: reason}, now)
	return nil
}

func (r *Reservation) Cancel(reason *string, now time.Time) error {
	if err := r.expect("cancel", StatusPending, StatusApproved); err != nil {
		return err
	}
	if r.window.HasEnded(now) {
		return ErrWindowPassed
	}
	r.set(Cancelled{At: now.UTC(), Reason: trimmed(reason)}, now)
	return nil
}

func (r *Reservation) Complete(now time.Time) error {
	if err := r.expect("complete", StatusApproved); err != nil {
		return err
	}
	if !r.window.HasEnded(now) {
		return ErrNotEnded
	}
	r.set(Completed{At: now.UTC()}, now)
	return nil
}

func (r *Reservation) expect(action string, allowed ...Status) error {
	current := r.Status()
	for _, s := range allowed {
		if current == s {
			return nil
		}
	}
	return fmt.Errorf("cannot %s reservation in status %q: %w", action, current, ErrInvalidStatus)
}

func (r *Reservation) set(d Decision, now time.Time) {
	r.decision = d
	r.updatedAt = now.UTC()
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) ResourceID() uuid.UUID  { return r.resourceID }
func (r *Reservation) RequesterID() uuid.UUID { return r.requesterID }
func (r *Reservation) Window() Window         { return r.window }
func (r *Reservation) Decision() Decision     { return r.decision }
func (r *Reservation) Status() Status         { return r.decision.Status() }
func (r *Reservation) Notes() *string         { return r.notes }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
func (r *Reservation) ApproverID() *uuid.UUID { return ApproverOf(r.decision) }
func (r *Reservation) IsActive() bool         { return r.Status().IsActive() }

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

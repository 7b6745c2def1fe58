package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Decision is the outcome recorded on a reservation. Exactly one variant is
// held at a time and the status is derived from it, so an approval note can
// never sit next to a rejection reason.
type Decision interface {
	Status() Status
	decision()
}

type Pending struct{}

type Approved struct {
	ApproverID uuid.UUID
	Notes      *string
}

type Rejected struct {
	ApproverID uuid.UUID
	Reason     string
}

type Cancelled struct {
	At     time.Time
	Reason *string
}

type Completed struct {
	At time.Time
}

func (Pending) Status() Status   { return StatusPending }
func (Approved) Status() Status  { return StatusApproved }
func (Rejected) Status() Status  { return StatusRejected }
func (Cancelled) Status() Status { return StatusCancelled }
func (Completed) Status() Status { return StatusCompleted }

func (Pending) decision()   {}
func (Approved) decision()  {}
func (Rejected) decision()  {}
func (Cancelled) decision() {}
func (Completed) decision() {}

// ApproverOf returns the approver for approved and rejected decisions only.
func ApproverOf(d Decision) *uuid.UUID {
	switch v := d.(type) {
	case Approved:
		id := v.ApproverID
		return &id
	case Rejected:
		id := v.ApproverID
		return &id
	default:
		return nil
	}
}

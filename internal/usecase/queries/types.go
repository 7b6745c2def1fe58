package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is the read-optimized reservation joined with its resource.
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	ResourceID         uuid.UUID  `json:"resource_id"`
	ResourceName       string     `json:"resource_name"`
	ResourceOwnerID    uuid.UUID  `json:"resource_owner_id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	ApproverID         *uuid.UUID `json:"approver_id,omitempty"`
	ApprovalNotes      *string    `json:"approval_notes,omitempty"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Availability answers a pre-flight check for a window.
type Availability struct {
	Available bool
	Detail    string
	Conflicts []ConflictView
}

type ConflictView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
}

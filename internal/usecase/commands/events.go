package commands

import (
	"context"
	"encoding/json"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	EventCreated   = "reservation.created"
	EventApproved  = "reservation.approved"
	EventRejected  = "reservation.rejected"
	EventCancelled = "reservation.cancelled"
	EventCompleted = "reservation.completed"

	notificationKind = "reservation_event"
)

// ReservationEvent is the outbox payload relayed to the message broker.
type ReservationEvent struct {
	Type          string     `json:"type"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	ResourceID    uuid.UUID  `json:"resource_id"`
	RequesterID   uuid.UUID  `json:"requester_id"`
	Status        string     `json:"status"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	ApproverID    *uuid.UUID `json:"approver_id,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func NewReservationEvent(eventType string, r *reservation.Reservation, at time.Time) ReservationEvent {
	ev := ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID(),
		ResourceID:    r.ResourceID(),
		RequesterID:   r.RequesterID(),
		Status:        r.Status().String(),
		StartTime:     r.Window().Start(),
		EndTime:       r.Window().End(),
		ApproverID:    r.ApproverID(),
		OccurredAt:    at.UTC(),
	}
	switch d := r.Decision().(type) {
	case reservation.Rejected:
		reason := d.Reason
		ev.Reason = &reason
	case reservation.Cancelled:
		ev.Reason = d.Reason
	}
	return ev
}

func enqueueEvent(ctx context.Context, tx shared.Tx, eventType string, r *reservation.Reservation, now time.Time) error {
	payload, err := json.Marshal(NewReservationEvent(eventType, r, now))
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation event")
	}
	return tx.Notifications().CreateJob(ctx, notificationKind, eventType, payload, now)
}

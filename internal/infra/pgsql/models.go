package pgsql

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservations struct {
	ID                 uuid.UUID
	ResourceID         uuid.UUID
	RequesterID        uuid.UUID
	StartTime          pgtype.Timestamptz
	EndTime            pgtype.Timestamptz
	Status             string
	Notes              pgtype.Text
	ApproverID         pgtype.UUID
	ApprovalNotes      pgtype.Text
	RejectionReason    pgtype.Text
	CancellationReason pgtype.Text
	CancelledAt        pgtype.Timestamptz
	CompletedAt        pgtype.Timestamptz
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

// ReservationViewRow is a reservation joined with the resource it books.
type ReservationViewRow struct {
	Reservations
	ResourceName    string
	ResourceOwnerID uuid.UUID
}

type Resources struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Name             string
	Status           string
	RequiresApproval bool
}

type NotificationJobs struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int32
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

package shared

import (
	"context"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/domain/resource"
	"resource-hub/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
	// CommandReads: Direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// CommandReads are the lookups the write side needs. Inside a Tx they see
// the transaction's own writes.
type CommandReads interface {
	reservation.OverlapFinder

	ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	RoleOf(ctx context.Context, userID uuid.UUID) (user.Role, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ReservationByIDForUpdate row-locks the reservation until the transaction ends.
	ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ExpiredApproved(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, r *reservation.Reservation) error
	// UpdateDecision writes the current decision only if the stored status is still prev.
	UpdateDecision(ctx context.Context, r *reservation.Reservation, prev reservation.Status) error
	// LockResource serializes transitions on one resource for the rest of the transaction.
	LockResource(ctx context.Context, resourceID uuid.UUID) error
}

// ClaimLease is how long a claimed job may stay unreported before ClaimDue
// hands it to another relay pass.
const ClaimLease = 5 * time.Minute

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimDue marks due queued jobs, and running jobs older than ClaimLease, as running.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt *time.Time) error
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

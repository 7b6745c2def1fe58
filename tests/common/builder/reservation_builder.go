//go:build unit || e2e

package builder

import (
	"time"

	"resource-hub/internal/domain/reservation"
	reqdto "resource-hub/internal/handler/dto/request"
	"resource-hub/internal/usecase/commands"
	"resource-hub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	OwnerID      uuid.UUID
	RequesterID  uuid.UUID
	Start        time.Time
	End          time.Time
	Notes        *string
	Decision     reservation.Decision
	CreatedAt    time.Time
}

// NewReservationBuilder defaults to a one-hour pending window starting a day from now.
func NewReservationBuilder() *ReservationBuilder {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	notes := "Team sync"
	return &ReservationBuilder{
		ID:           uuid.New(),
		ResourceID:   uuid.New(),
		ResourceName: "Room A",
		OwnerID:      uuid.New(),
		RequesterID:  uuid.New(),
		Start:        start,
		End:          start.Add(time.Hour),
		Notes:        &notes,
		Decision:     reservation.Pending{},
		CreatedAt:    time.Now().UTC(),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) Between(start, end time.Time) *ReservationBuilder {
	b.Start, b.End = start, end
	return b
}

func (b *ReservationBuilder) Approved(approverID uuid.UUID) *ReservationBuilder {
	b.Decision = reservation.Approved{ApproverID: approverID}
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	window, err := reservation.NewWindow(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return reservation.Reconstruct(b.ID, b.ResourceID, b.RequesterID, window, b.Decision, b.Notes, b.CreatedAt, b.CreatedAt)
}

func (b *ReservationBuilder) BuildInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RequesterID: b.RequesterID,
		ResourceID:  b.ResourceID,
		Start:       b.Start,
		End:         b.End,
		Notes:       b.Notes,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.Start,
		EndTime:    b.End,
		Notes:      b.Notes,
	}
}

func (b *ReservationBuilder) BuildAvailabilityRequestDTO() reqdto.CheckAvailabilityRequest {
	return reqdto.CheckAvailabilityRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.Start,
		EndTime:    b.End,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:              b.ID,
		ResourceID:      b.ResourceID,
		ResourceName:    b.ResourceName,
		ResourceOwnerID: b.OwnerID,
		RequesterID:     b.RequesterID,
		StartTime:       b.Start,
		EndTime:         b.End,
		Status:          b.Decision.Status().String(),
		Notes:           b.Notes,
		ApproverID:      reservation.ApproverOf(b.Decision),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

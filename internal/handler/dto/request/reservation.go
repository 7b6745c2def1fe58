package request

import (
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/pkg/patch"
	"resource-hub/internal/usecase/commands"
	"resource-hub/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	Notes      *string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateReservationRequest) ToInput(requesterID uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RequesterID: requesterID,
		ResourceID:  r.ResourceID,
		Start:       r.StartTime,
		End:         r.EndTime,
		Notes:       r.Notes,
	}
}

type ApproveReservationRequest struct {
	Notes *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

type RejectReservationRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=1000"`
}

type CheckAvailabilityRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}

type ListReservationsQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled completed"`
	Page    *int   `form:"page" binding:"omitempty,min=1,max=1000000"`
	PerPage *int   `form:"per_page" binding:"omitempty,min=1"`
}

func (q ListReservationsQuery) StatusFilter() (*reservation.Status, error) {
	if q.Status == "" {
		return nil, nil
	}
	s, err := reservation.ParseStatus(q.Status)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (q ListReservationsQuery) PageRequest() queries.PageRequest {
	return queries.PageRequest{
		Page:    patch.Coalesce(q.Page, queries.DefaultPage),
		PerPage: patch.Coalesce(q.PerPage, queries.DefaultPerPage),
	}
}

type TimelineQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

package response

import (
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ResourceID         uuid.UUID  `json:"resourceId"`
	ResourceName       string     `json:"resourceName,omitempty"`
	RequesterID        uuid.UUID  `json:"requesterId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	ApproverID         *uuid.UUID `json:"approverId,omitempty"`
	ApprovalNotes      *string    `json:"approvalNotes,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:          r.ID(),
		ResourceID:  r.ResourceID(),
		RequesterID: r.RequesterID(),
		StartTime:   r.Window().Start(),
		EndTime:     r.Window().End(),
		Status:      r.Status().String(),
		Notes:       r.Notes(),
		ApproverID:  r.ApproverID(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}

	switch d := r.Decision().(type) {
	case reservation.Approved:
		resp.ApprovalNotes = d.Notes
	case reservation.Rejected:
		reason := d.Reason
		resp.RejectionReason = &reason
	case reservation.Cancelled:
		at := d.At
		resp.CancelledAt = &at
		resp.CancellationReason = d.Reason
	case reservation.Completed:
		at := d.At
		resp.CompletedAt = &at
	}
	return resp
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                 v.ID,
		ResourceID:         v.ResourceID,
		ResourceName:       v.ResourceName,
		RequesterID:        v.RequesterID,
		StartTime:          v.StartTime,
		EndTime:            v.EndTime,
		Status:             v.Status,
		Notes:              v.Notes,
		ApproverID:         v.ApproverID,
		ApprovalNotes:      v.ApprovalNotes,
		RejectionReason:    v.RejectionReason,
		CancellationReason: v.CancellationReason,
		CancelledAt:        v.CancelledAt,
		CompletedAt:        v.CompletedAt,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ReservationPageResponse struct {
	Items      []*ReservationResponse `json:"items"`
	Pagination PaginationResponse     `json:"pagination"`
}

func FromReservationPage(p *queries.Page[*queries.ReservationView]) *ReservationPageResponse {
	return &ReservationPageResponse{
		Items: FromReservationViews(p.Items),
		Pagination: PaginationResponse{
			Page:       p.Page,
			PerPage:    p.PerPage,
			Total:      p.Total,
			TotalPages: p.TotalPages,
			HasNext:    p.HasNext,
			HasPrev:    p.HasPrev,
		},
	}
}

type ConflictResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
}

type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Detail    string             `json:"detail"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

func FromAvailability(a *queries.Availability) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, len(a.Conflicts))
	for i, c := range a.Conflicts {
		conflicts[i] = ConflictResponse{
			ReservationID: c.ReservationID,
			StartTime:     c.StartTime,
			EndTime:       c.EndTime,
			Status:        c.Status,
		}
	}
	return &AvailabilityResponse{
		Available: a.Available,
		Detail:    a.Detail,
		Conflicts: conflicts,
	}
}

package converter

import (
	"fmt"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/domain/resource"
	"resource-hub/internal/domain/user"
	"resource-hub/internal/infra/pgsql"
	"resource-hub/internal/pkg/pgconv"
	"resource-hub/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInsertParams(r *reservation.Reservation) pgsql.InsertReservationParams {
	return pgsql.InsertReservationParams{
		ID:          r.ID(),
		ResourceID:  r.ResourceID(),
		RequesterID: r.RequesterID(),
		StartTime:   pgconv.TimeToPgtype(r.Window().Start()),
		EndTime:     pgconv.TimeToPgtype(r.Window().End()),
		Status:      r.Status().String(),
		Notes:       pgconv.StringPtrToPgtype(r.Notes()),
		CreatedAt:   pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

// ReservationToDecisionParams writes every decision column so fields of the
// previous decision are cleared.
func ReservationToDecisionParams(r *reservation.Reservation, prev reservation.Status) pgsql.UpdateReservationDecisionParams {
	params := pgsql.UpdateReservationDecisionParams{
		ID:         r.ID(),
		Status:     r.Status().String(),
		ApproverID: pgconv.UUIDPtrToPgtype(r.ApproverID()),
		UpdatedAt:  pgconv.TimeToPgtype(r.UpdatedAt()),
		PrevStatus: prev.String(),
	}

	switch d := r.Decision().(type) {
	case reservation.Approved:
		params.ApprovalNotes = pgconv.StringPtrToPgtype(d.Notes)
	case reservation.Rejected:
		params.RejectionReason = pgconv.StringToPgtype(d.Reason)
	case reservation.Cancelled:
		params.CancellationReason = pgconv.StringPtrToPgtype(d.Reason)
		params.CancelledAt = pgconv.TimeToPgtype(d.At)
	case reservation.Completed:
		params.CompletedAt = pgconv.TimeToPgtype(d.At)
	}
	return params
}

func ReservationFromRow(row pgsql.Reservations) (*reservation.Reservation, error) {
	window, err := reservation.NewWindow(pgconv.TimeFromPgtype(row.StartTime), pgconv.TimeFromPgtype(row.EndTime))
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}

	decision, err := decisionFromRow(row)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}

	return reservation.Reconstruct(
		row.ID,
		row.ResourceID,
		row.RequesterID,
		window,
		decision,
		pgconv.StringPtrFromPgtype(row.Notes),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func decisionFromRow(row pgsql.Reservations) (reservation.Decision, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	switch status {
	case reservation.StatusPending:
		return reservation.Pending{}, nil
	case reservation.StatusApproved:
		if err := requireValid(row.ApproverID, "approver_id"); err != nil {
			return nil, err
		}
		return reservation.Approved{
			ApproverID: row.ApproverID.Bytes,
			Notes:      pgconv.StringPtrFromPgtype(row.ApprovalNotes),
		}, nil
	case reservation.StatusRejected:
		if err := requireValid(row.ApproverID, "approver_id"); err != nil {
			return nil, err
		}
		return reservation.Rejected{
			ApproverID: row.ApproverID.Bytes,
			Reason:     row.RejectionReason.String,
		}, nil
	case reservation.StatusCancelled:
		if err := requireValid(row.CancelledAt, "cancelled_at"); err != nil {
			return nil, err
		}
		return reservation.Cancelled{
			At:     pgconv.TimeFromPgtype(row.CancelledAt),
			Reason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		}, nil
	default:
		if err := requireValid(row.CompletedAt, "completed_at"); err != nil {
			return nil, err
		}
		return reservation.Completed{At: pgconv.TimeFromPgtype(row.CompletedAt)}, nil
	}
}

type nullable interface {
	pgtype.UUID | pgtype.Timestamptz
}

func requireValid[T nullable](v T, column string) error {
	var valid bool
	switch x := any(v).(type) {
	case pgtype.UUID:
		valid = x.Valid
	case pgtype.Timestamptz:
		valid = x.Valid
	}
	if !valid {
		return fmt.Errorf("missing %s for decided reservation", column)
	}
	return nil
}

func ReservationViewFromRow(row pgsql.ReservationViewRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 row.ID,
		ResourceID:         row.ResourceID,
		ResourceName:       row.ResourceName,
		ResourceOwnerID:    row.ResourceOwnerID,
		RequesterID:        row.RequesterID,
		StartTime:          pgconv.TimeFromPgtype(row.StartTime),
		EndTime:            pgconv.TimeFromPgtype(row.EndTime),
		Status:             row.Status,
		Notes:              pgconv.StringPtrFromPgtype(row.Notes),
		ApproverID:         pgconv.UUIDPtrFromPgtype(row.ApproverID),
		ApprovalNotes:      pgconv.StringPtrFromPgtype(row.ApprovalNotes),
		RejectionReason:    pgconv.StringPtrFromPgtype(row.RejectionReason),
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CompletedAt:        pgconv.TimePtrFromPgtype(row.CompletedAt),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func ReservationViewsFromRows(rows []pgsql.ReservationViewRow) []*queries.ReservationView {
	views := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		views[i] = ReservationViewFromRow(row)
	}
	return views
}

func ResourceFromRow(row pgsql.Resources) (*resource.Resource, error) {
	status, err := resource.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", row.ID, err)
	}
	return resource.Reconstruct(row.ID, row.OwnerID, row.Name, status, row.RequiresApproval), nil
}

func RoleFromRow(role string) (user.Role, error) {
	return user.NewRole(role)
}

func StatusFilterToPgtype(status *reservation.Status) pgtype.Text {
	if status == nil {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(status.String())
}

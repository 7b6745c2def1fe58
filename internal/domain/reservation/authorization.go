package reservation

import (
	"resource-hub/internal/domain/resource"
	"resource-hub/internal/domain/user"

	"github.com/google/uuid"
)

// CanApprove covers approve and reject.
func CanApprove(actor user.Actor, res *resource.Resource) bool {
	return actor.Role.IsElevated() || res.IsOwnedBy(actor.ID)
}

func CanCancel(actor user.Actor, r *Reservation, res *resource.Resource) bool {
	return actor.Is(r.RequesterID()) || CanApprove(actor, res)
}

// MayView lets the requester, the resource owner and admins read a reservation.
func MayView(actor user.Actor, requesterID, ownerID uuid.UUID) bool {
	return actor.Is(requesterID) || actor.Is(ownerID) || actor.Role == user.RoleAdmin
}

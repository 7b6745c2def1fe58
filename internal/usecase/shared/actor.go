package shared

import (
	"context"

	"resource-hub/internal/domain/user"
	"resource-hub/internal/pkg/errs"

	"github.com/google/uuid"
)

// LoadActor resolves the caller's role from the user store. Tokens are
// trusted for identity only; callers unknown to the store get no privileges.
func LoadActor(ctx context.Context, reads CommandReads, id uuid.UUID) (user.Actor, error) {
	role, err := reads.RoleOf(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return user.Actor{}, ErrForbidden
		}
		return user.Actor{}, err
	}
	return user.Actor{ID: id, Role: role}, nil
}

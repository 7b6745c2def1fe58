package pgsql

import (
	"context"

	"github.com/google/uuid"
)

const getResource = `
SELECT id, owner_id, name, status, requires_approval
FROM resources
WHERE id = $1
`

func (q *Queries) GetResource(ctx context.Context, db DBTX, id uuid.UUID) (Resources, error) {
	var i Resources
	err := db.QueryRow(ctx, getResource, id).Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Status,
		&i.RequiresApproval,
	)
	return i, err
}

const getUserRole = `SELECT role FROM users WHERE id = $1`

func (q *Queries) GetUserRole(ctx context.Context, db DBTX, id uuid.UUID) (string, error) {
	var role string
	err := db.QueryRow(ctx, getUserRole, id).Scan(&role)
	return role, err
}

//go:build unit || e2e

package builder

import (
	"resource-hub/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    uuid.New(),
		Email: "student@example.com",
		Role:  user.RoleStudent,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) AsStaff() *UserBuilder {
	u.Role = user.RoleStaff
	u.Email = "staff@example.com"
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = user.RoleAdmin
	u.Email = "admin@example.com"
	return u
}

func (u *UserBuilder) BuildActor() user.Actor {
	return user.Actor{ID: u.ID, Role: u.Role}
}

package ports

import (
	"context"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/principal"
)

// RoleDirectory resolves user identities into role sets.
// Group membership administration is an external collaborator; the core only
// reads. The lookup has no side effects.
type RoleDirectory interface {
	// RolesOf returns the roles of the given user.
	// Returns an object-not-found error when the user does not exist.
	RolesOf(ctx context.Context, userID kernel.UUID) ([]principal.Role, error)
}

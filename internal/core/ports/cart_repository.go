// Package ports defines the persistence and lookup contracts of the ordering
// core. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"bistro/internal/core/domain/model/cart"
	"bistro/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// A user without stored lines maps to an empty cart, not an error.
type CartRepository interface {
	// GetByUser retrieves the user's cart with all its lines.
	// Returns an empty cart when the user has no lines.
	GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// GetByUserForUpdate retrieves the user's cart like GetByUser but locks
	// the underlying rows for the duration of the surrounding transaction.
	// Used by checkout so concurrent conversions of one cart serialize.
	GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Save persists the cart's current lines, replacing what is stored.
	// Saving an empty cart deletes all of the user's lines.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// DeleteByUser removes all of the user's lines.
	// Deleting an already empty cart succeeds.
	DeleteByUser(ctx context.Context, userID kernel.UUID) error
}

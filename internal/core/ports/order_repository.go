package ports

import (
	"context"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders and their items are written together; items never change after Add.
type OrderRepository interface {
	// Add persists a new order aggregate with all its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order's mutable fields
	// (delivery crew assignment and status). Items are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate with its row locked until
	// the surrounding transaction ends. Patch operations use this so
	// concurrent read-check-write cycles on one order serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves orders in Pending status that have no
	// delivery crew yet. Used for fulfillment monitoring.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)
}

package ports

import (
	"context"

	"bistro/internal/core/domain/model/kernel"
)

// MenuCatalog is the read-only view of the menu the core consumes.
// Menu management itself is an external collaborator; the core only needs
// item existence and the current unit price.
type MenuCatalog interface {
	// PriceOf returns the current unit price of a menu item.
	// Returns an object-not-found error when the item does not exist.
	PriceOf(ctx context.Context, menuItemID kernel.UUID) (kernel.Money, error)
}

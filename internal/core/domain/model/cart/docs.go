// Package cart provides the cart aggregate of the ordering backend: a
// per-user mutable collection of menu item lines that is eventually drained
// into an order at checkout.
//
// The package includes:
//   - Cart: the aggregate root owning the user's lines
//   - Line: an immutable (menu item, quantity, unit price, line total) entry
//
// Key business rules:
//   - A cart holds at most one line per menu item; duplicate adds merge quantities
//   - Unit prices are frozen when an item is first added
//   - Quantity and monetary bounds are enforced before any mutation is committed
//   - Clearing an empty cart is a no-op, never an error
package cart

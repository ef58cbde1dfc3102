// Package order provides the order aggregate of the ordering backend: the
// immutable result of converting a cart at checkout, plus the small mutable
// surface the fulfillment lifecycle needs.
//
// The package includes:
//   - Order: the aggregate root holding identity, items, total, and lifecycle state
//   - Item: a frozen copy of a cart line at conversion time
//   - Status: the two-state fulfillment machine (Pending -> OutForDelivery)
//
// Key business rules:
//   - Orders are created only from a non-empty set of items; the total always
//     equals the sum of the item line totals
//   - Items and total are a price snapshot; prices are never re-read
//   - Only delivery crew assignment and status are mutable after creation
//   - An order can only go OutForDelivery once a delivery crew is assigned
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

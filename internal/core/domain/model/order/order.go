package order

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrOrderHasNoItems is returned when attempting to create an order
	// without line items. Orders only come into existence from a non-empty cart.
	ErrOrderHasNoItems = errors.New("Order must have at least one item")
)

// Order represents a placed order in the system. It is the aggregate root that
// manages the fulfillment lifecycle from checkout through delivery assignment.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and placing customer
//   - Has at least one item; items are immutable once created
//   - Total equals the sum of the item line totals
//   - An order that is OutForDelivery always has a delivery crew assigned
//   - Status transitions follow the two-state machine in Status
//   - Can only be created through NewOrder or RestoreOrder
//
// Only delivery crew assignment and status are mutable after creation, each
// gated by role at the application layer; everything else is a snapshot taken
// at conversion time.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the placing user; immutable after creation
	customerID kernel.UUID

	// deliveryCrewID is the assigned crew member's ID (nil if unassigned)
	deliveryCrewID *kernel.UUID

	// status is the current state in the fulfillment lifecycle
	status Status

	// total is the sum of all item line totals, fixed at creation
	total kernel.Money

	// placedAt is the checkout timestamp
	placedAt time.Time

	// items are the frozen cart lines this order was converted from
	items []Item

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order from the frozen cart lines of a checkout.
// The order starts in Pending status with no delivery crew assigned, and its
// total is computed from the items so it always equals their sum.
//
// Returns an error if any identifier or item is invalid, if items is empty,
// or if the total would exceed the monetary bound.
func NewOrder(id, customerID kernel.UUID, placedAt time.Time, items []Item) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}

	total := kernel.NewMoneyZero()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}

		sum, err := total.Add(item.LineTotal())
		if err != nil {
			return nil, err
		}
		total = sum
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		status:        Pending,
		total:         total,
		placedAt:      placedAt,
		items:         items,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence.
// All stored fields are revalidated, including the consistency rule that an
// OutForDelivery order has a delivery crew assigned.
func RestoreOrder(
	id, customerID kernel.UUID,
	deliveryCrewID *kernel.UUID,
	status Status,
	placedAt time.Time,
	items []Item,
) (*Order, error) {
	restored, err := NewOrder(id, customerID, placedAt, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if deliveryCrewID != nil {
		if err = deliveryCrewID.Validate(); err != nil {
			return nil, err
		}
	}
	if status.IsFinal() && deliveryCrewID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("OutForDelivery order must have a delivery crew"))
	}

	restored.status = status
	restored.deliveryCrewID = deliveryCrewID
	return restored, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the placing customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// DeliveryCrew returns the assigned crew member's ID.
// Returns nil if no delivery crew is assigned.
func (o *Order) DeliveryCrew() *kernel.UUID {
	return o.deliveryCrewID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the order total fixed at creation time.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PlacedAt returns the checkout timestamp.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Items returns a copy of the order's items in their original cart order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// IsAssignedTo reports whether the order is assigned to the given crew member.
func (o *Order) IsAssignedTo(crewID kernel.UUID) bool {
	return o.deliveryCrewID != nil && o.deliveryCrewID.IsEqual(crewID)
}

// AssignDeliveryCrew assigns the order to a delivery crew member.
// Reassignment of an already assigned order is allowed; the status is left
// untouched. Whether the target actually holds the DeliveryCrew role is
// checked by the application layer, which can see the role directory.
func (o *Order) AssignDeliveryCrew(crewID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := crewID.Validate(); err != nil {
		return err
	}

	o.deliveryCrewID = &crewID
	return nil
}

// ChangeStatus moves the order to the target status.
//
// This method enforces the following business rules:
//   - The target must be a valid status value
//   - The transition must be legal per Status.TransitionTo
//   - An order without a delivery crew cannot go OutForDelivery; this is
//     rejected with a conflict error
func (o *Order) ChangeStatus(target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if newStatus.IsFinal() && o.deliveryCrewID == nil {
		return errs.NewConflictError("order has no delivery crew assigned")
	}

	o.status = newStatus
	return nil
}

package cart

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through the NewCart or RestoreCart factory methods.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructors")

	// ErrLineIsNotConstructed is returned when a Line instance was not created
	// through the NewLine factory method.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

// Line is one (menu item, quantity) entry of a cart with the unit price frozen
// at the time the item was first added and a computed line total.
//
// Lines are immutable; merging a duplicate add produces a replacement Line
// whose bounds have been re-checked.
type Line struct {
	menuItemID kernel.UUID
	quantity   kernel.Quantity
	unitPrice  kernel.Money
	lineTotal  kernel.Money

	isConstructed bool
}

// NewLine creates a cart line and computes its line total.
// Returns an error if any component is invalid or if quantity times unit price
// would exceed the monetary bound. Nothing is mutated on failure.
func NewLine(menuItemID kernel.UUID, quantity kernel.Quantity, unitPrice kernel.Money) (Line, error) {
	if err := menuItemID.Validate(); err != nil {
		return Line{}, err
	}

	lineTotal, err := unitPrice.MulQuantity(quantity)
	if err != nil {
		return Line{}, err
	}

	return Line{
		menuItemID:    menuItemID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		lineTotal:     lineTotal,
		isConstructed: true,
	}, nil
}

// Validate ensures the Line was created via NewLine.
func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// MenuItemID returns the identifier of the menu item on this line.
func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Quantity returns the line quantity.
func (l Line) Quantity() kernel.Quantity {
	return l.quantity
}

// UnitPrice returns the unit price frozen when the item was first added.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// LineTotal returns quantity times unit price.
func (l Line) LineTotal() kernel.Money {
	return l.lineTotal
}

// Cart is the per-user mutable collection of lines, unique per menu item.
// It is the aggregate root for everything that happens before checkout.
//
// Cart follows these invariants:
//   - Owned by exactly one user
//   - At most one line per menu item; duplicate adds merge quantities
//   - Every line's quantity and total respect the kernel bounds
//   - Mutations either apply fully or leave the cart untouched
type Cart struct {
	userID kernel.UUID
	lines  []Line

	isConstructed bool
}

// NewCart creates an empty cart for the given user.
func NewCart(userID kernel.UUID) (*Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		userID:        userID,
		lines:         make([]Line, 0),
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence with its existing lines.
// Every line must have been built via NewLine.
func RestoreCart(userID kernel.UUID, lines []Line) (*Cart, error) {
	cart, err := NewCart(userID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if lineErr := line.Validate(); lineErr != nil {
			return nil, lineErr
		}
	}
	cart.lines = append(cart.lines, lines...)

	return cart, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// UserID returns the owning user's identifier.
func (c *Cart) UserID() kernel.UUID {
	return c.userID
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddOrIncrement adds a menu item to the cart or, when a line for that item
// already exists, merges the quantities into the existing line. The unit price
// of an existing line is kept; the supplied price only applies to new lines.
//
// The merged line is fully validated (quantity bound, line total bound) before
// it replaces the old one, so a rejected add leaves the cart unchanged.
// Returns the resulting line.
func (c *Cart) AddOrIncrement(
	menuItemID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice kernel.Money,
) (Line, error) {
	if err := c.Validate(); err != nil {
		return Line{}, err
	}

	for i, existing := range c.lines {
		if !existing.menuItemID.IsEqual(menuItemID) {
			continue
		}

		merged, err := existing.quantity.Add(quantity)
		if err != nil {
			return Line{}, err
		}

		line, err := NewLine(menuItemID, merged, existing.unitPrice)
		if err != nil {
			return Line{}, err
		}

		c.lines[i] = line
		return line, nil
	}

	line, err := NewLine(menuItemID, quantity, unitPrice)
	if err != nil {
		return Line{}, err
	}

	c.lines = append(c.lines, line)
	return line, nil
}

// Clear removes all lines from the cart. Clearing an empty cart succeeds.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Total returns the sum of all line totals.
// Returns an error if the sum would exceed the monetary bound, before any
// order is created from this cart.
func (c *Cart) Total() (kernel.Money, error) {
	total := kernel.NewMoneyZero()
	for _, line := range c.lines {
		sum, err := total.Add(line.lineTotal)
		if err != nil {
			return kernel.Money{}, err
		}
		total = sum
	}
	return total, nil
}

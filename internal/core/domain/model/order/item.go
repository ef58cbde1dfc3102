package order

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one immutable line of an order: a frozen copy of the source cart
// line's quantity and unit price at conversion time. Prices are never re-read
// after checkout; the order is a price snapshot.
type Item struct {
	menuItemID kernel.UUID
	quantity   kernel.Quantity
	unitPrice  kernel.Money
	lineTotal  kernel.Money

	isConstructed bool
}

// NewItem creates an order item and computes its line total.
// Returns an error if any component is invalid or the line total would exceed
// the monetary bound.
func NewItem(menuItemID kernel.UUID, quantity kernel.Quantity, unitPrice kernel.Money) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}

	lineTotal, err := unitPrice.MulQuantity(quantity)
	if err != nil {
		return Item{}, err
	}

	return Item{
		menuItemID:    menuItemID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		lineTotal:     lineTotal,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// MenuItemID returns the identifier of the ordered menu item.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() kernel.Quantity {
	return i.quantity
}

// UnitPrice returns the unit price snapshotted at conversion time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() kernel.Money {
	return i.lineTotal
}

package commands

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand represents a request to put a menu item into the acting
// user's cart. Adding an item that is already in the cart increments its
// quantity instead of creating a second line.
//
// Example:
//
//	qty, _ := kernel.NewQuantity(2)
//	cmd, err := NewAddCartItemCommand(userID, menuItemID, qty)
//	if err != nil {
//	    return fmt.Errorf("invalid cart input: %w", err)
//	}
//
//	line, err := handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	userID     kernel.UUID
	menuItemID kernel.UUID
	quantity   kernel.Quantity

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add a menu item to a cart.
// Validates that both identifiers and the quantity are valid; the quantity
// bound is already enforced by the kernel.Quantity constructor.
func NewAddCartItemCommand(
	userID, menuItemID kernel.UUID,
	quantity kernel.Quantity,
) (AddCartItemCommand, error) {
	command := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setMenuItemID(menuItemID),
		command.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// UserID returns the cart owner's identifier.
func (c AddCartItemCommand) UserID() kernel.UUID {
	return c.userID
}

// MenuItemID returns the identifier of the menu item to add.
func (c AddCartItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Quantity returns the requested quantity.
func (c AddCartItemCommand) Quantity() kernel.Quantity {
	return c.quantity
}

func (c *AddCartItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *AddCartItemCommand) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	c.menuItemID = menuItemID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	c.quantity = quantity
	return nil
}

package commands

import (
	"context"
	"errors"

	"bistro/internal/core/domain/model/cart"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"
)

// AddCartItemCommandHandler handles the business logic for cart additions.
// Resolves the authoritative unit price from the menu catalog, then creates
// or increments the matching cart line within a transaction.
//
// Example:
//
//	handler := NewAddCartItemCommandHandler(uowFactory, catalog)
//	line, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // unknown menu item or bound violation, nothing was written
//	}
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	catalog    ports.MenuCatalog
}

// NewAddCartItemCommandHandler creates a handler for cart addition operations.
// Requires a CartUoWFactory for transactional persistence and the menu
// catalog for price resolution.
func NewAddCartItemCommandHandler(
	uowFactory CartUoWFactory,
	catalog ports.MenuCatalog,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the cart addition command.
// An unknown menu item surfaces as a validation error; quantity or monetary
// bound violations reject the whole request without touching the cart.
// Returns the created or updated cart line.
func (h AddCartItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddCartItemCommand,
) (cart.Line, error) {
	if err := cmd.Validate(); err != nil {
		return cart.Line{}, err
	}

	unitPrice, err := h.catalog.PriceOf(ctx, cmd.MenuItemID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return cart.Line{}, errs.NewValueIsInvalidErrorWithCause("menu_item_id", err)
		}
		return cart.Line{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return cart.Line{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	userCart, err := cartRepo.GetByUser(ctx, cmd.UserID())
	if err != nil {
		return cart.Line{}, err
	}

	line, err := userCart.AddOrIncrement(cmd.MenuItemID(), cmd.Quantity(), unitPrice)
	if err != nil {
		return cart.Line{}, err
	}

	if err = cartRepo.Save(ctx, userCart); err != nil {
		return cart.Line{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return cart.Line{}, err
	}

	return line, nil
}

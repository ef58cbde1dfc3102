package commands

import (
	"context"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/errs"
)

// CheckoutCommandHandler is the order conversion engine. It atomically drains
// a user's cart into a new order plus its items, or fails without side
// effects.
//
// The whole conversion runs inside one unit of work: snapshot the cart lines
// under a row lock, compute the total, insert the order with its items, and
// delete the lines. Any failure rolls everything back, so the cart is never
// left partially drained and no partial order can persist. Two concurrent
// checkouts of the same cart serialize on the lock; the loser finds the cart
// empty and fails like any other empty-cart checkout.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrCartIsEmpty):
//	    // nothing in the cart
//	case err != nil:
//	    // conversion failed, cart untouched
//	default:
//	    fmt.Printf("order %s total %s", placed.ID(), placed.Total())
//	}
type CheckoutCommandHandler struct {
	uowFactory UoWFactory
}

// NewCheckoutCommandHandler creates a handler for cart-to-order conversion.
// Requires a UoWFactory spanning both the cart and order repositories.
func NewCheckoutCommandHandler(uowFactory UoWFactory) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle converts the user's cart into a new pending order.
// Returns an empty-cart error when there is nothing to convert; in that case
// no order is created.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	userCart, err := cartRepo.GetByUserForUpdate(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if userCart.IsEmpty() {
		return nil, errs.NewEmptyCartError(cmd.UserID().String())
	}

	lines := userCart.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, itemErr := order.NewItem(line.MenuItemID(), line.Quantity(), line.UnitPrice())
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	placed, err := order.NewOrder(kernel.NewUUID(), cmd.UserID(), time.Now().UTC(), items)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = cartRepo.DeleteByUser(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

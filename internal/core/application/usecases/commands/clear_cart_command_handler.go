package commands

import (
	"context"
)

// ClearCartCommandHandler handles the business logic for clearing a cart.
// Deletion is idempotent; a user without cart lines is a successful no-op.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewClearCartCommandHandler creates a handler for cart clearing operations.
func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the clear command, removing all of the user's cart lines
// within a transaction.
func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CartRepository().DeleteByUser(ctx, cmd.UserID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a request to convert the acting user's cart into
// an order.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(userID)
//	if err != nil {
//	    return err
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrCartIsEmpty) {
//	    // nothing to convert; no order was created
//	}
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to convert a user's cart into an order.
func NewCheckoutCommand(userID kernel.UUID) (CheckoutCommand, error) {
	if err := userID.Validate(); err != nil {
		return CheckoutCommand{}, err
	}

	return CheckoutCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// UserID returns the identifier of the user checking out.
func (c CheckoutCommand) UserID() kernel.UUID {
	return c.userID
}

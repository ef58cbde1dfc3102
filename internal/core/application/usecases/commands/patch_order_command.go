package commands

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/model/principal"
	"bistro/internal/pkg/guard"
)

var ErrPatchOrderCommandIsNotConstructed = errors.New(
	"PatchOrderCommand must be created via NewPatchOrderCommand constructor",
)

// PatchOrderCommand represents a request to change an existing order's
// delivery crew assignment, status, or both.
//
// The actor may be a zero-value Principal, which represents an anonymous
// request; the handler rejects it with an authentication error. Which
// identified actors may change which fields is decided by the order patch
// policy, not by the command.
type PatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	actor          principal.Principal
	deliveryCrewID *kernel.UUID
	status         *order.Status

	guard guard.ConstructorGuard
}

// NewPatchOrderCommand creates a command to patch an order.
// Only the order identifier is validated here; the requested field values are
// validated by the handler after authorization, so that role failures surface
// before payload failures.
func NewPatchOrderCommand(
	orderID kernel.UUID,
	actor principal.Principal,
	deliveryCrewID *kernel.UUID,
	status *order.Status,
) (PatchOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PatchOrderCommand{}, err
	}

	return PatchOrderCommand{
		orderID:        orderID,
		actor:          actor,
		deliveryCrewID: deliveryCrewID,
		status:         status,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrPatchOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to patch.
func (c PatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting principal; zero value means anonymous.
func (c PatchOrderCommand) Actor() principal.Principal {
	return c.actor
}

// DeliveryCrewID returns the requested crew assignment, nil if not requested.
func (c PatchOrderCommand) DeliveryCrewID() *kernel.UUID {
	return c.deliveryCrewID
}

// Status returns the requested status, nil if not requested.
func (c PatchOrderCommand) Status() *order.Status {
	return c.status
}

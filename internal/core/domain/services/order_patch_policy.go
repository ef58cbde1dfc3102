package services

import (
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/model/principal"
	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

// ErrOrderPatchIsNotConstructed is returned when an OrderPatch was not created
// via the NewOrderPatch constructor.
var ErrOrderPatchIsNotConstructed = errs.NewValueIsRequiredError(
	"order patch must be created via NewOrderPatch constructor")

// OrderPatch describes a requested change to an order's mutable fields:
// delivery crew assignment, status, or both. At least one field must be set.
//
// The patch carries raw requested values; whether the acting principal may
// apply them is decided by OrderPatchPolicy, and whether the values themselves
// are valid is decided afterwards by the aggregate and the role directory.
type OrderPatch struct { //nolint:recvcheck //using for validation
	deliveryCrewID *kernel.UUID
	status         *order.Status

	guard guard.ConstructorGuard
}

// NewOrderPatch creates a patch request from the optional fields of a request
// payload. Returns an error if neither field is present.
func NewOrderPatch(deliveryCrewID *kernel.UUID, status *order.Status) (OrderPatch, error) {
	if deliveryCrewID == nil && status == nil {
		return OrderPatch{}, errs.NewValueIsRequiredError("delivery_crew_id or status")
	}

	return OrderPatch{
		deliveryCrewID: deliveryCrewID,
		status:         status,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the patch was created through the constructor.
func (p OrderPatch) Validate() error {
	return p.guard.Validate(ErrOrderPatchIsNotConstructed)
}

// DeliveryCrewID returns the requested crew assignment, nil if not requested.
func (p OrderPatch) DeliveryCrewID() *kernel.UUID {
	return p.deliveryCrewID
}

// Status returns the requested status, nil if not requested.
func (p OrderPatch) Status() *order.Status {
	return p.status
}

// WantsAssignment reports whether the patch touches the crew assignment.
func (p OrderPatch) WantsAssignment() bool {
	return p.deliveryCrewID != nil
}

// WantsStatus reports whether the patch touches the status.
func (p OrderPatch) WantsStatus() bool {
	return p.status != nil
}

// OrderPatchPolicy is the domain service deciding which actor may change which
// order fields. It evaluates the role gating table of the fulfillment
// lifecycle before any payload validation happens, so role failures surface
// first.
//
// Gating rules:
//   - Anonymous actors are rejected with an authentication error
//   - Assignment (alone or combined with status) is Manager-only; delivery
//     crew sending both fields on their own order is still rejected
//   - Status alone may be changed by a Manager, or by the delivery crew
//     member the order is assigned to
//   - Customers never mutate orders, their own included
//
// The policy is stateless and side-effect free; applying an authorized patch
// stays with the caller.
type OrderPatchPolicy struct{}

// NewOrderPatchPolicy creates a new OrderPatchPolicy instance.
func NewOrderPatchPolicy() OrderPatchPolicy {
	return OrderPatchPolicy{}
}

// Authorize checks whether the actor may apply the patch to the order.
//
// A zero-value Principal is treated as anonymous and rejected with an
// authentication error. Identified actors lacking the role or ownership for
// the requested field set are rejected with a permission error. Payload
// validity (status enum, target crew existence) is deliberately not checked
// here; the role decision fails fast.
func (OrderPatchPolicy) Authorize(actor principal.Principal, o *order.Order, patch OrderPatch) error {
	if err := actor.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause(err)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	if patch.WantsAssignment() {
		if !actor.IsManager() {
			return errs.NewPermissionDeniedError("assign delivery crew")
		}
		return nil
	}

	// Status-only patch from here on.
	if actor.IsManager() {
		return nil
	}

	if actor.IsDeliveryCrew() && o.IsAssignedTo(actor.ID()) {
		return nil
	}

	return errs.NewPermissionDeniedError("update order status")
}

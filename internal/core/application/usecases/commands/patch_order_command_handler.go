package commands

import (
	"context"
	"errors"
	"slices"

	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/model/principal"
	"bistro/internal/core/domain/services"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"
)

// PatchOrderCommandHandler moves an order through its fulfillment lifecycle:
// delivery crew assignment and status advancement, each gated by role.
//
// Checks run in a fixed sequence: authentication, role/field-set permission
// (via the order patch policy), payload validation (target crew must exist
// and hold the DeliveryCrew role; status must be a valid value), and finally
// the aggregate's own state rules. The read-check-write runs inside one unit
// of work so concurrent patches against the same order serialize.
//
// Example:
//
//	handler := NewPatchOrderCommandHandler(uowFactory, roles)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotAuthenticated):
//	    // anonymous request
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    // actor may not change these fields
//	case errors.Is(err, errs.ErrConflict):
//	    // legal request, illegal against current order state
//	}
type PatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	roles      ports.RoleDirectory
	policy     services.OrderPatchPolicy
}

// NewPatchOrderCommandHandler creates a handler for order patch operations.
// Requires an OrderUoWFactory for transactional persistence and the role
// directory for validating assignment targets.
func NewPatchOrderCommandHandler(
	uowFactory OrderUoWFactory,
	roles ports.RoleDirectory,
) PatchOrderCommandHandler {
	return PatchOrderCommandHandler{
		uowFactory: uowFactory,
		roles:      roles,
		policy:     services.NewOrderPatchPolicy(),
	}
}

// Handle processes the patch command and returns the updated order.
func (h PatchOrderCommandHandler) Handle(ctx context.Context, cmd PatchOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Authentication precedes everything, including patch shape validation.
	if err := cmd.Actor().Validate(); err != nil {
		return nil, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	patch, err := services.NewOrderPatch(cmd.DeliveryCrewID(), cmd.Status())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The row stays locked until Commit/Rollback, so a concurrent patch of
	// the same order waits here and then re-reads the committed fields
	// instead of overwriting them from a stale snapshot.
	orderRepo := uow.OrderRepository()
	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(cmd.Actor(), target, patch); err != nil {
		return nil, err
	}

	if patch.WantsAssignment() {
		if err = h.validateCrewTarget(ctx, patch); err != nil {
			return nil, err
		}
		if err = target.AssignDeliveryCrew(*patch.DeliveryCrewID()); err != nil {
			return nil, err
		}
	}

	if patch.WantsStatus() {
		if err = target.ChangeStatus(*patch.Status()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}

// validateCrewTarget checks that the requested assignee exists and holds the
// DeliveryCrew role. Assignment is enforced here, at patch time, rather than
// by reference typing alone.
func (h PatchOrderCommandHandler) validateCrewTarget(ctx context.Context, patch services.OrderPatch) error {
	crewID := *patch.DeliveryCrewID()

	roles, err := h.roles.RolesOf(ctx, crewID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewValueIsInvalidErrorWithCause("delivery_crew_id", err)
		}
		return err
	}

	if !slices.Contains(roles, principal.RoleDeliveryCrew) {
		return errs.NewValueIsInvalidErrorWithCause("delivery_crew_id",
			errors.New("target user is not in the delivery crew"))
	}

	return nil
}

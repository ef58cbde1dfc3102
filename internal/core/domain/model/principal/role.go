package principal

import (
	"fmt"

	"bistro/internal/pkg/errs"
)

// Role classifies an authenticated actor for authorization decisions.
// A principal may hold several roles at once; Customer is the baseline role
// every authenticated actor has.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is the baseline role of every authenticated actor.
	// Customers place orders but never mutate them afterwards.
	RoleCustomer

	// RoleManager marks staff who manage fulfillment: assigning delivery
	// crew and advancing order status.
	RoleManager

	// RoleDeliveryCrew marks staff who deliver orders. Crew members may
	// advance status on orders assigned to them, nothing else.
	RoleDeliveryCrew
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:      "Unknown",
		RoleCustomer:     "Customer",
		RoleManager:      "Manager",
		RoleDeliveryCrew: "DeliveryCrew",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer:     "Customer",
		RoleManager:      "Manager",
		RoleDeliveryCrew: "DeliveryCrew",
	}
}

// Validate checks if the Role value is valid.
// Valid roles are Customer, Manager, and DeliveryCrew.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements fmt.Stringer and is safe on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

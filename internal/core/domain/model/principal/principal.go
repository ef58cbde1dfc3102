package principal

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
)

// ErrPrincipalIsNotConstructed is returned when a Principal instance was not
// created through the NewPrincipal factory method.
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is the acting user of a request together with its resolved role
// set. It is a value object supplied per request by the role directory and is
// never persisted by the core.
//
// Role derivation happens once, at construction: every valid principal is at
// least a Customer, and holding the Manager role implies the elevated staff
// capability. Authorization code receives the Principal explicitly instead of
// inferring roles from ambient session state.
type Principal struct {
	userID kernel.UUID
	roles  map[Role]struct{}

	isConstructed bool
}

// NewPrincipal creates a Principal for the given user with its resolved roles.
// The user ID must be valid and every role must be a valid role value.
// The Customer role is always present, whether or not it is passed explicitly.
func NewPrincipal(userID kernel.UUID, roles ...Role) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}

	roleSet := map[Role]struct{}{
		RoleCustomer: {},
	}
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return Principal{}, err
		}
		roleSet[role] = struct{}{}
	}

	return Principal{
		userID:        userID,
		roles:         roleSet,
		isConstructed: true,
	}, nil
}

// Validate ensures the Principal was created via NewPrincipal.
func (p Principal) Validate() error {
	if !p.isConstructed {
		return ErrPrincipalIsNotConstructed
	}
	return nil
}

// ID returns the principal's user identifier.
func (p Principal) ID() kernel.UUID {
	return p.userID
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	_, ok := p.roles[role]
	return ok
}

// IsManager reports whether the principal holds the Manager role.
func (p Principal) IsManager() bool {
	return p.HasRole(RoleManager)
}

// IsDeliveryCrew reports whether the principal holds the DeliveryCrew role.
func (p Principal) IsDeliveryCrew() bool {
	return p.HasRole(RoleDeliveryCrew)
}

// IsStaff reports whether the principal has elevated staff capability.
// Staff capability is derived from role membership: managers are staff.
func (p Principal) IsStaff() bool {
	return p.IsManager()
}

// Roles returns the principal's role set as an unordered slice copy.
func (p Principal) Roles() []Role {
	roles := make([]Role, 0, len(p.roles))
	for role := range p.roles {
		roles = append(roles, role)
	}
	return roles
}

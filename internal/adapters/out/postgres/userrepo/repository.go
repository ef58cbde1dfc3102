package userrepo

import (
	"context"
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/principal"
	"bistro/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRoleDirectory implements RoleDirectory using GORM.
type GormRoleDirectory struct {
	db *gorm.DB
}

// NewGormRoleDirectory creates a new GORM role directory.
func NewGormRoleDirectory(db *gorm.DB) *GormRoleDirectory {
	return &GormRoleDirectory{db: db}
}

// RolesOf returns the roles of the given user. Every existing user holds at
// least the Customer role; stored memberships add Manager or DeliveryCrew.
// Returns an object-not-found error when the user does not exist.
func (r *GormRoleDirectory) RolesOf(ctx context.Context, userID kernel.UUID) ([]principal.Role, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).Preload("Roles").First(&dto, "id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", userID.String())
		}
		return nil, err
	}

	roles := make([]principal.Role, 0, len(dto.Roles)+1)
	roles = append(roles, principal.RoleCustomer)
	for _, membership := range dto.Roles {
		role := principal.Role(membership.Role)
		if roleErr := role.Validate(); roleErr != nil {
			return nil, roleErr
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// Add inserts a user with its role memberships. Used for seeding and
// integration tests; the Customer role is implicit and never stored.
func (r *GormRoleDirectory) Add(ctx context.Context, userID kernel.UUID, name string, roles ...principal.Role) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	memberships := make([]UserRoleDTO, 0, len(roles))
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return err
		}
		if role == principal.RoleCustomer {
			continue
		}
		memberships = append(memberships, UserRoleDTO{
			UserID: userID.Bytes(),
			Role:   int(role),
		})
	}

	dto := UserDTO{
		ID:    userID.Bytes(),
		Name:  name,
		Roles: memberships,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

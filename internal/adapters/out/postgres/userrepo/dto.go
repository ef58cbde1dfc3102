// Package userrepo provides the GORM-backed role directory adapter.
// User and group administration happen outside this service; the core only
// resolves user IDs into role sets.
package userrepo

import (
	"github.com/google/uuid"
)

// UserDTO represents one user row.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Roles []UserRoleDTO `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for users.
func (UserDTO) TableName() string {
	return "users"
}

// UserRoleDTO represents one role membership row. A user holds a role iff a
// row exists; the Customer role is implicit and not stored.
type UserRoleDTO struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   int       `gorm:"primaryKey"`
}

// TableName specifies the database table name for role memberships.
func (UserRoleDTO) TableName() string {
	return "user_roles"
}

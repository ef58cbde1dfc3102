// Package menurepo provides the GORM-backed menu catalog adapter.
// The core only reads menu data; management of the menu itself happens
// outside this service.
package menurepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO represents one menu item row.
type MenuItemDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Price decimal.Decimal `gorm:"type:numeric(6,2)"`
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// Package cartrepo provides data transfer objects and mapping functions for cart persistence.
// This package implements the repository pattern for the cart aggregate, handling
// the conversion between domain entities and database representations.
package cartrepo

import (
	"bistro/internal/core/domain/model/cart"
	"bistro/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineDTO represents one stored cart line. The (user_id, menu_item_id)
// primary key enforces at most one line per menu item per user at the
// database level, mirroring the aggregate's merge rule.
type CartLineDTO struct {
	UserID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity   int             `gorm:"type:smallint"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(6,2)"`
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart aggregate to its stored line rows.
// An empty cart maps to zero rows.
func fromDomain(aggregate *cart.Cart) []CartLineDTO {
	lines := aggregate.Lines()
	dtos := make([]CartLineDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, CartLineDTO{
			UserID:     aggregate.UserID().Bytes(),
			MenuItemID: line.MenuItemID().Bytes(),
			Quantity:   line.Quantity().Value(),
			UnitPrice:  line.UnitPrice().Amount(),
		})
	}
	return dtos
}

// toDomain reconstructs a cart aggregate from its stored line rows.
// Line totals are recomputed through the domain constructors.
func toDomain(userID kernel.UUID, dtos []CartLineDTO) (*cart.Cart, error) {
	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
		if err != nil {
			return nil, err
		}

		quantity, err := kernel.NewQuantity(dto.Quantity)
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		line, err := cart.NewLine(menuItemID, quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(userID, lines)
}

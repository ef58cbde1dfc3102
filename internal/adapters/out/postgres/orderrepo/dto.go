// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by customer and delivery crew for the role-scoped listing queries.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;index"`
	DeliveryCrewID *uuid.UUID      `gorm:"type:uuid;index"`
	Status         int             `gorm:"index"`
	Total          decimal.Decimal `gorm:"type:numeric(6,2)"`
	PlacedAt       time.Time
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one frozen order line. Items are written once at
// checkout and never updated.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity   int             `gorm:"type:smallint"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(6,2)"`
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation,
// items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var crewID *uuid.UUID
	if id := aggregate.DeliveryCrew(); id != nil {
		raw := id.Bytes()
		crewID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: item.MenuItemID().Bytes(),
			Quantity:   item.Quantity().Value(),
			UnitPrice:  item.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		DeliveryCrewID: crewID,
		Status:         int(aggregate.Status()),
		Total:          aggregate.Total().Amount(),
		PlacedAt:       aggregate.PlacedAt(),
		Items:          itemDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder,
// which revalidates every stored field and recomputes the total.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var crewID *kernel.UUID
	if dto.DeliveryCrewID != nil {
		cID, crewErr := kernel.UUIDFromBytes((*dto.DeliveryCrewID)[:])
		if crewErr != nil {
			return nil, crewErr
		}
		crewID = &cID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, crewID, order.Status(dto.Status), dto.PlacedAt, items)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}

	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(menuItemID, quantity, unitPrice)
}

package queries

import (
	"context"

	"bistro/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads a user's cart lines straight from the database,
// bypassing the aggregate. Used by the cart display endpoint.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart read queries.
// Requires a GORM database connection for query execution.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query and returns the user's cart lines with totals.
// Lines are sorted by menu item ID for consistent output.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		UserID: query.UserID(),
		Lines:  make([]GetCartLineResponse, 0),
		Total:  kernel.NewMoneyZero(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			quantity,
			unit_price
		FROM cart_lines
		WHERE user_id = ?
		ORDER BY menu_item_id
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var menuItemID uuid.UUID
		var quantityValue int
		var unitPriceValue string

		if err = rows.Scan(&menuItemID, &quantityValue, &unitPriceValue); err != nil {
			return GetCartQueryResponse{}, err
		}

		itemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}

		quantity, qtyErr := kernel.NewQuantity(quantityValue)
		if qtyErr != nil {
			return GetCartQueryResponse{}, qtyErr
		}

		unitPrice, priceErr := kernel.NewMoneyFromString(unitPriceValue)
		if priceErr != nil {
			return GetCartQueryResponse{}, priceErr
		}

		lineTotal, totalErr := unitPrice.MulQuantity(quantity)
		if totalErr != nil {
			return GetCartQueryResponse{}, totalErr
		}

		sum, sumErr := response.Total.Add(lineTotal)
		if sumErr != nil {
			return GetCartQueryResponse{}, sumErr
		}
		response.Total = sum

		response.Lines = append(response.Lines, GetCartLineResponse{
			MenuItemID: itemID,
			Quantity:   quantity.Value(),
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
		})
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}

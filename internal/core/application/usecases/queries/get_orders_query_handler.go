package queries

import (
	"context"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves the role-scoped order listing from the
// database. Items are not included; the listing shows order heads only.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query for the actor's visibility scope.
// Results are sorted by placement time, then by ID for consistent output.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			id,
			customer_id,
			delivery_crew_id,
			status,
			total,
			placed_at
		FROM orders
	`

	actor := query.Actor()

	sql := baseQuery + ` ORDER BY placed_at, id`
	args := make([]any, 0, 1)
	switch {
	case actor.IsManager():
		// Managers see every order.
	case actor.IsDeliveryCrew():
		sql = baseQuery + ` WHERE delivery_crew_id = ? ORDER BY placed_at, id`
		args = append(args, actor.ID().Bytes())
	default:
		sql = baseQuery + ` WHERE customer_id = ? ORDER BY placed_at, id`
		args = append(args, actor.ID().Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var id, customerID uuid.UUID
		var crewID uuid.NullUUID
		var statusValue int
		var totalValue string
		var placedAt time.Time

		err := rows.Scan(&id, &customerID, &crewID, &statusValue, &totalValue, &placedAt)
		if err != nil {
			return nil, err
		}

		response, err := buildOrderResponse(id, customerID, crewID, statusValue, totalValue, placedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func buildOrderResponse(
	id, customerID uuid.UUID,
	crewID uuid.NullUUID,
	statusValue int,
	totalValue string,
	placedAt time.Time,
) (GetOrdersQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	customer, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	var crew *kernel.UUID
	if crewID.Valid {
		crewUUID, crewErr := kernel.UUIDFromBytes(crewID.UUID[:])
		if crewErr != nil {
			return GetOrdersQueryResponse{}, crewErr
		}
		crew = &crewUUID
	}

	status := order.Status(statusValue)
	if err = status.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	total, err := kernel.NewMoneyFromString(totalValue)
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return GetOrdersQueryResponse{
		ID:             orderID,
		CustomerID:     customer,
		DeliveryCrewID: crew,
		Status:         status,
		Total:          total,
		PlacedAt:       placedAt,
	}, nil
}

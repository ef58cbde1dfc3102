package queries

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/model/principal"
	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists the orders visible to the acting principal.
//
// Visibility follows role, widest first: managers see every order, delivery
// crew see the orders assigned to them, everyone else sees the orders they
// placed.
//
// Example:
//
//	query, err := NewGetOrdersQuery(actor)
//	if errors.Is(err, errs.ErrNotAuthenticated) {
//	    // anonymous request
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	actor principal.Principal

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query scoped to the given actor.
// Anonymous actors are rejected with an authentication error.
func NewGetOrdersQuery(actor principal.Principal) (GetOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrdersQuery{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	return GetOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the requesting principal.
func (q GetOrdersQuery) Actor() principal.Principal {
	return q.actor
}

// GetOrdersQueryResponse is one order in the listing read model.
type GetOrdersQueryResponse struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	DeliveryCrewID *kernel.UUID
	Status         order.Status
	Total          kernel.Money
	PlacedAt       time.Time
}

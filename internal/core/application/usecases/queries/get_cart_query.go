package queries

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the current content of a user's cart.
//
// Example:
//
//	query, err := NewGetCartQuery(userID)
//	if err != nil {
//	    return err
//	}
//
//	cart, err := handler.Handle(ctx, query)
//	fmt.Printf("%d lines, total %s\n", len(cart.Lines), cart.Total)
type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the given user's cart.
func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// UserID returns the cart owner's identifier.
func (q GetCartQuery) UserID() kernel.UUID {
	return q.userID
}

// GetCartLineResponse is one cart line in the read model, with the unit price
// frozen at add time and the derived line total.
type GetCartLineResponse struct {
	MenuItemID kernel.UUID
	Quantity   int
	UnitPrice  kernel.Money
	LineTotal  kernel.Money
}

// GetCartQueryResponse is the full cart read model: the lines plus the running
// total. A user without cart lines gets an empty, zero-total response.
type GetCartQueryResponse struct {
	UserID kernel.UUID
	Lines  []GetCartLineResponse
	Total  kernel.Money
}

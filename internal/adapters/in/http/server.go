// Package http provides the echo-based HTTP adapter of the ordering core.
// Handlers translate requests into commands and queries and map the error
// taxonomy onto status codes: validation 400, authentication 401, permission
// 403, not found 404, state conflict 409.
package http

import (
	"errors"
	"net/http"
	"time"

	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/application/usecases/queries"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/model/principal"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the authenticated caller's identity. Token issuance
// and verification happen upstream; this adapter trusts the header and
// resolves roles through the role directory.
const UserIDHeader = "X-User-Id"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddCartItemRequest is the POST /api/cart payload.
type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// CartLine is one line of the cart response.
type CartLine struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
}

// Cart is the GET /api/cart response body.
type Cart struct {
	UserID string     `json:"user_id"`
	Lines  []CartLine `json:"lines"`
	Total  string     `json:"total"`
}

// PatchOrderRequest is the PATCH /api/orders/:id payload. Both fields are
// optional but at least one must be present.
type PatchOrderRequest struct {
	DeliveryCrewID *string `json:"delivery_crew_id,omitempty"`
	Status         *int    `json:"status,omitempty"`
}

// OrderItem is one frozen line of an order response.
type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
}

// Order is the order representation returned by checkout and patch.
type Order struct {
	ID             string      `json:"id"`
	CustomerID     string      `json:"customer_id"`
	DeliveryCrewID *string     `json:"delivery_crew_id,omitempty"`
	Status         int         `json:"status"`
	StatusName     string      `json:"status_name"`
	Total          string      `json:"total"`
	PlacedAt       time.Time   `json:"placed_at"`
	Items          []OrderItem `json:"items"`
}

// OrderSummary is one entry of the role-scoped order listing.
type OrderSummary struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	DeliveryCrewID *string   `json:"delivery_crew_id,omitempty"`
	Status         int       `json:"status"`
	StatusName     string    `json:"status_name"`
	Total          string    `json:"total"`
	PlacedAt       time.Time `json:"placed_at"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	addCartItemHandler commands.AddCartItemCommandHandler
	clearCartHandler   commands.ClearCartCommandHandler
	checkoutHandler    commands.CheckoutCommandHandler
	patchOrderHandler  commands.PatchOrderCommandHandler

	getCartHandler   queries.GetCartQueryHandler
	getOrdersHandler queries.GetOrdersQueryHandler

	roles ports.RoleDirectory
}

// NewServer creates a new HTTP server with the required command and query
// handlers plus the role directory used to resolve caller identities.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	patchOrderHandler commands.PatchOrderCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	roles ports.RoleDirectory,
) *Server {
	return &Server{
		addCartItemHandler: addCartItemHandler,
		clearCartHandler:   clearCartHandler,
		checkoutHandler:    checkoutHandler,
		patchOrderHandler:  patchOrderHandler,
		getCartHandler:     getCartHandler,
		getOrdersHandler:   getOrdersHandler,
		roles:              roles,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api")
	api.GET("/cart", s.GetCart)
	api.POST("/cart", s.AddCartItem)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/orders", s.Checkout)
	api.GET("/orders", s.GetOrders)
	api.PATCH("/orders/:id", s.PatchOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// principalFromRequest resolves the caller into a principal. A missing header
// yields the anonymous principal without error; a malformed or unknown
// identity is an authentication failure.
func (s *Server) principalFromRequest(ctx echo.Context) (principal.Principal, error) {
	header := ctx.Request().Header.Get(UserIDHeader)
	if header == "" {
		return principal.Principal{}, nil
	}

	userID, err := kernel.UUIDFromString(header)
	if err != nil {
		return principal.Principal{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	roles, err := s.roles.RolesOf(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return principal.Principal{}, errs.NewNotAuthenticatedErrorWithCause(err)
		}
		return principal.Principal{}, err
	}

	return principal.NewPrincipal(userID, roles...)
}

// identifiedPrincipal resolves the caller and rejects anonymous requests.
func (s *Server) identifiedPrincipal(ctx echo.Context) (principal.Principal, error) {
	actor, err := s.principalFromRequest(ctx)
	if err != nil {
		return principal.Principal{}, err
	}
	if err = actor.Validate(); err != nil {
		return principal.Principal{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}
	return actor, nil
}

// GetCart handles GET /api/cart - returns the caller's cart with line and
// cart totals.
func (s *Server) GetCart(ctx echo.Context) error {
	actor, err := s.identifiedPrincipal(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetCartQuery(actor.ID())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := Cart{
		UserID: result.UserID.String(),
		Lines:  make([]CartLine, 0, len(result.Lines)),
		Total:  result.Total.String(),
	}
	for _, line := range result.Lines {
		response.Lines = append(response.Lines, CartLine{
			MenuItemID: line.MenuItemID.String(),
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice.String(),
			LineTotal:  line.LineTotal.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddCartItem handles POST /api/cart - adds a menu item to the caller's cart,
// merging quantities when the item is already present.
func (s *Server) AddCartItem(ctx echo.Context) error {
	actor, err := s.identifiedPrincipal(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request AddCartItemRequest
	if err = ctx.Bind(&request); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	menuItemID, err := kernel.UUIDFromString(request.MenuItemID)
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("menu_item_id", err))
	}

	quantity, err := kernel.NewQuantity(request.Quantity)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(actor.ID(), menuItemID, quantity)
	if err != nil {
		return s.writeError(ctx, err)
	}

	line, err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CartLine{
		MenuItemID: line.MenuItemID().String(),
		Quantity:   line.Quantity().Value(),
		UnitPrice:  line.UnitPrice().String(),
		LineTotal:  line.LineTotal().String(),
	})
}

// ClearCart handles DELETE /api/cart - removes every line from the caller's
// cart. Clearing an already empty cart succeeds.
func (s *Server) ClearCart(ctx echo.Context) error {
	actor, err := s.identifiedPrincipal(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(actor.ID())
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.clearCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/orders - converts the caller's cart into a new
// pending order.
func (s *Server) Checkout(ctx echo.Context) error {
	actor, err := s.identifiedPrincipal(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(actor.ID())
	if err != nil {
		return s.writeError(ctx, err)
	}

	placed, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// GetOrders handles GET /api/orders - lists the orders visible to the caller.
// Managers see every order, delivery crew members see their assigned orders,
// customers see their own.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := s.identifiedPrincipal(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrdersQuery(actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		var crewID *string
		if o.DeliveryCrewID != nil {
			raw := o.DeliveryCrewID.String()
			crewID = &raw
		}
		response = append(response, OrderSummary{
			ID:             o.ID.String(),
			CustomerID:     o.CustomerID.String(),
			DeliveryCrewID: crewID,
			Status:         int(o.Status),
			StatusName:     o.Status.String(),
			Total:          o.Total.String(),
			PlacedAt:       o.PlacedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// PatchOrder handles PATCH /api/orders/:id - changes an order's delivery crew
// assignment and/or status, gated by the caller's role.
func (s *Server) PatchOrder(ctx echo.Context) error {
	// Authentication is checked before the payload so an anonymous caller
	// with a bad body still gets 401, not 400.
	actor, err := s.identifiedPrincipal(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var request PatchOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	var crewID *kernel.UUID
	if request.DeliveryCrewID != nil {
		parsed, parseErr := kernel.UUIDFromString(*request.DeliveryCrewID)
		if parseErr != nil {
			return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("delivery_crew_id", parseErr))
		}
		crewID = &parsed
	}

	var status *order.Status
	if request.Status != nil {
		value := order.Status(*request.Status)
		status = &value
	}

	cmd, err := commands.NewPatchOrderCommand(orderID, actor, crewID, status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.patchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// writeError maps a domain error onto its HTTP status code and JSON body.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrNotAuthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, errs.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrCartIsEmpty),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func orderToResponse(o *order.Order) Order {
	var crewID *string
	if id := o.DeliveryCrew(); id != nil {
		raw := id.String()
		crewID = &raw
	}

	items := o.Items()
	itemResponses := make([]OrderItem, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, OrderItem{
			MenuItemID: item.MenuItemID().String(),
			Quantity:   item.Quantity().Value(),
			UnitPrice:  item.UnitPrice().String(),
			LineTotal:  item.LineTotal().String(),
		})
	}

	return Order{
		ID:             o.ID().String(),
		CustomerID:     o.CustomerID().String(),
		DeliveryCrewID: crewID,
		Status:         int(o.Status()),
		StatusName:     o.Status().String(),
		Total:          o.Total().String(),
		PlacedAt:       o.PlacedAt(),
		Items:          itemResponses,
	}
}

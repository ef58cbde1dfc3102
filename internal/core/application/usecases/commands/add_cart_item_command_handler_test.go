package commands_test

import (
	"context"
	"errors"
	"testing"

	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/domain/model/cart"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAddCartRepository struct{ mock.Mock }

func (m *MockAddCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockAddCartRepository) GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockAddCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAddCartRepository) DeleteByUser(ctx context.Context, userID kernel.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAddMenuCatalog struct{ mock.Mock }

func (m *MockAddMenuCatalog) PriceOf(ctx context.Context, menuItemID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, menuItemID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockAddCartUoW struct{ mock.Mock }

func (m *MockAddCartUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddCartUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddCartUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddCartUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockAddCartUoWFactory struct{ mock.Mock }

func (m *MockAddCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

func TestAddCartItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(2)
	price, _ := kernel.NewMoneyFromString("12.50")

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	userCart, _ := cart.NewCart(userID)

	cartRepo := new(MockAddCartRepository)
	catalog := new(MockAddMenuCatalog)
	uow := new(MockAddCartUoW)

	mock.InOrder(
		catalog.On("PriceOf", ctx, menuItemID).Return(price, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUser", ctx, userID).Return(userCart, nil).Once(),
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAddCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	line, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, line.MenuItemID().IsEqual(menuItemID))
	assert.Equal(t, 2, line.Quantity().Value())
	assert.Equal(t, "25.00", line.LineTotal().String())

	cartRepo.AssertExpectations(t)
	catalog.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_IncrementsExistingLine(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(3)
	oldPrice, _ := kernel.NewMoneyFromString("10.00")
	newPrice, _ := kernel.NewMoneyFromString("11.00")

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	userCart, _ := cart.NewCart(userID)
	existingQty, _ := kernel.NewQuantity(2)
	_, err = userCart.AddOrIncrement(menuItemID, existingQty, oldPrice)
	require.NoError(t, err)

	cartRepo := new(MockAddCartRepository)
	catalog := new(MockAddMenuCatalog)
	uow := new(MockAddCartUoW)

	mock.InOrder(
		catalog.On("PriceOf", ctx, menuItemID).Return(newPrice, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUser", ctx, userID).Return(userCart, nil).Once(),
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAddCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	line, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	// The quantities merge and the original unit price is kept.
	assert.Equal(t, 5, line.Quantity().Value())
	assert.Equal(t, "10.00", line.UnitPrice().String())
	assert.Equal(t, "50.00", line.LineTotal().String())
	assert.Len(t, userCart.Lines(), 1)
}

func TestAddCartItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AddCartItemCommand{} // not constructed properly

	catalog := new(MockAddMenuCatalog)
	factory := new(MockAddCartUoWFactory)
	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAddCartItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	catalog.AssertNotCalled(t, "PriceOf")
}

func TestAddCartItemCommandHandler_Handle_UnknownMenuItem(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(1)

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	catalog := new(MockAddMenuCatalog)
	catalog.On("PriceOf", ctx, menuItemID).
		Return(kernel.Money{}, errs.NewObjectNotFoundError("menuItemId", menuItemID)).
		Once()

	factory := new(MockAddCartUoWFactory)
	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestAddCartItemCommandHandler_Handle_CatalogError(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(1)

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	catalog := new(MockAddMenuCatalog)
	catalog.On("PriceOf", ctx, menuItemID).
		Return(kernel.Money{}, errors.New("database error")).
		Once()

	factory := new(MockAddCartUoWFactory)
	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	factory.AssertNotCalled(t, "Create")
}

func TestAddCartItemCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(1)
	price, _ := kernel.NewMoneyFromString("4.25")

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	catalog := new(MockAddMenuCatalog)
	uow := new(MockAddCartUoW)
	factory := new(MockAddCartUoWFactory)

	mock.InOrder(
		catalog.On("PriceOf", ctx, menuItemID).Return(price, nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestAddCartItemCommandHandler_Handle_GetCartError(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(1)
	price, _ := kernel.NewMoneyFromString("4.25")

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	cartRepo := new(MockAddCartRepository)
	catalog := new(MockAddMenuCatalog)
	uow := new(MockAddCartUoW)

	mock.InOrder(
		catalog.On("PriceOf", ctx, menuItemID).Return(price, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUser", ctx, userID).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAddCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestAddCartItemCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(1)
	price, _ := kernel.NewMoneyFromString("4.25")

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	userCart, _ := cart.NewCart(userID)

	cartRepo := new(MockAddCartRepository)
	catalog := new(MockAddMenuCatalog)
	uow := new(MockAddCartUoW)

	mock.InOrder(
		catalog.On("PriceOf", ctx, menuItemID).Return(price, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUser", ctx, userID).Return(userCart, nil).Once(),
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).
			Return(errors.New("save error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAddCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "save error")
}

func TestAddCartItemCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()
	quantity, _ := kernel.NewQuantity(1)
	price, _ := kernel.NewMoneyFromString("4.25")

	cmd, err := commands.NewAddCartItemCommand(userID, menuItemID, quantity)
	require.NoError(t, err)

	userCart, _ := cart.NewCart(userID)

	cartRepo := new(MockAddCartRepository)
	catalog := new(MockAddMenuCatalog)
	uow := new(MockAddCartUoW)

	mock.InOrder(
		catalog.On("PriceOf", ctx, menuItemID).Return(price, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUser", ctx, userID).Return(userCart, nil).Once(),
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAddCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}

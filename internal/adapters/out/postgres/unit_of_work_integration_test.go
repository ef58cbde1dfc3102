package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "bistro/internal/adapters/out/postgres"
	"bistro/internal/adapters/out/postgres/cartrepo"
	"bistro/internal/adapters/out/postgres/orderrepo"
	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/domain/model/cart"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
// The checkout scenarios verify the cart drains and the order appears in one
// atomic step.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&cartrepo.CartLineDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE cart_lines, orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.CartRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow2.CartRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Multiple begin calls are safe and do not nest.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// seedCart stores a two-line cart for the given user outside any transaction.
func (suite *UnitOfWorkIntegrationTestSuite) seedCart(userID kernel.UUID) *cart.Cart {
	userCart, err := cart.NewCart(userID)
	suite.Require().NoError(err)

	qty, err := kernel.NewQuantity(2)
	suite.Require().NoError(err)
	price, err := kernel.NewMoneyFromString("12.50")
	suite.Require().NoError(err)
	_, err = userCart.AddOrIncrement(kernel.NewUUID(), qty, price)
	suite.Require().NoError(err)

	qty2, err := kernel.NewQuantity(1)
	suite.Require().NoError(err)
	price2, err := kernel.NewMoneyFromString("4.25")
	suite.Require().NoError(err)
	_, err = userCart.AddOrIncrement(kernel.NewUUID(), qty2, price2)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(context.Background()))
	suite.Require().NoError(uow.CartRepository().Save(context.Background(), userCart))
	suite.Require().NoError(uow.Commit(context.Background()))

	return userCart
}

// orderFromCart converts cart lines into a new pending order aggregate.
func (suite *UnitOfWorkIntegrationTestSuite) orderFromCart(userCart *cart.Cart) *order.Order {
	lines := userCart.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.MenuItemID(), line.Quantity(), line.UnitPrice())
		suite.Require().NoError(err)
		items = append(items, item)
	}

	placed, err := order.NewOrder(kernel.NewUUID(), userCart.UserID(), time.Now().UTC(), items)
	suite.Require().NoError(err)
	return placed
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutCommit() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	userCart := suite.seedCart(userID)
	placed := suite.orderFromCart(userCart)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.CartRepository().DeleteByUser(ctx, userID))
	suite.Require().NoError(uow.Commit(ctx))

	// Cart is empty, order exists with its items.
	restored, err := suite.factory.Create().CartRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.True(restored.IsEmpty())

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Len(stored.Items(), 2)
	suite.Equal("29.25", stored.Total().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutRollback() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	userCart := suite.seedCart(userID)
	placed := suite.orderFromCart(userCart)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.CartRepository().DeleteByUser(ctx, userID))
	suite.Require().NoError(uow.Rollback(ctx))

	// Rollback left the cart intact and no order behind.
	restored, err := suite.factory.Create().CartRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Len(restored.Lines(), 2)

	_, err = suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().Error(err)
}

// uowFactoryAdapter exposes the gorm factory through the checkout handler's
// factory interface.
type uowFactoryAdapter struct{ factory ports.UnitOfWorkFactory }

func (f uowFactoryAdapter) Create() commands.UoW {
	return f.factory.Create()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentCheckoutsProduceOneOrder() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	suite.seedCart(userID)

	handler := commands.NewCheckoutCommandHandler(uowFactoryAdapter{suite.factory})
	cmd, err := commands.NewCheckoutCommand(userID)
	suite.Require().NoError(err)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = handler.Handle(ctx, cmd)
		}(i)
	}
	wg.Wait()

	// The cart rows are read under a row lock, so the loser waits for the
	// winner's commit and then sees the drained cart.
	failures := make([]error, 0, 2)
	for _, result := range results {
		if result != nil {
			failures = append(failures, result)
		}
	}
	suite.Require().Len(failures, 1, "Exactly one checkout should win")
	suite.Require().ErrorIs(failures[0], errs.ErrCartIsEmpty)

	var count int64
	err = suite.db.Model(&orderrepo.OrderDTO{}).
		Where("customer_id = ?", userID.Bytes()).
		Count(&count).Error
	suite.Require().NoError(err)
	suite.EqualValues(1, count, "Only the winning checkout should place an order")

	restored, err := suite.factory.Create().CartRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.True(restored.IsEmpty())
}

// patchOrder applies mutate to the order inside its own locked transaction,
// mirroring the patch handler's read-check-write cycle.
func (suite *UnitOfWorkIntegrationTestSuite) patchOrder(
	ctx context.Context,
	orderID kernel.UUID,
	mutate func(*order.Order) error,
) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	target, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = mutate(target); err != nil {
		return err
	}

	if err = repo.Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentPatchesNeverRevertStatus() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	firstCrew := kernel.NewUUID()
	secondCrew := kernel.NewUUID()

	userCart := suite.seedCart(customerID)
	placed := suite.orderFromCart(userCart)
	suite.Require().NoError(placed.AssignDeliveryCrew(firstCrew))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.Commit(ctx))

	// One patch dispatches the order, the other reassigns the crew. The row
	// lock serializes them; the second writer re-reads committed fields
	// instead of overwriting them from a stale snapshot.
	results := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = suite.patchOrder(ctx, placed.ID(), func(o *order.Order) error {
			return o.ChangeStatus(order.OutForDelivery)
		})
	}()
	go func() {
		defer wg.Done()
		results[1] = suite.patchOrder(ctx, placed.ID(), func(o *order.Order) error {
			return o.AssignDeliveryCrew(secondCrew)
		})
	}()
	wg.Wait()

	suite.Require().NoError(results[0])
	suite.Require().NoError(results[1])

	// Either interleaving ends with the reassigned crew and the dispatched
	// status; the order never drops back to Pending.
	stored, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OutForDelivery, stored.Status())
	suite.Require().NotNil(stored.DeliveryCrew())
	suite.True(stored.DeliveryCrew().IsEqual(secondCrew))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

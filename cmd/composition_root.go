package cmd

import (
	"log/slog"

	"bistro/internal/adapters/in/http"
	"bistro/internal/adapters/out/postgres"
	"bistro/internal/adapters/out/postgres/menurepo"
	"bistro/internal/adapters/out/postgres/orderrepo"
	"bistro/internal/adapters/out/postgres/userrepo"
	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/application/usecases/queries"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/ports"
	"bistro/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartItemCommandHandler(f, c.CreateMenuCatalog())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClearCartCommandHandler(f)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f)
}

func (c *CompositionRoot) CreatePatchOrderCommandHandler() commands.PatchOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPatchOrderCommandHandler(f, c.CreateRoleDirectory())
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMenuCatalog() ports.MenuCatalog {
	return menurepo.NewGormMenuCatalog(c.gormDB)
}

func (c *CompositionRoot) CreateRoleDirectory() ports.RoleDirectory {
	return userrepo.NewGormRoleDirectory(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateAddCartItemCommandHandler(),
		c.CreateClearCartCommandHandler(),
		c.CreateCheckoutCommandHandler(),
		c.CreatePatchOrderCommandHandler(),
		c.CreateGetCartQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateRoleDirectory(),
	)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	// The watch job only reads, so modified-aggregate tracking is a no-op.
	orders := orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
	return jobs.NewJobManager(orders, logger)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

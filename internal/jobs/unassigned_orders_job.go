package jobs

import (
	"context"
	"log/slog"

	"bistro/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// UnassignedOrdersJob periodically reports pending orders without a delivery
// crew assignment, giving managers visibility into the dispatch backlog.
// The job only reads; assignment stays a manager decision.
type UnassignedOrdersJob struct {
	orders ports.OrderRepository
	cron   *cron.Cron
	logger *slog.Logger
}

// NewUnassignedOrdersJob creates a new job watching the dispatch backlog.
func NewUnassignedOrdersJob(orders ports.OrderRepository, logger *slog.Logger) *UnassignedOrdersJob {
	return &UnassignedOrdersJob{
		orders: orders,
		cron:   cron.New(),
		logger: logger.With("component", "unassigned_orders_job"),
	}
}

// Start begins the backlog watch, running every minute.
func (j *UnassignedOrdersJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		unassigned, err := j.orders.GetAllUnassigned(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Unassigned orders check failed", "error", err)
			return
		}

		if len(unassigned) == 0 {
			return
		}

		oldest := unassigned[0]
		j.logger.InfoContext(ctx, "Orders awaiting delivery crew assignment",
			"count", len(unassigned),
			"oldest_order_id", oldest.ID().String(),
			"oldest_placed_at", oldest.PlacedAt(),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unassigned orders job started (running every minute)")
	return nil
}

// Stop stops the backlog watch.
func (j *UnassignedOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unassigned orders job stopped")
}

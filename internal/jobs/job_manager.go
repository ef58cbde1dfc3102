package jobs

import (
	"fmt"
	"log/slog"

	"bistro/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	unassignedOrdersJob *UnassignedOrdersJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(orders ports.OrderRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		unassignedOrdersJob: NewUnassignedOrdersJob(orders, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.unassignedOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start unassigned orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.unassignedOrdersJob.Stop()
}

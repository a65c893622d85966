package jobs

import (
	"fmt"
	"log/slog"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchJob          *DispatchJob
	availabilityPurgeJob *AvailabilityPurgeJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchOrdersHandler commands.DispatchOrdersCommandHandler,
	purgeAvailabilityHandler commands.PurgeAvailabilityCommandHandler,
	clock ports.Clock,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchJob:          NewDispatchJob(dispatchOrdersHandler, clock, logger),
		availabilityPurgeJob: NewAvailabilityPurgeJob(purgeAvailabilityHandler, clock, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch job: %w", err)
	}

	if err := jm.availabilityPurgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchJob.Stop()
		return fmt.Errorf("failed to start availability purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.availabilityPurgeJob.Stop()
	jm.dispatchJob.Stop()
}

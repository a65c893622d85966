package jobs

import (
	"context"
	"log/slog"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/ports"

	"github.com/robfig/cron/v3"
)

type purgeHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeAvailabilityCommand) error
}

// AvailabilityPurgeJob deletes availability rows for past dates once a day at
// midnight.
type AvailabilityPurgeJob struct {
	handler purgeHandler
	clock   ports.Clock
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAvailabilityPurgeJob creates the daily purge job.
func NewAvailabilityPurgeJob(handler purgeHandler, clock ports.Clock, logger *slog.Logger) *AvailabilityPurgeJob {
	return &AvailabilityPurgeJob{
		handler: handler,
		clock:   clock,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "availability_purge_job"),
	}
}

// Start begins the purge job on a daily midnight schedule.
func (j *AvailabilityPurgeJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Availability purge job started (running daily)")
	return nil
}

// Stop stops the purge job.
func (j *AvailabilityPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Availability purge job stopped")
}

// Run deletes availability registrations dated before today.
func (j *AvailabilityPurgeJob) Run(ctx context.Context) {
	today := kernel.DateFromTime(j.clock.Now())

	cmd, err := commands.NewPurgeAvailabilityCommand(today)
	if err != nil {
		j.logger.ErrorContext(ctx, "Availability purge job could not build command", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Availability purge job failed",
			"before", today.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Availability purge completed", "before", today.String())
}

package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/domain/services"
	"runners/internal/core/ports"

	"github.com/robfig/cron/v3"
)

type dispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrdersCommand) error
}

// DispatchJob runs the order dispatcher on a minute tick. A tick whose minute
// equals a delivery window's start minute dispatches that window for today;
// missed ticks are not caught up.
type DispatchJob struct {
	handler dispatchHandler
	clock   ports.Clock
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchJob creates the minute-tick dispatch job.
func NewDispatchJob(handler dispatchHandler, clock ports.Clock, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler: handler,
		clock:   clock,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_job"),
	}
}

// Start begins the dispatch job on a one-minute schedule.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.RunDue(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started (running every minute)")
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}

// RunDue dispatches every delivery window that starts at the current minute.
func (j *DispatchJob) RunDue(ctx context.Context) {
	now := j.clock.Now()
	minute := now.Truncate(time.Minute)
	date := kernel.DateFromTime(now)

	for _, slot := range timeslot.All() {
		if !slot.StartOn(now).Truncate(time.Minute).Equal(minute) {
			continue
		}

		cmd, err := commands.NewDispatchOrdersCommand(slot, date)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch job could not build command",
				"slot", slot.String(), "error", err)
			continue
		}

		err = j.handler.Handle(ctx, cmd)
		switch {
		case errors.Is(err, commands.ErrNoPendingOrders),
			errors.Is(err, services.ErrNoAvailableRunners):
			// Expected business scenarios, not failures
			j.logger.InfoContext(ctx, "Dispatch run ended without assignments",
				"slot", slot.String(), "date", date.String(), "reason", err)
		case err != nil:
			j.logger.ErrorContext(ctx, "Dispatch job failed",
				"slot", slot.String(), "date", date.String(), "error", err)
		default:
			j.logger.InfoContext(ctx, "Dispatch run completed",
				"slot", slot.String(), "date", date.String())
		}
	}
}

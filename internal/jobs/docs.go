// Package jobs provides scheduled background tasks for the runner assignment
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations of the service.
//
// # Available Jobs
//
// 1. DispatchJob - Runs every minute and dispatches pending orders for any
// delivery window that starts at that minute
// 2. AvailabilityPurgeJob - Runs daily at midnight to delete availability
// registrations for past dates
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, purgeHandler, clock, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// DispatchJob uses the cron expression "0 * * * * *" so it fires once per
// minute on the minute; a tick whose minute does not match any window start
// is a no-op, and missed ticks are never caught up. AvailabilityPurgeJob
// uses "0 0 0 * * *" and fires once per day. Both compare times through the
// injected clock, which runs in the delivery timezone.
//
// # Error Handling
//
// - DispatchJob logs "no pending orders" and "no available runners" as
// expected outcomes, everything else as an error
// - AvailabilityPurgeJob logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs

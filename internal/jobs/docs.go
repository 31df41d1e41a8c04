// Package jobs provides scheduled background tasks for the restock service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// StaleOrderCancellationJob cancels orders the supplier never answered: orders
// still in CREADA or ENVIADA whose last change is older than STALE_ORDER_TTL are
// moved to CANCELADA with the reason "expired", at most STALE_ORDER_BATCH per tick.
//
// # Usage
//
//	job := jobs.NewStaleOrderCancellationJob(handler, "0 */10 * * * *", 72*time.Hour, 100, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six fields with seconds first, so "0 0 * * * *" runs hourly.
// Descriptors such as "@every 15m" are accepted as well.
//
// # Error Handling
//
// A failed batch is logged and retried on the next tick. Orders changed
// concurrently make the batch fail with a version conflict and are picked up again.
package jobs

package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restock/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultStaleOrderSchedule runs the cancellation at the top of every hour.
const DefaultStaleOrderSchedule = "0 0 * * * *"

type staleOrderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelStaleRestockOrdersCommand) (int, error)
}

// StaleOrderCancellationJob cancels orders left in CREADA or ENVIADA for longer than
// a TTL, one batch per tick.
type StaleOrderCancellationJob struct {
	handler  staleOrderCanceller
	schedule string
	ttl      time.Duration
	batch    int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderCancellationJob creates the job. The schedule is a six field cron
// expression (seconds first) or a descriptor such as "@every 10m".
func NewStaleOrderCancellationJob(
	handler staleOrderCanceller,
	schedule string,
	ttl time.Duration,
	batch int,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start registers the schedule and starts the cron goroutine.
func (j *StaleOrderCancellationJob) Start() error {
	if _, err := commands.NewCancelStaleRestockOrdersCommand(j.ttl, j.batch); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started",
		"schedule", j.schedule, "ttl", j.ttl.String(), "batch", j.batch)
	return nil
}

// RunOnce cancels a single batch and returns how many orders were cancelled.
func (j *StaleOrderCancellationJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewCancelStaleRestockOrdersCommand(j.ttl, j.batch)
	if err != nil {
		return 0, err
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order cancellation failed", "error", err)
		return 0, err
	}
	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Stale orders cancelled", "count", cancelled)
	}
	return cancelled, nil
}

// Stop stops the schedule and waits for a running batch to finish.
func (j *StaleOrderCancellationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}

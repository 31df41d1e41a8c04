package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Events recorded by the aggregates it saved are published after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit makes the writes durable, then publishes the pending domain events.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	// RestockOrderRepository returns a repository bound to the current transaction.
	RestockOrderRepository() RestockOrderRepository
}

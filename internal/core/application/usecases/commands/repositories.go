// Package commands contains business operations that modify restock orders.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"restock/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RestockOrderRepoFactory provides access to the order repository within a transaction.
	RestockOrderRepoFactory interface {
		RestockOrderRepository() ports.RestockOrderRepository
	}

	// RestockOrderUoW manages transactions for restock order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.RestockOrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	RestockOrderUoW interface {
		TxManager
		RestockOrderRepoFactory
	}

	// RestockOrderUoWFactory creates new unit of work instances.
	RestockOrderUoWFactory interface {
		Create() RestockOrderUoW
	}
)

// Package ports defines the contracts between the restock order domain and the
// infrastructure that stores orders, hashes delivery codes and publishes events.
package ports

import (
	"context"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
)

// RestockOrderReader loads orders for queries. Implementations do not need a transaction.
type RestockOrderReader interface {
	// Get returns the order with its items and status history.
	// Returns errs.ObjectNotFoundError when no order has this id.
	Get(ctx context.Context, id kernel.ID) (*restockorder.RestockOrder, error)

	// List returns one page of orders matching filter, newest first, along with the
	// number of matching orders across all pages.
	List(ctx context.Context, filter restockorder.Filter) ([]*restockorder.RestockOrder, int64, error)
}

// RestockOrderRepository defines the persistence contract for restock order aggregates.
type RestockOrderRepository interface {
	RestockOrderReader

	// Add persists a new order, its items and its history.
	Add(ctx context.Context, aggregate *restockorder.RestockOrder) error

	// Update persists status, timestamps and new history entries of an existing order.
	// The write only succeeds if the stored version still equals aggregate.Version();
	// otherwise errs.VersionIsInvalidError is returned and nothing is written.
	Update(ctx context.Context, aggregate *restockorder.RestockOrder) error
}

package ports

import (
	"context"

	"restock/internal/core/domain/model/restockorder"
)

// EventPublisher delivers committed domain events to interested parties.
// Publishing is best effort: a failed delivery never undoes the transaction.
type EventPublisher interface {
	Publish(ctx context.Context, events ...restockorder.Event) error
}

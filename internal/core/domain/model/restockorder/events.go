package restockorder

import (
	"time"

	"restock/internal/core/domain/model/kernel"
)

const (
	EventOrderCreated       = "restock_order.created"
	EventOrderStatusChanged = "restock_order.status_changed"
	EventOrderDelivered     = "restock_order.delivered"
)

// Event is a fact recorded by the aggregate. Events are dispatched after the
// transaction that produced them commits.
type Event struct {
	Name       string
	OrderID    kernel.ID
	StoreID    kernel.ID
	SupplierID kernel.ID
	// From is Unknown for EventOrderCreated.
	From       Status
	To         Status
	Reason     string
	OccurredAt time.Time
}

// StatusChange is one entry of the order's status history.
type StatusChange struct {
	From   Status
	To     Status
	Reason string
	At     time.Time
}

package queries

import (
	"errors"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/pkg/guard"
)

var ErrGetRestockOrderQueryIsNotConstructed = errors.New(
	"GetRestockOrderQuery must be created via NewGetRestockOrderQuery constructor",
)

// GetRestockOrderQuery retrieves one order with its items, totals and history.
//
// Example:
//
//	query, err := NewGetRestockOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetRestockOrderQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetRestockOrderQuery(orderID kernel.ID) (GetRestockOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetRestockOrderQuery{}, err
	}
	return GetRestockOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRestockOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetRestockOrderQueryIsNotConstructed)
}

func (q GetRestockOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

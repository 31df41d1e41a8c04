package queries

import (
	"context"

	"restock/internal/core/ports"

	"golang.org/x/text/currency"
)

// GetRestockOrderQueryHandler loads a single order outside of any transaction.
type GetRestockOrderQueryHandler struct {
	reader ports.RestockOrderReader
	unit   currency.Unit
}

// NewGetRestockOrderQueryHandler expresses amounts in unit.
func NewGetRestockOrderQueryHandler(reader ports.RestockOrderReader, unit currency.Unit) GetRestockOrderQueryHandler {
	return GetRestockOrderQueryHandler{reader: reader, unit: unit}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetRestockOrderQueryHandler) Handle(ctx context.Context, query GetRestockOrderQuery) (RestockOrderView, error) {
	if err := query.Validate(); err != nil {
		return RestockOrderView{}, err
	}

	order, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return RestockOrderView{}, err
	}

	return NewRestockOrderView(order, h.unit), nil
}

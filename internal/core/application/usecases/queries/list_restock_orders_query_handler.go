package queries

import (
	"context"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/ports"

	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// RestockOrderPage is one page of a listing.
type RestockOrderPage struct {
	Orders []RestockOrderView
	Total  int64
	Limit  int
	Offset int
}

type ListRestockOrdersQueryHandler struct {
	reader ports.RestockOrderReader
	unit   currency.Unit
}

func NewListRestockOrdersQueryHandler(reader ports.RestockOrderReader, unit currency.Unit) ListRestockOrdersQueryHandler {
	return ListRestockOrdersQueryHandler{reader: reader, unit: unit}
}

func (h ListRestockOrdersQueryHandler) Handle(ctx context.Context, query ListRestockOrdersQuery) (RestockOrderPage, error) {
	if err := query.Validate(); err != nil {
		return RestockOrderPage{}, err
	}

	filter := query.Filter()
	orders, total, err := h.reader.List(ctx, filter)
	if err != nil {
		return RestockOrderPage{}, err
	}

	return RestockOrderPage{
		Orders: lo.Map(orders, func(o *restockorder.RestockOrder, _ int) RestockOrderView {
			return NewRestockOrderView(o, h.unit)
		}),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

package queries

import (
	"errors"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/guard"
)

var ErrListRestockOrdersQueryIsNotConstructed = errors.New(
	"ListRestockOrdersQuery must be created via NewListRestockOrdersQuery constructor",
)

// ListRestockOrdersQuery retrieves a page of orders, newest first.
// A zero limit selects restockorder.DefaultPageSize.
type ListRestockOrdersQuery struct {
	filter restockorder.Filter

	guard guard.ConstructorGuard
}

func NewListRestockOrdersQuery(filter restockorder.Filter) (ListRestockOrdersQuery, error) {
	if filter.Limit == 0 {
		filter.Limit = restockorder.DefaultPageSize
	}
	if err := filter.Validate(); err != nil {
		return ListRestockOrdersQuery{}, err
	}
	return ListRestockOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRestockOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestockOrdersQueryIsNotConstructed)
}

func (q ListRestockOrdersQuery) Filter() restockorder.Filter {
	return q.filter
}

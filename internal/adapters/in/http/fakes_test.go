package http_test

import (
	"context"
	"sort"
	"sync"

	"restock/internal/core/application/usecases/commands"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/ports"
	"restock/internal/pkg/errs"

	"github.com/samber/lo"
)

// memoryStore keeps orders in memory. Transactions are not isolated.
type memoryStore struct {
	mu     sync.Mutex
	orders map[kernel.ID]*restockorder.RestockOrder
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: map[kernel.ID]*restockorder.RestockOrder{}}
}

func (s *memoryStore) Get(_ context.Context, id kernel.ID) (*restockorder.RestockOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return o, nil
}

func (s *memoryStore) List(_ context.Context, filter restockorder.Filter) ([]*restockorder.RestockOrder, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := lo.Filter(lo.Values(s.orders), func(o *restockorder.RestockOrder, _ int) bool {
		return filter.Matches(o)
	})
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *memoryStore) Add(_ context.Context, o *restockorder.RestockOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ID()] = o
	return nil
}

func (s *memoryStore) Update(_ context.Context, o *restockorder.RestockOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID())
	}
	s.orders[o.ID()] = o
	return nil
}

type memoryUoW struct {
	store *memoryStore
}

func (u memoryUoW) Begin(context.Context) error    { return nil }
func (u memoryUoW) Commit(context.Context) error   { return nil }
func (u memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) RestockOrderRepository() ports.RestockOrderRepository {
	return u.store
}

type memoryUoWFactory struct {
	store *memoryStore
}

func (f memoryUoWFactory) Create() commands.RestockOrderUoW {
	return memoryUoW(f)
}

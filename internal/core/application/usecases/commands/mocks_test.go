package commands_test

import (
	"context"
	"testing"
	"time"

	"restock/internal/core/application/usecases/commands"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/ports"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRestockOrderRepository struct{ mock.Mock }

func (m *MockRestockOrderRepository) Add(ctx context.Context, o *restockorder.RestockOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRestockOrderRepository) Update(ctx context.Context, o *restockorder.RestockOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRestockOrderRepository) Get(ctx context.Context, id kernel.ID) (*restockorder.RestockOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*restockorder.RestockOrder)
	return o, args.Error(1)
}

func (m *MockRestockOrderRepository) List(
	ctx context.Context,
	filter restockorder.Filter,
) ([]*restockorder.RestockOrder, int64, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*restockorder.RestockOrder)
	return orders, args.Get(1).(int64), args.Error(2)
}

type MockRestockOrderUoW struct{ mock.Mock }

func (m *MockRestockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRestockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRestockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRestockOrderUoW) RestockOrderRepository() ports.RestockOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.RestockOrderRepository)
}

type MockRestockOrderUoWFactory struct{ mock.Mock }

func (m *MockRestockOrderUoWFactory) Create() commands.RestockOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.RestockOrderUoW)
}

type MockDeliveryCodeHasher struct{ mock.Mock }

func (m *MockDeliveryCodeHasher) Hash(code restockorder.DeliveryCode) (string, error) {
	args := m.Called(code)
	return args.String(0), args.Error(1)
}

func (m *MockDeliveryCodeHasher) Matches(hash string, code restockorder.DeliveryCode) bool {
	args := m.Called(hash, code)
	return args.Bool(0)
}

// restoredOrder returns an order persisted in status, last changed `age` ago.
func restoredOrder(t *testing.T, status restockorder.Status, age time.Duration) *restockorder.RestockOrder {
	t.Helper()
	items, err := restockorder.NewItems([]restockorder.ItemSpec{{
		ProductID:      kernel.NewID(),
		Quantity:       gofakeit.Number(1, 50),
		UnitPriceCents: int64(gofakeit.Number(0, 100000)),
	}})
	require.NoError(t, err)

	updatedAt := time.Now().UTC().Add(-age)
	o, err := restockorder.RestoreRestockOrder(restockorder.RestoreParams{
		NewParams: restockorder.NewParams{
			ID:               kernel.NewID(),
			StoreID:          kernel.NewID(),
			SupplierID:       kernel.NewID(),
			SupplierRouteID:  kernel.NewID(),
			Items:            items,
			Notes:            gofakeit.Sentence(6),
			DeliveryCodeHash: "stored-hash",
			CreatedAt:        updatedAt.Add(-time.Hour),
		},
		Status:    status,
		UpdatedAt: updatedAt,
		Version:   3,
	})
	require.NoError(t, err)
	return o
}

// expectTx wires a factory returning a unit of work bound to repo.
func expectTx(ctx context.Context, repo *MockRestockOrderRepository) (*MockRestockOrderUoWFactory, *MockRestockOrderUoW) {
	uow := new(MockRestockOrderUoW)
	factory := new(MockRestockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RestockOrderRepository").Return(repo).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()
	return factory, uow
}

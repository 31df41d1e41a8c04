package queries_test

import (
	"context"
	"testing"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRestockOrderReader struct{ mock.Mock }

func (m *MockRestockOrderReader) Get(ctx context.Context, id kernel.ID) (*restockorder.RestockOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*restockorder.RestockOrder)
	return o, args.Error(1)
}

func (m *MockRestockOrderReader) List(
	ctx context.Context,
	filter restockorder.Filter,
) ([]*restockorder.RestockOrder, int64, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*restockorder.RestockOrder)
	return orders, args.Get(1).(int64), args.Error(2)
}

// sentOrder returns an order with two items (2 x 1.50 and 1 x 0.99) that was sent once.
func sentOrder(t *testing.T) *restockorder.RestockOrder {
	t.Helper()
	items, err := restockorder.NewItems([]restockorder.ItemSpec{
		{ProductID: kernel.NewID(), Quantity: 2, UnitPriceCents: 150},
		{ProductID: kernel.NewID(), Quantity: 1, UnitPriceCents: 99},
	})
	require.NoError(t, err)

	day, err := restockorder.NewWeekday(3)
	require.NoError(t, err)

	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	delivery, err := restockorder.NewDelivery(&date, "back door")
	require.NoError(t, err)

	o, err := restockorder.NewRestockOrder(restockorder.NewParams{
		ID:                 kernel.NewID(),
		StoreID:            kernel.NewID(),
		SupplierID:         kernel.NewID(),
		SupplierRouteID:    kernel.NewID(),
		RequestedDayOfWeek: &day,
		Items:              items,
		Delivery:           delivery,
		Notes:              gofakeit.Sentence(5),
		DeliveryCodeHash:   "hash",
		CreatedAt:          createdAt,
	})
	require.NoError(t, err)
	require.NoError(t, o.ChangeStatus(restockorder.Sent, "", restockorder.StrictPolicy, createdAt.Add(time.Hour)))
	return o
}

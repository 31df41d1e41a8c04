package restockorder_test

import (
	"errors"
	"testing"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	productID := kernel.NewID()

	t.Run("should create an item", func(t *testing.T) {
		item, err := restockorder.NewItem(productID, 3, 1250)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, kernel.Cents(1250), item.UnitPriceCents())
		assert.Equal(t, kernel.Cents(3750), item.SubtotalCents())
	})

	t.Run("should accept a zero price", func(t *testing.T) {
		_, err := restockorder.NewItem(productID, 1, 0)
		require.NoError(t, err)
	})

	t.Run("should reject every invalid field at once", func(t *testing.T) {
		_, err := restockorder.NewItem(kernel.ID{}, 0, -1)

		fieldErrors, ok := errs.CollectFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{"productId", "quantity", "unitPriceCents"}, fields(fieldErrors))
	})

	t.Run("should reject a subtotal above MaxCents", func(t *testing.T) {
		_, err := restockorder.NewItem(productID, 1_000_000_000, kernel.MaxCents.Int64())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		fieldErrors, ok := errs.CollectFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{"item"}, fields(fieldErrors))
	})

	t.Run("should accept a subtotal of exactly MaxCents", func(t *testing.T) {
		item, err := restockorder.NewItem(productID, 1, kernel.MaxCents.Int64())

		require.NoError(t, err)
		assert.Equal(t, kernel.MaxCents, item.SubtotalCents())
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, restockorder.Item{}.Validate(), restockorder.ErrItemIsNotConstructed)
	})
}

func TestNewItems(t *testing.T) {
	t.Run("should keep the input order", func(t *testing.T) {
		first, second := kernel.NewID(), kernel.NewID()

		items, err := restockorder.NewItems([]restockorder.ItemSpec{
			{ProductID: first, Quantity: 1, UnitPriceCents: 100},
			{ProductID: second, Quantity: 2, UnitPriceCents: 200},
		})

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, items[0].ProductID().IsEqual(first))
		assert.True(t, items[1].ProductID().IsEqual(second))
	})

	t.Run("should reject an empty list", func(t *testing.T) {
		_, err := restockorder.NewItems(nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		fieldErrors, ok := errs.CollectFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, "items", fieldErrors[0].Field)
	})

	t.Run("should index errors by position", func(t *testing.T) {
		_, err := restockorder.NewItems([]restockorder.ItemSpec{
			{ProductID: kernel.NewID(), Quantity: 1},
			{ProductID: kernel.NewID(), Quantity: 0},
			{ProductID: kernel.NewID(), Quantity: 2, UnitPriceCents: -5},
		})

		fieldErrors, ok := errs.CollectFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{"items.1.quantity", "items.2.unitPriceCents"}, fields(fieldErrors))
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should index an overflowing subtotal by position", func(t *testing.T) {
		_, err := restockorder.NewItems([]restockorder.ItemSpec{
			{ProductID: kernel.NewID(), Quantity: 1, UnitPriceCents: 100},
			{ProductID: kernel.NewID(), Quantity: 2, UnitPriceCents: kernel.MaxCents.Int64()},
		})

		fieldErrors, ok := errs.CollectFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{"items.1"}, fields(fieldErrors))
	})
}

func fields(fieldErrors []errs.FieldError) []string {
	out := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, fe.Field)
	}
	return out
}

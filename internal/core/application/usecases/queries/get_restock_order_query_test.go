package queries_test

import (
	"testing"

	"restock/internal/core/application/usecases/queries"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRestockOrderQuery(t *testing.T) {
	t.Run("should create a valid query", func(t *testing.T) {
		id := kernel.NewID()

		query, err := queries.NewGetRestockOrderQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, id.IsEqual(query.OrderID()))
	})

	t.Run("should reject a zero id", func(t *testing.T) {
		_, err := queries.NewGetRestockOrderQuery(kernel.ID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGetRestockOrderQuery_NotConstructed(t *testing.T) {
	query := queries.GetRestockOrderQuery{}

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrGetRestockOrderQueryIsNotConstructed)
}

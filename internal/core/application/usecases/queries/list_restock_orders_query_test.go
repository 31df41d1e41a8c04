package queries_test

import (
	"testing"

	"restock/internal/core/application/usecases/queries"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListRestockOrdersQuery(t *testing.T) {
	t.Run("should default the page size", func(t *testing.T) {
		query, err := queries.NewListRestockOrdersQuery(restockorder.Filter{})

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, restockorder.DefaultPageSize, query.Filter().Limit)
	})

	t.Run("should reject an oversized page", func(t *testing.T) {
		_, err := queries.NewListRestockOrdersQuery(restockorder.Filter{Limit: restockorder.MaxPageSize + 1})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := queries.NewListRestockOrdersQuery(restockorder.Filter{
			Statuses: []restockorder.Status{restockorder.Status(42)},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestListRestockOrdersQuery_NotConstructed(t *testing.T) {
	query := queries.ListRestockOrdersQuery{}

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrListRestockOrdersQueryIsNotConstructed)
}

package queries_test

import (
	"testing"

	"restock/internal/core/application/usecases/queries"
	"restock/internal/core/domain/model/restockorder"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRestockOrderStatusesQueryHandler_Handle(t *testing.T) {
	byStatus := func(views []queries.StatusView) map[string]queries.StatusView {
		return lo.KeyBy(views, func(v queries.StatusView) string { return v.Status })
	}

	t.Run("strict policy follows the lifecycle", func(t *testing.T) {
		views := queries.NewListRestockOrderStatusesQueryHandler(restockorder.StrictPolicy).Handle()

		require.Len(t, views, 8)
		got := byStatus(views)
		assert.Equal(t, "CREADA", views[0].Status)
		assert.Contains(t, got["CREADA"].Next, "ENVIADA")
		assert.True(t, got["EN_RUTA"].RequiresCode)
		assert.False(t, got["CREADA"].RequiresCode)
		assert.True(t, got["ENTREGADA"].Terminal)
		assert.Empty(t, got["CANCELADA"].Next)
	})

	t.Run("permissive policy allows every status", func(t *testing.T) {
		views := queries.NewListRestockOrderStatusesQueryHandler(restockorder.PermissivePolicy).Handle()

		for _, v := range views {
			assert.Len(t, v.Next, 8, v.Status)
			assert.False(t, v.RequiresCode, v.Status)
		}
	})
}

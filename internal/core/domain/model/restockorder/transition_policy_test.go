package restockorder_test

import (
	"testing"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransitionPolicy(t *testing.T) {
	t.Run("should accept both policies", func(t *testing.T) {
		p, err := restockorder.ParseTransitionPolicy("strict")
		require.NoError(t, err)
		assert.Equal(t, restockorder.StrictPolicy, p)

		p, err = restockorder.ParseTransitionPolicy("permissive")
		require.NoError(t, err)
		assert.Equal(t, restockorder.PermissivePolicy, p)
	})

	t.Run("should reject anything else", func(t *testing.T) {
		_, err := restockorder.ParseTransitionPolicy("lenient")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.Error(t, restockorder.TransitionPolicy("").Validate())
	})
}

func TestStrictPolicy(t *testing.T) {
	policy := restockorder.StrictPolicy

	t.Run("should follow the transition table", func(t *testing.T) {
		require.NoError(t, policy.CheckChange(restockorder.Created, restockorder.Sent))
		require.NoError(t, policy.CheckChange(restockorder.Sent, restockorder.Rejected))
		require.NoError(t, policy.CheckChange(restockorder.InTransit, restockorder.Cancelled))
	})

	t.Run("should reject skipping states", func(t *testing.T) {
		err := policy.CheckChange(restockorder.Created, restockorder.InTransit)

		require.ErrorIs(t, err, restockorder.ErrTransitionNotAllowed)
		assert.Contains(t, err.Error(), "CREADA -> EN_RUTA")
	})

	t.Run("should require the delivery code to reach ENTREGADA", func(t *testing.T) {
		err := policy.CheckChange(restockorder.InTransit, restockorder.Delivered)

		require.ErrorIs(t, err, restockorder.ErrDeliveryRequiresCode)
		require.ErrorIs(t, err, restockorder.ErrTransitionNotAllowed)
	})

	t.Run("should reject an invalid target before anything else", func(t *testing.T) {
		err := policy.CheckChange(restockorder.Created, restockorder.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should only confirm delivery of orders EN_RUTA", func(t *testing.T) {
		require.NoError(t, policy.CheckDelivery(restockorder.InTransit))
		require.ErrorIs(t, policy.CheckDelivery(restockorder.Accepted), restockorder.ErrTransitionNotAllowed)
		require.ErrorIs(t, policy.CheckDelivery(restockorder.Delivered), restockorder.ErrTransitionNotAllowed)
	})

	t.Run("should allow the table entries", func(t *testing.T) {
		assert.Equal(t,
			[]restockorder.Status{restockorder.Accepted, restockorder.Rejected, restockorder.Cancelled},
			policy.Allowed(restockorder.Sent))
	})
}

func TestPermissivePolicy(t *testing.T) {
	policy := restockorder.PermissivePolicy

	t.Run("should accept any valid target from any status", func(t *testing.T) {
		for _, from := range restockorder.Statuses() {
			for _, to := range restockorder.Statuses() {
				require.NoError(t, policy.CheckChange(from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("should still reject invalid targets", func(t *testing.T) {
		require.ErrorIs(t, policy.CheckChange(restockorder.Created, restockorder.Status(42)), errs.ErrValueIsInvalid)
	})

	t.Run("should confirm delivery unless cancelled or rejected", func(t *testing.T) {
		require.NoError(t, policy.CheckDelivery(restockorder.Created))
		require.NoError(t, policy.CheckDelivery(restockorder.InPreparation))
		require.ErrorIs(t, policy.CheckDelivery(restockorder.Cancelled), restockorder.ErrTransitionNotAllowed)
		require.ErrorIs(t, policy.CheckDelivery(restockorder.Rejected), restockorder.ErrTransitionNotAllowed)
	})

	t.Run("should allow every status", func(t *testing.T) {
		assert.Equal(t, restockorder.Statuses(), policy.Allowed(restockorder.Delivered))
	})
}

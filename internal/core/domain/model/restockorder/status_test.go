package restockorder_test

import (
	"fmt"
	"testing"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should keep Unknown as the zero value", func(t *testing.T) {
		var s restockorder.Status
		assert.Equal(t, restockorder.Unknown, s)
		require.Error(t, s.Validate())
	})

	t.Run("should list the eight statuses in lifecycle order", func(t *testing.T) {
		assert.Equal(t, []string{
			"CREADA", "ENVIADA", "ACEPTADA", "RECHAZADA",
			"EN_PREPARACION", "EN_RUTA", "ENTREGADA", "CANCELADA",
		}, restockorder.StatusLiterals())
	})
}

func TestParseStatus(t *testing.T) {
	for _, literal := range restockorder.StatusLiterals() {
		t.Run(fmt.Sprintf("should parse %s", literal), func(t *testing.T) {
			s, err := restockorder.ParseStatus(literal)

			require.NoError(t, err)
			require.NoError(t, s.Validate())
			assert.Equal(t, literal, s.String())
		})
	}

	t.Run("should reject literals outside the enum", func(t *testing.T) {
		for _, literal := range []string{"PENDIENTE", "creada", " CREADA", "", "Unknown"} {
			s, err := restockorder.ParseStatus(literal)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, literal)
			assert.Equal(t, restockorder.Unknown, s)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[restockorder.Status]bool{
		restockorder.Delivered: true,
		restockorder.Cancelled: true,
		restockorder.Rejected:  true,
	}

	for _, s := range restockorder.Statuses() {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, terminal[s], s.IsTerminal())
		})
	}

	t.Run("Unknown is not terminal", func(t *testing.T) {
		assert.False(t, restockorder.Unknown.IsTerminal())
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    restockorder.Status
		to      restockorder.Status
		allowed bool
	}{
		{restockorder.Created, restockorder.Sent, true},
		{restockorder.Created, restockorder.Cancelled, true},
		{restockorder.Created, restockorder.Accepted, false},
		{restockorder.Created, restockorder.Delivered, false},
		{restockorder.Sent, restockorder.Accepted, true},
		{restockorder.Sent, restockorder.Rejected, true},
		{restockorder.Accepted, restockorder.InPreparation, true},
		{restockorder.Accepted, restockorder.Rejected, false},
		{restockorder.InPreparation, restockorder.InTransit, true},
		{restockorder.InTransit, restockorder.Delivered, true},
		{restockorder.InTransit, restockorder.Sent, false},
		{restockorder.Delivered, restockorder.Cancelled, false},
		{restockorder.Rejected, restockorder.Sent, false},
		{restockorder.Cancelled, restockorder.Created, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_NextStatuses(t *testing.T) {
	t.Run("should return a copy", func(t *testing.T) {
		next := restockorder.Created.NextStatuses()
		next[0] = restockorder.Delivered

		assert.Equal(t, []restockorder.Status{restockorder.Sent, restockorder.Cancelled},
			restockorder.Created.NextStatuses())
	})

	t.Run("should be empty for terminal statuses", func(t *testing.T) {
		assert.Empty(t, restockorder.Delivered.NextStatuses())
	})
}

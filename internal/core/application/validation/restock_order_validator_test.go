package validation_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"restock/internal/core/application/validation"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storeID    = "64b7f0c2a1b2c3d4e5f60718"
	supplierID = "64b7f0c2a1b2c3d4e5f60719"
	routeID    = "64b7f0c2a1b2c3d4e5f6071a"
	productID  = "64b7f0c2a1b2c3d4e5f6071b"
	orderID    = "64b7f0c2a1b2c3d4e5f6071c"
)

func validCreate() map[string]any {
	return map[string]any{
		"storeId":         storeID,
		"supplierId":      supplierID,
		"supplierRouteId": routeID,
		"items": []any{
			map[string]any{"productId": productID, "quantity": 12, "unitPriceCents": 1999},
		},
	}
}

func body(t *testing.T, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

// violations returns the field -> message map of a *errs.ValidationError.
func violations(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	require.ErrorIs(t, err, errs.ErrValidation)

	out := make(map[string]string, len(verr.Errors))
	for _, fe := range verr.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestRestockOrderValidator_ValidateCreate(t *testing.T) {
	v := validation.NewRestockOrderValidator()

	t.Run("should accept a valid payload", func(t *testing.T) {
		got, err := v.ValidateCreate(body(t, validCreate()))

		require.NoError(t, err)
		assert.Equal(t, storeID, got.StoreID.String())
		assert.Equal(t, supplierID, got.SupplierID.String())
		assert.Equal(t, routeID, got.SupplierRouteID.String())
		require.Len(t, got.Items, 1)
		assert.Equal(t, productID, got.Items[0].ProductID.String())
		assert.Equal(t, 12, got.Items[0].Quantity)
		assert.Equal(t, int64(1999), got.Items[0].UnitPriceCents)
		assert.Nil(t, got.RequestedDayOfWeek)
		assert.Nil(t, got.Delivery)
	})

	t.Run("should drop unknown top-level fields", func(t *testing.T) {
		payload := validCreate()
		payload["status"] = "ENTREGADA"
		payload["isAdmin"] = true

		got, err := v.ValidateCreate(body(t, payload))
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(body(t, got), &out))
		assert.NotContains(t, out, "status")
		assert.NotContains(t, out, "isAdmin")
		assert.Contains(t, out, "storeId")
	})

	t.Run("should trim free text and parse optional fields", func(t *testing.T) {
		payload := validCreate()
		payload["notes"] = "   fragile   "
		payload["requestedDayOfWeek"] = 5
		payload["delivery"] = map[string]any{"requestedDeliveryDate": "2025-03-14", "notes": " gate B "}

		got, err := v.ValidateCreate(body(t, payload))

		require.NoError(t, err)
		assert.Equal(t, "fragile", got.Notes)
		require.NotNil(t, got.RequestedDayOfWeek)
		assert.Equal(t, 5, *got.RequestedDayOfWeek)
		require.NotNil(t, got.Delivery)
		assert.Equal(t, "gate B", got.Delivery.Notes)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *got.Delivery.RequestedDeliveryDate)
	})

	t.Run("should accept an RFC 3339 delivery timestamp", func(t *testing.T) {
		payload := validCreate()
		payload["delivery"] = map[string]any{"requestedDeliveryDate": "2025-03-14T08:30:00-06:00"}

		got, err := v.ValidateCreate(body(t, payload))

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC), *got.Delivery.RequestedDeliveryDate)
	})

	t.Run("should accept a zero unit price", func(t *testing.T) {
		payload := validCreate()
		payload["items"] = []any{map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": 0}}

		_, err := v.ValidateCreate(body(t, payload))

		require.NoError(t, err)
	})

	t.Run("should fail on empty items", func(t *testing.T) {
		payload := validCreate()
		payload["items"] = []any{}

		_, err := v.ValidateCreate(body(t, payload))

		got := violations(t, err)
		assert.Equal(t, map[string]string{"items": "must contain at least 1 item(s)"}, got)
	})

	t.Run("should fail on missing items", func(t *testing.T) {
		payload := validCreate()
		delete(payload, "items")

		_, err := v.ValidateCreate(body(t, payload))

		assert.Equal(t, "is required", violations(t, err)["items"])
	})

	t.Run("should fail on non-positive or fractional quantities", func(t *testing.T) {
		tests := map[string]any{
			"zero":     0,
			"negative": -3,
			"fraction": 1.5,
			"string":   "ten",
		}

		for name, quantity := range tests {
			t.Run(name, func(t *testing.T) {
				payload := validCreate()
				payload["items"] = []any{
					map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": 10},
					map[string]any{"productId": productID, "quantity": quantity, "unitPriceCents": 10},
				}

				_, err := v.ValidateCreate(body(t, payload))

				got := violations(t, err)
				assert.Len(t, got, 1)
				assert.Contains(t, got, "items.1.quantity")
			})
		}
	})

	t.Run("should report every violation, not only the first", func(t *testing.T) {
		_, err := v.ValidateCreate(body(t, map[string]any{
			"storeId":            "123",
			"supplierRouteId":    routeID,
			"requestedDayOfWeek": 8,
			"items": []any{
				map[string]any{"productId": "nope", "quantity": 2, "unitPriceCents": -1},
			},
		}))

		got := violations(t, err)
		assert.Equal(t, map[string]string{
			"storeId":                "must be a 24 character hexadecimal identifier",
			"supplierId":             "is required",
			"requestedDayOfWeek":     "must be less than or equal to 7",
			"items.0.productId":      "must be a 24 character hexadecimal identifier",
			"items.0.unitPriceCents": "must be greater than or equal to 0",
		}, got)
	})

	t.Run("should reject a malformed delivery date", func(t *testing.T) {
		payload := validCreate()
		payload["delivery"] = map[string]any{"requestedDeliveryDate": "14/03/2025"}

		_, err := v.ValidateCreate(body(t, payload))

		assert.Contains(t, violations(t, err), "delivery.requestedDeliveryDate")
	})

	t.Run("should reject notes longer than 500 characters", func(t *testing.T) {
		payload := validCreate()
		payload["notes"] = strings.Repeat("n", 501)

		_, err := v.ValidateCreate(body(t, payload))

		assert.Equal(t, "must be at most 500 characters long", violations(t, err)["notes"])
	})

	t.Run("should report type mismatches by path", func(t *testing.T) {
		payload := validCreate()
		payload["items"] = "many"

		_, err := v.ValidateCreate(body(t, payload))

		assert.Equal(t, "must be an array", violations(t, err)["items"])
	})

	t.Run("should report a top-level type mismatch once under its own key", func(t *testing.T) {
		tests := map[string]struct {
			field string
			value any
			want  map[string]string
		}{
			"numeric store id": {
				field: "storeId",
				value: 5,
				want:  map[string]string{"storeId": "must be a string"},
			},
			"named day of week": {
				field: "requestedDayOfWeek",
				value: "monday",
				want:  map[string]string{"requestedDayOfWeek": "must be a number"},
			},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				payload := validCreate()
				payload[tt.field] = tt.value

				_, err := v.ValidateCreate(body(t, payload))

				assert.Equal(t, tt.want, violations(t, err))
			})
		}
	})

	t.Run("should accept all zero identifiers", func(t *testing.T) {
		zero := strings.Repeat("0", 24)
		payload := validCreate()
		payload["storeId"] = zero
		payload["items"] = []any{map[string]any{"productId": zero, "quantity": 1, "unitPriceCents": 1}}

		got, err := v.ValidateCreate(body(t, payload))

		require.NoError(t, err)
		assert.Equal(t, zero, got.StoreID.String())
		assert.Equal(t, zero, got.Items[0].ProductID.String())
	})

	t.Run("should reject an item subtotal above the largest exact amount", func(t *testing.T) {
		payload := validCreate()
		payload["items"] = []any{
			map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": 10},
			map[string]any{"productId": productID, "quantity": validation.MaxQuantity, "unitPriceCents": validation.MaxUnitPriceCents},
		}

		_, err := v.ValidateCreate(body(t, payload))

		got := violations(t, err)
		assert.Len(t, got, 1)
		assert.Contains(t, got, "items.1")
	})

	t.Run("should reject an order total above the largest exact amount", func(t *testing.T) {
		payload := validCreate()
		payload["items"] = []any{
			map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": validation.MaxUnitPriceCents},
			map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": validation.MaxUnitPriceCents},
		}

		_, err := v.ValidateCreate(body(t, payload))

		got := violations(t, err)
		assert.Len(t, got, 1)
		assert.Contains(t, got, "items")
	})

	t.Run("should accept an order total of exactly the largest exact amount", func(t *testing.T) {
		payload := validCreate()
		payload["items"] = []any{
			map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": validation.MaxUnitPriceCents - 1},
			map[string]any{"productId": productID, "quantity": 1, "unitPriceCents": 1},
		}

		got, err := v.ValidateCreate(body(t, payload))

		require.NoError(t, err)
		assert.Len(t, got.Items, 2)
	})

	t.Run("should reject bodies that are not JSON objects", func(t *testing.T) {
		for _, raw := range []string{"", "[]", `"text"`, "{", "null x"} {
			_, err := v.ValidateCreate([]byte(raw))

			assert.Contains(t, violations(t, err), validation.BodyField, raw)
		}
	})
}

func TestRestockOrderValidator_ValidateStatusUpdate(t *testing.T) {
	v := validation.NewRestockOrderValidator()

	t.Run("should accept each of the eight statuses", func(t *testing.T) {
		for _, literal := range restockorder.StatusLiterals() {
			got, err := v.ValidateStatusUpdate(orderID, body(t, map[string]any{"status": literal}))

			require.NoError(t, err, literal)
			assert.Equal(t, literal, got.Status.String())
			assert.Equal(t, orderID, got.OrderID.String())
		}
	})

	t.Run("should accept ENTREGADA regardless of the order's current status", func(t *testing.T) {
		got, err := v.ValidateStatusUpdate(orderID, body(t, map[string]any{"status": "ENTREGADA"}))

		require.NoError(t, err)
		assert.Equal(t, restockorder.Delivered, got.Status)
	})

	t.Run("should reject statuses outside the enum", func(t *testing.T) {
		for _, literal := range []string{"PENDIENTE", "entregada", ""} {
			_, err := v.ValidateStatusUpdate(orderID, body(t, map[string]any{"status": literal}))

			assert.Contains(t, violations(t, err)["status"], "must be one of CREADA, ENVIADA", literal)
		}
	})

	t.Run("should require a status", func(t *testing.T) {
		_, err := v.ValidateStatusUpdate(orderID, body(t, map[string]any{"reason": "late"}))

		assert.Equal(t, "is required", violations(t, err)["status"])
	})

	t.Run("should trim the reason", func(t *testing.T) {
		got, err := v.ValidateStatusUpdate(orderID, body(t, map[string]any{"status": "RECHAZADA", "reason": "  out of stock "}))

		require.NoError(t, err)
		assert.Equal(t, "out of stock", got.Reason)
	})

	t.Run("should validate the order id", func(t *testing.T) {
		_, err := v.ValidateStatusUpdate("xyz", body(t, map[string]any{"status": "ENVIADA"}))

		assert.Equal(t, "must be a 24 character hexadecimal identifier", violations(t, err)["orderId"])
	})

	t.Run("should not let the body override the order id", func(t *testing.T) {
		got, err := v.ValidateStatusUpdate(orderID, body(t, map[string]any{"status": "ENVIADA", "orderId": storeID}))

		require.NoError(t, err)
		assert.Equal(t, orderID, got.OrderID.String())
	})
}

func TestRestockOrderValidator_ValidateDeliveryConfirmation(t *testing.T) {
	v := validation.NewRestockOrderValidator()

	t.Run("should accept codes of 4 to 12 characters", func(t *testing.T) {
		for _, code := range []string{"1234", "123456", "ABCDEF123456"} {
			got, err := v.ValidateDeliveryConfirmation(orderID, body(t, map[string]any{"deliveryCode": code}))

			require.NoError(t, err, code)
			assert.Equal(t, code, got.DeliveryCode.String())
		}
	})

	t.Run("should reject codes that are too short or too long", func(t *testing.T) {
		tests := map[string]string{
			"123":           "must be at least 4 characters long",
			"1234567890123": "must be at most 12 characters long",
		}

		for code, message := range tests {
			_, err := v.ValidateDeliveryConfirmation(orderID, body(t, map[string]any{"deliveryCode": code}))

			assert.Equal(t, message, violations(t, err)["deliveryCode"], code)
		}
	})

	t.Run("should require a string code", func(t *testing.T) {
		_, err := v.ValidateDeliveryConfirmation(orderID, body(t, map[string]any{}))
		assert.Equal(t, "is required", violations(t, err)["deliveryCode"])

		_, err = v.ValidateDeliveryConfirmation(orderID, body(t, map[string]any{"deliveryCode": 123456}))
		assert.Equal(t, "must be a string", violations(t, err)["deliveryCode"])
	})
}

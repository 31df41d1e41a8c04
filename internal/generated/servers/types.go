// Package servers provides primitives to interact with the openapi HTTP API.
//
// The layout follows oapi-codegen's echo server output for api/openapi.yaml:
// one type per schema, a ServerInterface with one method per operation and a
// wrapper that binds path and query parameters before calling it.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for RestockOrderStatus.
const (
	ACEPTADA      RestockOrderStatus = "ACEPTADA"
	CANCELADA     RestockOrderStatus = "CANCELADA"
	CREADA        RestockOrderStatus = "CREADA"
	ENPREPARACION RestockOrderStatus = "EN_PREPARACION"
	ENRUTA        RestockOrderStatus = "EN_RUTA"
	ENTREGADA     RestockOrderStatus = "ENTREGADA"
	ENVIADA       RestockOrderStatus = "ENVIADA"
	RECHAZADA     RestockOrderStatus = "RECHAZADA"
)

// CreatedRestockOrder defines model for CreatedRestockOrder.
type CreatedRestockOrder struct {
	DeliveryCode string       `json:"deliveryCode"`
	Order        RestockOrder `json:"order"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	Notes                 *string             `json:"notes,omitempty"`
	RequestedDeliveryDate *openapi_types.Date `json:"requestedDeliveryDate,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int           `json:"code"`
	Errors  *[]FieldError `json:"errors,omitempty"`
	Message string        `json:"message"`
}

// FieldError defines model for FieldError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Money defines model for Money.
type Money struct {
	Amount   string `json:"amount"`
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// RestockOrder defines model for RestockOrder.
type RestockOrder struct {
	CreatedAt          time.Time          `json:"createdAt"`
	DeliveredAt        *time.Time         `json:"deliveredAt,omitempty"`
	Delivery           *Delivery          `json:"delivery,omitempty"`
	History            []StatusChange     `json:"history"`
	Id                 string             `json:"id"`
	Items              []RestockOrderItem `json:"items"`
	Notes              *string            `json:"notes,omitempty"`
	RequestedDayOfWeek *int               `json:"requestedDayOfWeek,omitempty"`
	Status             RestockOrderStatus `json:"status"`
	StoreId            string             `json:"storeId"`
	SupplierId         string             `json:"supplierId"`
	SupplierRouteId    string             `json:"supplierRouteId"`
	Total              Money              `json:"total"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	Version            int                `json:"version"`
}

// RestockOrderItem defines model for RestockOrderItem.
type RestockOrderItem struct {
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Subtotal  Money  `json:"subtotal"`
	UnitPrice Money  `json:"unitPrice"`
}

// RestockOrderPage defines model for RestockOrderPage.
type RestockOrderPage struct {
	Items  []RestockOrder `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Total  int64          `json:"total"`
}

// RestockOrderStatus defines model for RestockOrderStatus.
type RestockOrderStatus string

// StatusChange defines model for StatusChange.
type StatusChange struct {
	At     time.Time          `json:"at"`
	From   RestockOrderStatus `json:"from"`
	Reason *string            `json:"reason,omitempty"`
	To     RestockOrderStatus `json:"to"`
}

// StatusDescriptor defines model for StatusDescriptor.
type StatusDescriptor struct {
	Next                 []RestockOrderStatus `json:"next"`
	RequiresDeliveryCode bool                 `json:"requiresDeliveryCode"`
	Status               RestockOrderStatus   `json:"status"`
	Terminal             bool                 `json:"terminal"`
}

// ListRestockOrdersParams defines parameters for ListRestockOrders.
type ListRestockOrdersParams struct {
	StoreId    *string               `form:"storeId,omitempty" json:"storeId,omitempty"`
	SupplierId *string               `form:"supplierId,omitempty" json:"supplierId,omitempty"`
	Status     *[]RestockOrderStatus `form:"status,omitempty" json:"status,omitempty"`
	Limit      *int                  `form:"limit,omitempty" json:"limit,omitempty"`
	Offset     *int                  `form:"offset,omitempty" json:"offset,omitempty"`
}

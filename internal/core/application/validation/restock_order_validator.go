package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"
)

const (
	// MaxQuantity keeps quantities within the range every store handles exactly.
	MaxQuantity = 1_000_000_000

	// MaxUnitPriceCents is the largest integer a JSON number represents exactly.
	// Item subtotals and the order total share the same bound.
	MaxUnitPriceCents = int64(kernel.MaxCents)
)

type createRequest struct {
	StoreID            *string          `json:"storeId" validate:"required,objectid"`
	SupplierID         *string          `json:"supplierId" validate:"required,objectid"`
	SupplierRouteID    *string          `json:"supplierRouteId" validate:"required,objectid"`
	RequestedDayOfWeek *float64         `json:"requestedDayOfWeek" validate:"omitempty,whole,gte=1,lte=7"`
	Items              []itemRequest    `json:"items" validate:"required,min=1,dive"`
	Delivery           *deliveryRequest `json:"delivery" validate:"omitempty"`
	Notes              *string          `json:"notes" validate:"omitempty,max=500"`
}

// createEnvelope decodes items one by one so type errors keep their index. Its
// fields are declared flat so type errors report the bare JSON key.
type createEnvelope struct {
	StoreID            *string           `json:"storeId"`
	SupplierID         *string           `json:"supplierId"`
	SupplierRouteID    *string           `json:"supplierRouteId"`
	RequestedDayOfWeek *float64          `json:"requestedDayOfWeek"`
	Items              []json.RawMessage `json:"items"`
	Delivery           *deliveryRequest  `json:"delivery"`
	Notes              *string           `json:"notes"`
}

func (e createEnvelope) request() createRequest {
	return createRequest{
		StoreID:            e.StoreID,
		SupplierID:         e.SupplierID,
		SupplierRouteID:    e.SupplierRouteID,
		RequestedDayOfWeek: e.RequestedDayOfWeek,
		Delivery:           e.Delivery,
		Notes:              e.Notes,
	}
}

type itemRequest struct {
	ProductID      *string  `json:"productId" validate:"required,objectid"`
	Quantity       *float64 `json:"quantity" validate:"required,whole,gte=1,lte=1000000000"`
	UnitPriceCents *float64 `json:"unitPriceCents" validate:"required,whole,gte=0,lte=9007199254740991"`
}

type deliveryRequest struct {
	RequestedDeliveryDate *string `json:"requestedDeliveryDate" validate:"omitempty,isodate"`
	Notes                 *string `json:"notes" validate:"omitempty,max=500"`
}

type statusUpdateRequest struct {
	OrderID string  `json:"-" param:"orderId" validate:"required,objectid"`
	Status  *string `json:"status" validate:"required,restock_status"`
	Reason  *string `json:"reason" validate:"omitempty,max=500"`
}

type deliveryConfirmationRequest struct {
	OrderID      string  `json:"-" param:"orderId" validate:"required,objectid"`
	DeliveryCode *string `json:"deliveryCode" validate:"required,min=4,max=12"`
}

// CreateRestockOrder is a sanitized create payload.
type CreateRestockOrder struct {
	StoreID            kernel.ID          `json:"storeId"`
	SupplierID         kernel.ID          `json:"supplierId"`
	SupplierRouteID    kernel.ID          `json:"supplierRouteId"`
	RequestedDayOfWeek *int               `json:"requestedDayOfWeek,omitempty"`
	Items              []CreateItem       `json:"items"`
	Delivery           *DeliveryRequested `json:"delivery,omitempty"`
	Notes              string             `json:"notes,omitempty"`
}

type CreateItem struct {
	ProductID      kernel.ID `json:"productId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
}

type DeliveryRequested struct {
	RequestedDeliveryDate *time.Time `json:"requestedDeliveryDate,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
}

// StatusUpdate is a sanitized status update payload.
type StatusUpdate struct {
	OrderID kernel.ID
	Status  restockorder.Status
	Reason  string
}

// DeliveryConfirmation is a sanitized delivery confirmation payload.
type DeliveryConfirmation struct {
	OrderID      kernel.ID
	DeliveryCode restockorder.DeliveryCode
}

// ValidateCreate checks a new order payload.
//
// Required: storeId, supplierId, supplierRouteId and a non-empty items list whose
// entries carry a productId, an integer quantity of at least 1 and an integer
// unitPriceCents of at least 0. Optional: requestedDayOfWeek (1-7), delivery and notes.
func (v *RestockOrderValidator) ValidateCreate(body []byte) (CreateRestockOrder, error) {
	target := errs.NewValidationError()

	var env createEnvelope
	if !decode(body, &env, "", target) {
		return CreateRestockOrder{}, target
	}

	req := env.request()
	if env.Items != nil {
		req.Items = make([]itemRequest, len(env.Items))
		for i, raw := range env.Items {
			decode(raw, &req.Items[i], fmt.Sprintf("items.%d.", i), target)
		}
	}
	req.Notes = trimmed(req.Notes)
	if req.Delivery != nil {
		req.Delivery.Notes = trimmed(req.Delivery.Notes)
	}

	v.collect(target, &req)
	if err := target.OrNil(); err != nil {
		return CreateRestockOrder{}, err
	}
	return req.sanitize(target)
}

// ValidateStatusUpdate checks a status change. Any of the eight statuses is accepted.
func (v *RestockOrderValidator) ValidateStatusUpdate(orderID string, body []byte) (StatusUpdate, error) {
	target := errs.NewValidationError()

	req := statusUpdateRequest{OrderID: orderID}
	if !decode(body, &req, "", target) {
		return StatusUpdate{}, target
	}
	req.Reason = trimmed(req.Reason)

	v.collect(target, &req)
	if err := target.OrNil(); err != nil {
		return StatusUpdate{}, err
	}

	id, idErr := kernel.IDFromHex(req.OrderID)
	status, statusErr := restockorder.ParseStatus(deref(req.Status))
	if fieldErrors, ok := errs.CollectFieldErrors(errors.Join(idErr, statusErr)); ok {
		return StatusUpdate{}, errs.NewValidationError(fieldErrors...)
	}

	return StatusUpdate{OrderID: id, Status: status, Reason: deref(req.Reason)}, nil
}

// ValidateDeliveryConfirmation checks a delivery confirmation. The code must be
// between 4 and 12 characters long.
func (v *RestockOrderValidator) ValidateDeliveryConfirmation(orderID string, body []byte) (DeliveryConfirmation, error) {
	target := errs.NewValidationError()

	req := deliveryConfirmationRequest{OrderID: orderID}
	if !decode(body, &req, "", target) {
		return DeliveryConfirmation{}, target
	}

	v.collect(target, &req)
	if err := target.OrNil(); err != nil {
		return DeliveryConfirmation{}, err
	}

	id, idErr := kernel.IDFromHex(req.OrderID)
	code, codeErr := restockorder.NewDeliveryCode(deref(req.DeliveryCode))
	if fieldErrors, ok := errs.CollectFieldErrors(errors.Join(idErr, codeErr)); ok {
		return DeliveryConfirmation{}, errs.NewValidationError(fieldErrors...)
	}

	return DeliveryConfirmation{OrderID: id, DeliveryCode: code}, nil
}

func (r createRequest) sanitize(target *errs.ValidationError) (CreateRestockOrder, error) {
	out := CreateRestockOrder{
		StoreID:         parseID(target, "storeId", deref(r.StoreID)),
		SupplierID:      parseID(target, "supplierId", deref(r.SupplierID)),
		SupplierRouteID: parseID(target, "supplierRouteId", deref(r.SupplierRouteID)),
		Items:           make([]CreateItem, 0, len(r.Items)),
		Notes:           deref(r.Notes),
	}
	if r.RequestedDayOfWeek != nil {
		day := int(*r.RequestedDayOfWeek)
		out.RequestedDayOfWeek = &day
	}
	var total kernel.Cents
	for i, item := range r.Items {
		created := CreateItem{
			ProductID:      parseID(target, fmt.Sprintf("items.%d.productId", i), deref(item.ProductID)),
			Quantity:       int(deref(item.Quantity)),
			UnitPriceCents: int64(deref(item.UnitPriceCents)),
		}
		out.Items = append(out.Items, created)

		subtotal, ok := kernel.Cents(created.UnitPriceCents).TimesChecked(created.Quantity)
		if !ok {
			target.Add(fmt.Sprintf("items.%d", i), fmt.Sprintf("quantity times unitPriceCents must not exceed %d", kernel.MaxCents))
			continue
		}
		if next, ok := total.PlusChecked(subtotal); ok {
			total = next
		} else {
			target.Add("items", fmt.Sprintf("order total must not exceed %d cents", kernel.MaxCents))
		}
	}
	if r.Delivery != nil {
		delivery := &DeliveryRequested{Notes: deref(r.Delivery.Notes)}
		if r.Delivery.RequestedDeliveryDate != nil {
			date, err := parseDate(*r.Delivery.RequestedDeliveryDate)
			if err != nil {
				target.Add("delivery.requestedDeliveryDate", err.Error())
			} else {
				date = date.UTC()
				delivery.RequestedDeliveryDate = &date
			}
		}
		out.Delivery = delivery
	}

	if err := target.OrNil(); err != nil {
		return CreateRestockOrder{}, err
	}
	return out, nil
}

func parseID(target *errs.ValidationError, field, hex string) kernel.ID {
	id, err := kernel.IDFromHex(hex)
	if err != nil {
		target.Add(field, err.Error())
	}
	return id
}

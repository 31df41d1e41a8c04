package http

import (
	"time"

	"restock/internal/core/application/usecases/queries"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/generated/servers"
	"restock/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/samber/lo"
)

type orderParams struct {
	OrderID string `param:"orderId" validate:"required,objectid"`
}

// listParams mirrors ListRestockOrdersParams so echo's validator can report every
// bad query parameter at once.
type listParams struct {
	StoreID    *string  `query:"storeId" validate:"omitempty,objectid"`
	SupplierID *string  `query:"supplierId" validate:"omitempty,objectid"`
	Status     []string `query:"status" validate:"omitempty,dive,restock_status"`
	Limit      int      `query:"limit" validate:"gte=1,lte=100"`
	Offset     int      `query:"offset" validate:"gte=0"`
}

func toFilter(ctx echo.Context, params servers.ListRestockOrdersParams) (restockorder.Filter, error) {
	p := listParams{
		StoreID:    params.StoreId,
		SupplierID: params.SupplierId,
		Limit:      lo.FromPtrOr(params.Limit, restockorder.DefaultPageSize),
		Offset:     lo.FromPtr(params.Offset),
	}
	if params.Status != nil {
		p.Status = lo.Map(*params.Status, func(s servers.RestockOrderStatus, _ int) string { return string(s) })
	}
	if err := ctx.Validate(&p); err != nil {
		return restockorder.Filter{}, err
	}

	filter := restockorder.Filter{Limit: p.Limit, Offset: p.Offset}
	target := errs.NewValidationError()
	if p.StoreID != nil {
		filter.StoreID = parseID(target, "storeId", *p.StoreID)
	}
	if p.SupplierID != nil {
		filter.SupplierID = parseID(target, "supplierId", *p.SupplierID)
	}
	for _, literal := range p.Status {
		status, err := restockorder.ParseStatus(literal)
		if err != nil {
			target.Add("status", err.Error())
			continue
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	return filter, target.OrNil()
}

func parseID(target *errs.ValidationError, field, hex string) *kernel.ID {
	id, err := kernel.IDFromHex(hex)
	if err != nil {
		target.Add(field, err.Error())
		return nil
	}
	return &id
}

func toMoney(m queries.Money) servers.Money {
	return servers.Money{
		Cents:    m.Cents,
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

func toRestockOrder(v queries.RestockOrderView) servers.RestockOrder {
	out := servers.RestockOrder{
		Id:                 v.ID.String(),
		StoreId:            v.StoreID.String(),
		SupplierId:         v.SupplierID.String(),
		SupplierRouteId:    v.SupplierRouteID.String(),
		RequestedDayOfWeek: v.RequestedDayOfWeek,
		Status:             servers.RestockOrderStatus(v.Status),
		Total:              toMoney(v.Total),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		DeliveredAt:        v.DeliveredAt,
		Version:            v.Version,
		Items: lo.Map(v.Items, func(item queries.RestockOrderItemView, _ int) servers.RestockOrderItem {
			return servers.RestockOrderItem{
				ProductId: item.ProductID.String(),
				Quantity:  item.Quantity,
				UnitPrice: toMoney(item.UnitPrice),
				Subtotal:  toMoney(item.Subtotal),
			}
		}),
		History: lo.Map(v.History, func(change queries.StatusChangeView, _ int) servers.StatusChange {
			return servers.StatusChange{
				From:   servers.RestockOrderStatus(change.From),
				To:     servers.RestockOrderStatus(change.To),
				Reason: lo.EmptyableToPtr(change.Reason),
				At:     change.At,
			}
		}),
		Notes: lo.EmptyableToPtr(v.Notes),
	}
	if v.Delivery != nil {
		out.Delivery = &servers.Delivery{
			Notes:                 lo.EmptyableToPtr(v.Delivery.Notes),
			RequestedDeliveryDate: toDate(v.Delivery.RequestedDate),
		}
	}
	return out
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func toRestockOrderPage(page queries.RestockOrderPage) servers.RestockOrderPage {
	return servers.RestockOrderPage{
		Items:  lo.Map(page.Orders, func(v queries.RestockOrderView, _ int) servers.RestockOrder { return toRestockOrder(v) }),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

func toStatusDescriptors(views []queries.StatusView) []servers.StatusDescriptor {
	return lo.Map(views, func(v queries.StatusView, _ int) servers.StatusDescriptor {
		return servers.StatusDescriptor{
			Status:               servers.RestockOrderStatus(v.Status),
			Terminal:             v.Terminal,
			Next:                 lo.Map(v.Next, func(s string, _ int) servers.RestockOrderStatus { return servers.RestockOrderStatus(s) }),
			RequiresDeliveryCode: v.RequiresCode,
		}
	})
}

// Package queries contains read operations over restock orders.
// Implements the Query side of the CQRS architecture: every handler returns read models
// that are safe to serialize and never exposes the aggregate or the delivery code hash.
package queries

import (
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money carries an amount both in minor units and as a decimal, in one currency.
type Money struct {
	Cents    int64
	Amount   decimal.Decimal
	Currency currency.Unit
}

func newMoney(cents kernel.Cents, unit currency.Unit) Money {
	return Money{Cents: cents.Int64(), Amount: cents.Amount(), Currency: unit}
}

type RestockOrderItemView struct {
	ProductID kernel.ID
	Quantity  int
	UnitPrice Money
	Subtotal  Money
}

type DeliveryView struct {
	RequestedDate *time.Time
	Notes         string
}

type StatusChangeView struct {
	From   string
	To     string
	Reason string
	At     time.Time
}

// RestockOrderView is the full read model of an order.
type RestockOrderView struct {
	ID                 kernel.ID
	StoreID            kernel.ID
	SupplierID         kernel.ID
	SupplierRouteID    kernel.ID
	RequestedDayOfWeek *int
	Items              []RestockOrderItemView
	Delivery           *DeliveryView
	Notes              string
	Status             string
	Total              Money
	History            []StatusChangeView
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeliveredAt        *time.Time
	Version            int
}

// NewRestockOrderView projects an aggregate into its read model.
func NewRestockOrderView(o *restockorder.RestockOrder, unit currency.Unit) RestockOrderView {
	view := RestockOrderView{
		ID:              o.ID(),
		StoreID:         o.StoreID(),
		SupplierID:      o.SupplierID(),
		SupplierRouteID: o.SupplierRouteID(),
		Items: lo.Map(o.Items(), func(item restockorder.Item, _ int) RestockOrderItemView {
			return RestockOrderItemView{
				ProductID: item.ProductID(),
				Quantity:  item.Quantity(),
				UnitPrice: newMoney(item.UnitPriceCents(), unit),
				Subtotal:  newMoney(item.SubtotalCents(), unit),
			}
		}),
		Notes:  o.Notes(),
		Status: o.Status().String(),
		Total:  newMoney(o.TotalCents(), unit),
		History: lo.Map(o.History(), func(change restockorder.StatusChange, _ int) StatusChangeView {
			return StatusChangeView{From: change.From.String(), To: change.To.String(), Reason: change.Reason, At: change.At}
		}),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		DeliveredAt: o.DeliveredAt(),
		Version:     o.Version(),
	}
	if day := o.RequestedDayOfWeek(); day != nil {
		view.RequestedDayOfWeek = lo.ToPtr(day.Int())
	}
	if d := o.Delivery(); !d.IsEmpty() {
		view.Delivery = &DeliveryView{RequestedDate: d.RequestedDate(), Notes: d.Notes()}
	}
	return view
}

package commands

import (
	"errors"

	"restock/internal/core/application/validation"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/guard"

	"github.com/samber/lo"
)

var ErrCreateRestockOrderCommandIsNotConstructed = errors.New(
	"CreateRestockOrderCommand must be created via NewCreateRestockOrderCommand constructor",
)

// CreateRestockOrderCommand represents a store's request to restock from a supplier.
//
// Example:
//
//	payload, err := validator.ValidateCreate(body)
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewCreateRestockOrderCommand(kernel.NewID(), payload)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateRestockOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.ID
	storeID            kernel.ID
	supplierID         kernel.ID
	supplierRouteID    kernel.ID
	requestedDayOfWeek *restockorder.Weekday
	items              []restockorder.Item
	delivery           restockorder.Delivery
	notes              string

	guard guard.ConstructorGuard
}

// NewCreateRestockOrderCommand builds the command from a validated payload. Domain
// rules are checked again here, so every violation is reported with its field.
func NewCreateRestockOrderCommand(
	orderID kernel.ID,
	payload validation.CreateRestockOrder,
) (CreateRestockOrderCommand, error) {
	cmd := CreateRestockOrderCommand{
		storeID:         payload.StoreID,
		supplierID:      payload.SupplierID,
		supplierRouteID: payload.SupplierRouteID,
		notes:           payload.Notes,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequestedDayOfWeek(payload.RequestedDayOfWeek),
		cmd.setItems(payload.Items),
		cmd.setDelivery(payload.Delivery),
	); err != nil {
		return CreateRestockOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRestockOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRestockOrderCommandIsNotConstructed)
}

func (c CreateRestockOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

// NewParams returns the aggregate inputs, without the delivery code hash and creation time.
func (c CreateRestockOrderCommand) NewParams() restockorder.NewParams {
	return restockorder.NewParams{
		ID:                 c.orderID,
		StoreID:            c.storeID,
		SupplierID:         c.supplierID,
		SupplierRouteID:    c.supplierRouteID,
		RequestedDayOfWeek: c.requestedDayOfWeek,
		Items:              c.items,
		Delivery:           c.delivery,
		Notes:              c.notes,
	}
}

func (c *CreateRestockOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateRestockOrderCommand) setRequestedDayOfWeek(day *int) error {
	if day == nil {
		return nil
	}
	weekday, err := restockorder.NewWeekday(*day)
	if err != nil {
		return err
	}
	c.requestedDayOfWeek = &weekday
	return nil
}

func (c *CreateRestockOrderCommand) setItems(items []validation.CreateItem) error {
	specs := lo.Map(items, func(item validation.CreateItem, _ int) restockorder.ItemSpec {
		return restockorder.ItemSpec{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	})
	built, err := restockorder.NewItems(specs)
	if err != nil {
		return err
	}
	c.items = built
	return nil
}

func (c *CreateRestockOrderCommand) setDelivery(delivery *validation.DeliveryRequested) error {
	if delivery == nil {
		return nil
	}
	d, err := restockorder.NewDelivery(delivery.RequestedDeliveryDate, delivery.Notes)
	if err != nil {
		return err
	}
	c.delivery = d
	return nil
}

package commands

import (
	"errors"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/guard"
)

var ErrConfirmRestockOrderDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmRestockOrderDeliveryCommand must be created via NewConfirmRestockOrderDeliveryCommand constructor",
)

// ConfirmRestockOrderDeliveryCommand marks an order delivered once the receiving
// store's code is presented.
type ConfirmRestockOrderDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	code    restockorder.DeliveryCode

	guard guard.ConstructorGuard
}

func NewConfirmRestockOrderDeliveryCommand(
	orderID kernel.ID,
	code restockorder.DeliveryCode,
) (ConfirmRestockOrderDeliveryCommand, error) {
	cmd := ConfirmRestockOrderDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
	); err != nil {
		return ConfirmRestockOrderDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmRestockOrderDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRestockOrderDeliveryCommandIsNotConstructed)
}

func (c ConfirmRestockOrderDeliveryCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c ConfirmRestockOrderDeliveryCommand) Code() restockorder.DeliveryCode {
	return c.code
}

func (c *ConfirmRestockOrderDeliveryCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmRestockOrderDeliveryCommand) setCode(code restockorder.DeliveryCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	c.code = code
	return nil
}

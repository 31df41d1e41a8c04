package commands

import (
	"errors"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/guard"
)

var ErrChangeRestockOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeRestockOrderStatusCommand must be created via NewChangeRestockOrderStatusCommand constructor",
)

// ChangeRestockOrderStatusCommand moves an order to another status.
// Whether the move is legal is decided by the configured TransitionPolicy.
type ChangeRestockOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	status  restockorder.Status
	reason  string

	guard guard.ConstructorGuard
}

func NewChangeRestockOrderStatusCommand(
	orderID kernel.ID,
	status restockorder.Status,
	reason string,
) (ChangeRestockOrderStatusCommand, error) {
	cmd := ChangeRestockOrderStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeRestockOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeRestockOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeRestockOrderStatusCommandIsNotConstructed)
}

func (c ChangeRestockOrderStatusCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c ChangeRestockOrderStatusCommand) Status() restockorder.Status {
	return c.status
}

func (c ChangeRestockOrderStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeRestockOrderStatusCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeRestockOrderStatusCommand) setStatus(status restockorder.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

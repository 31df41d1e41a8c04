package commands

import (
	"context"
	"time"

	"restock/internal/core/domain/model/restockorder"
)

// ChangeRestockOrderStatusCommandHandler applies a status change under a TransitionPolicy.
//
// Example:
//
//	handler := NewChangeRestockOrderStatusCommandHandler(uowFactory, restockorder.StrictPolicy)
//	cmd, _ := NewChangeRestockOrderStatusCommand(orderID, restockorder.Accepted, "")
//	if err := handler.Handle(ctx, cmd); errors.Is(err, restockorder.ErrTransitionNotAllowed) {
//	    // report a conflict
//	}
type ChangeRestockOrderStatusCommandHandler struct {
	uowFactory RestockOrderUoWFactory
	policy     restockorder.TransitionPolicy
}

func NewChangeRestockOrderStatusCommandHandler(
	uowFactory RestockOrderUoWFactory,
	policy restockorder.TransitionPolicy,
) ChangeRestockOrderStatusCommandHandler {
	return ChangeRestockOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle loads the order, changes its status and saves it. A concurrent change of the
// same order makes Update fail with errs.VersionIsInvalidError.
func (h *ChangeRestockOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeRestockOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RestockOrderRepository()
	order, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = order.ChangeStatus(cmd.Status(), cmd.Reason(), h.policy, time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"time"

	"restock/internal/core/domain/model/restockorder"
)

// ConfirmRestockOrderDeliveryCommandHandler verifies the delivery code and marks the
// order ENTREGADA. A wrong code returns restockorder.ErrDeliveryCodeMismatch and
// nothing is written.
type ConfirmRestockOrderDeliveryCommandHandler struct {
	uowFactory RestockOrderUoWFactory
	matcher    restockorder.CodeMatcher
	policy     restockorder.TransitionPolicy
}

func NewConfirmRestockOrderDeliveryCommandHandler(
	uowFactory RestockOrderUoWFactory,
	matcher restockorder.CodeMatcher,
	policy restockorder.TransitionPolicy,
) ConfirmRestockOrderDeliveryCommandHandler {
	return ConfirmRestockOrderDeliveryCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		policy:     policy,
	}
}

func (h *ConfirmRestockOrderDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmRestockOrderDeliveryCommand,
) error {
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

	if err = order.ConfirmDelivery(cmd.Code(), h.matcher, h.policy, time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"time"

	"restock/internal/core/domain/model/restockorder"
)

// CancelStaleRestockOrdersCommandHandler expires unanswered orders. It is run
// periodically by the stale order job.
//
// Example:
//
//	handler := NewCancelStaleRestockOrdersCommandHandler(uowFactory, restockorder.StrictPolicy)
//	cmd, _ := NewCancelStaleRestockOrdersCommand(72*time.Hour, 50)
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelStaleRestockOrdersCommandHandler struct {
	uowFactory RestockOrderUoWFactory
	policy     restockorder.TransitionPolicy
}

func NewCancelStaleRestockOrdersCommandHandler(
	uowFactory RestockOrderUoWFactory,
	policy restockorder.TransitionPolicy,
) CancelStaleRestockOrdersCommandHandler {
	return CancelStaleRestockOrdersCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle cancels one batch of stale orders in a single transaction and returns how
// many were cancelled.
func (h *CancelStaleRestockOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStaleRestockOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.OlderThan())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RestockOrderRepository()
	orders, _, err := repo.List(ctx, restockorder.Filter{
		Statuses:      []restockorder.Status{restockorder.Created, restockorder.Sent},
		UpdatedBefore: &cutoff,
		Limit:         cmd.Limit(),
	})
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	for _, order := range orders {
		if err = order.Expire(h.policy, now); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, order); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(orders), nil
}

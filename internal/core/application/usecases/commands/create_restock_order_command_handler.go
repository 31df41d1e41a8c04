package commands

import (
	"context"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/domain/services"
	"restock/internal/core/ports"
)

// CreateRestockOrderResult is returned once to the store that created the order.
// DeliveryCode is the only time the plain code leaves the service.
type CreateRestockOrderResult struct {
	OrderID      kernel.ID
	DeliveryCode restockorder.DeliveryCode
}

// CreateRestockOrderCommandHandler creates orders in CREADA with a fresh delivery code.
//
// Example:
//
//	handler := NewCreateRestockOrderCommandHandler(uowFactory, hasher, services.NewDeliveryDatePlanner())
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("restock order creation failed: %w", err)
//	}
//	// hand result.DeliveryCode to the store
type CreateRestockOrderCommandHandler struct {
	uowFactory RestockOrderUoWFactory
	hasher     ports.DeliveryCodeHasher
	planner    services.DeliveryDatePlanner
}

func NewCreateRestockOrderCommandHandler(
	uowFactory RestockOrderUoWFactory,
	hasher ports.DeliveryCodeHasher,
	planner services.DeliveryDatePlanner,
) CreateRestockOrderCommandHandler {
	return CreateRestockOrderCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		planner:    planner,
	}
}

// Handle generates and hashes the delivery code, schedules the delivery when only a
// weekday was requested, and persists the order in a single transaction.
func (h *CreateRestockOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRestockOrderCommand,
) (CreateRestockOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateRestockOrderResult{}, err
	}

	code, err := restockorder.GenerateDeliveryCode()
	if err != nil {
		return CreateRestockOrderResult{}, err
	}
	hash, err := h.hasher.Hash(code)
	if err != nil {
		return CreateRestockOrderResult{}, err
	}

	params := cmd.NewParams()
	params.DeliveryCodeHash = hash
	params.CreatedAt = time.Now().UTC()

	order, err := restockorder.NewRestockOrder(params)
	if err != nil {
		return CreateRestockOrderResult{}, err
	}
	if err = h.planner.Plan(order); err != nil {
		return CreateRestockOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateRestockOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RestockOrderRepository().Add(ctx, order); err != nil {
		return CreateRestockOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateRestockOrderResult{}, err
	}

	return CreateRestockOrderResult{OrderID: order.ID(), DeliveryCode: code}, nil
}

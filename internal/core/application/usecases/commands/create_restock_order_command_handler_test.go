package commands_test

import (
	"errors"
	"testing"
	"time"

	"restock/internal/core/application/usecases/commands"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T) commands.CreateRestockOrderCommand {
	t.Helper()
	payload := validPayload()
	day := 5
	payload.RequestedDayOfWeek = &day
	cmd, err := commands.NewCreateRestockOrderCommand(kernel.NewID(), payload)
	require.NoError(t, err)
	return cmd
}

func TestCreateRestockOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	hasher := new(MockDeliveryCodeHasher)
	hasher.On("Hash", mock.AnythingOfType("restockorder.DeliveryCode")).Return("bcrypt-hash", nil).Once()

	var added *restockorder.RestockOrder
	repo := new(MockRestockOrderRepository)
	uow := new(MockRestockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestockOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*restockorder.RestockOrder")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*restockorder.RestockOrder) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRestockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRestockOrderCommandHandler(factory, hasher, services.NewDeliveryDatePlanner())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.OrderID.IsEqual(cmd.OrderID()))
	assert.Len(t, result.DeliveryCode.String(), restockorder.GeneratedDeliveryCodeLength)

	require.NotNil(t, added)
	assert.Equal(t, restockorder.Created, added.Status())
	assert.Equal(t, "bcrypt-hash", added.DeliveryCodeHash())
	assert.WithinDuration(t, time.Now(), added.CreatedAt(), 5*time.Second)
	require.NotNil(t, added.Delivery().RequestedDate(), "weekday should be turned into a date")
	assert.Equal(t, time.Friday, added.Delivery().RequestedDate().Weekday())

	hasher.AssertCalled(t, "Hash", result.DeliveryCode)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRestockOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockRestockOrderUoWFactory)
	h := commands.NewCreateRestockOrderCommandHandler(factory, new(MockDeliveryCodeHasher), services.NewDeliveryDatePlanner())

	_, err := h.Handle(t.Context(), commands.CreateRestockOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateRestockOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateRestockOrderCommandHandler_Handle_HashError(t *testing.T) {
	hasher := new(MockDeliveryCodeHasher)
	hasher.On("Hash", mock.Anything).Return("", errors.New("hash error")).Once()
	factory := new(MockRestockOrderUoWFactory)

	h := commands.NewCreateRestockOrderCommandHandler(factory, hasher, services.NewDeliveryDatePlanner())
	_, err := h.Handle(t.Context(), newCreateCommand(t))

	require.EqualError(t, err, "hash error")
	factory.AssertNotCalled(t, "Create")
}

func TestCreateRestockOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	hasher := new(MockDeliveryCodeHasher)
	hasher.On("Hash", mock.Anything).Return("hash", nil).Once()

	uow := new(MockRestockOrderUoW)
	factory := new(MockRestockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateRestockOrderCommandHandler(factory, hasher, services.NewDeliveryDatePlanner())
	_, err := h.Handle(ctx, newCreateCommand(t))

	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestCreateRestockOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	hasher := new(MockDeliveryCodeHasher)
	hasher.On("Hash", mock.Anything).Return("hash", nil).Once()

	repo := new(MockRestockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once()
	factory, uow := expectTx(ctx, repo)

	h := commands.NewCreateRestockOrderCommandHandler(factory, hasher, services.NewDeliveryDatePlanner())
	_, err := h.Handle(ctx, newCreateCommand(t))

	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateRestockOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	hasher := new(MockDeliveryCodeHasher)
	hasher.On("Hash", mock.Anything).Return("hash", nil).Once()

	repo := new(MockRestockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	factory, uow := expectTx(ctx, repo)
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	h := commands.NewCreateRestockOrderCommandHandler(factory, hasher, services.NewDeliveryDatePlanner())
	result, err := h.Handle(ctx, newCreateCommand(t))

	require.EqualError(t, err, "commit error")
	assert.Empty(t, result.DeliveryCode.String())
	uow.AssertExpectations(t)
}

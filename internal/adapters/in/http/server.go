package http

import (
	"io"
	"net/http"

	"restock/internal/core/application/usecases/commands"
	"restock/internal/core/application/usecases/queries"
	"restock/internal/core/application/validation"
	"restock/internal/core/domain/model/kernel"
	"restock/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	validator *validation.RestockOrderValidator

	// Command handlers
	createHandler          commands.CreateRestockOrderCommandHandler
	changeStatusHandler    commands.ChangeRestockOrderStatusCommandHandler
	confirmDeliveryHandler commands.ConfirmRestockOrderDeliveryCommandHandler

	// Query handlers
	getHandler      queries.GetRestockOrderQueryHandler
	listHandler     queries.ListRestockOrdersQueryHandler
	statusesHandler queries.ListRestockOrderStatusesQueryHandler
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	Create          commands.CreateRestockOrderCommandHandler
	ChangeStatus    commands.ChangeRestockOrderStatusCommandHandler
	ConfirmDelivery commands.ConfirmRestockOrderDeliveryCommandHandler
	Get             queries.GetRestockOrderQueryHandler
	List            queries.ListRestockOrdersQueryHandler
	Statuses        queries.ListRestockOrderStatusesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(validator *validation.RestockOrderValidator, h Handlers) *Server {
	return &Server{
		validator:              validator,
		createHandler:          h.Create,
		changeStatusHandler:    h.ChangeStatus,
		confirmDeliveryHandler: h.ConfirmDelivery,
		getHandler:             h.Get,
		listHandler:            h.List,
		statusesHandler:        h.Statuses,
	}
}

// CreateRestockOrder handles POST /api/v1/restock-orders.
func (s *Server) CreateRestockOrder(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return writeError(ctx, err)
	}

	payload, err := s.validator.ValidateCreate(body)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateRestockOrderCommand(kernel.NewID(), payload)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.view(ctx, result.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedRestockOrder{
		Order:        toRestockOrder(view),
		DeliveryCode: result.DeliveryCode.String(),
	})
}

// ListRestockOrders handles GET /api/v1/restock-orders.
func (s *Server) ListRestockOrders(ctx echo.Context, params servers.ListRestockOrdersParams) error {
	filter, err := toFilter(ctx, params)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListRestockOrdersQuery(filter)
	if err != nil {
		return writeError(ctx, err)
	}

	page, err := s.listHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRestockOrderPage(page))
}

// GetRestockOrder handles GET /api/v1/restock-orders/{orderId}.
func (s *Server) GetRestockOrder(ctx echo.Context, orderId string) error {
	if err := ctx.Validate(&orderParams{OrderID: orderId}); err != nil {
		return writeError(ctx, err)
	}
	id, err := kernel.IDFromHex(orderId)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.view(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRestockOrder(view))
}

// UpdateRestockOrderStatus handles PATCH /api/v1/restock-orders/{orderId}/status.
func (s *Server) UpdateRestockOrderStatus(ctx echo.Context, orderId string) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return writeError(ctx, err)
	}

	payload, err := s.validator.ValidateStatusUpdate(orderId, body)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeRestockOrderStatusCommand(payload.OrderID, payload.Status, payload.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	view, err := s.view(ctx, payload.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRestockOrder(view))
}

// ConfirmRestockOrderDelivery handles POST /api/v1/restock-orders/{orderId}/delivery-confirmation.
func (s *Server) ConfirmRestockOrderDelivery(ctx echo.Context, orderId string) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return writeError(ctx, err)
	}

	payload, err := s.validator.ValidateDeliveryConfirmation(orderId, body)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmRestockOrderDeliveryCommand(payload.OrderID, payload.DeliveryCode)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	view, err := s.view(ctx, payload.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRestockOrder(view))
}

// ListRestockOrderStatuses handles GET /api/v1/restock-order-statuses.
func (s *Server) ListRestockOrderStatuses(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toStatusDescriptors(s.statusesHandler.Handle()))
}

func (s *Server) view(ctx echo.Context, id kernel.ID) (queries.RestockOrderView, error) {
	query, err := queries.NewGetRestockOrderQuery(id)
	if err != nil {
		return queries.RestockOrderView{}, err
	}
	return s.getHandler.Handle(ctx.Request().Context(), query)
}

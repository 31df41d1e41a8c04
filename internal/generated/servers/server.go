package servers

import (
	"fmt"
	"net/http"
	"sync"

	"restock/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List restock orders, newest first
	// (GET /restock-orders)
	ListRestockOrders(ctx echo.Context, params ListRestockOrdersParams) error
	// Create a restock order
	// (POST /restock-orders)
	CreateRestockOrder(ctx echo.Context) error
	// Get a restock order
	// (GET /restock-orders/{orderId})
	GetRestockOrder(ctx echo.Context, orderId string) error
	// Move an order to another status
	// (PATCH /restock-orders/{orderId}/status)
	UpdateRestockOrderStatus(ctx echo.Context, orderId string) error
	// Confirm delivery with the order's delivery code
	// (POST /restock-orders/{orderId}/delivery-confirmation)
	ConfirmRestockOrderDelivery(ctx echo.Context, orderId string) error
	// Describe every status and its allowed targets under the active policy
	// (GET /restock-order-statuses)
	ListRestockOrderStatuses(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListRestockOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListRestockOrders(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListRestockOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "storeId", ctx.QueryParams(), &params.StoreId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter storeId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "supplierId", ctx.QueryParams(), &params.SupplierId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter supplierId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter offset: %s", err))
	}

	return w.Handler.ListRestockOrders(ctx, params)
}

// CreateRestockOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateRestockOrder(ctx echo.Context) error {
	return w.Handler.CreateRestockOrder(ctx)
}

// GetRestockOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetRestockOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRestockOrder(ctx, orderId)
}

// UpdateRestockOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateRestockOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateRestockOrderStatus(ctx, orderId)
}

// ConfirmRestockOrderDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmRestockOrderDelivery(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmRestockOrderDelivery(ctx, orderId)
}

// ListRestockOrderStatuses converts echo context to params.
func (w *ServerInterfaceWrapper) ListRestockOrderStatuses(ctx echo.Context) error {
	return w.Handler.ListRestockOrderStatuses(ctx)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var orderId string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/restock-order-statuses", wrapper.ListRestockOrderStatuses)
	router.GET(baseURL+"/restock-orders", wrapper.ListRestockOrders)
	router.POST(baseURL+"/restock-orders", wrapper.CreateRestockOrder)
	router.GET(baseURL+"/restock-orders/:orderId", wrapper.GetRestockOrder)
	router.POST(baseURL+"/restock-orders/:orderId/delivery-confirmation", wrapper.ConfirmRestockOrderDelivery)
	router.PATCH(baseURL+"/restock-orders/:orderId/status", wrapper.UpdateRestockOrderStatus)
}

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed OpenAPI document. The result is shared; do not modify it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		swagger, swaggerErr = loader.LoadFromData(api.Spec)
		if swaggerErr != nil {
			swaggerErr = fmt.Errorf("error loading Swagger: %w", swaggerErr)
		}
	})
	return swagger, swaggerErr
}

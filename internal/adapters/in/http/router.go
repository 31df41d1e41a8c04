package http

import (
	"context"
	"log/slog"
	"net/http"

	_ "restock/docs"
	"restock/internal/core/application/validation"
	"restock/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BaseURL = "/api/v1"

// MaxBodySize caps request bodies. Larger bodies get 413.
const MaxBodySize = "64K"

// RouterConfig lists what the router serves besides the API.
// Nil handlers leave their route unregistered.
type RouterConfig struct {
	Realtime http.Handler
	Metrics  http.Handler
	Logger   *slog.Logger
}

// NewRouter builds the echo instance serving the API under BaseURL,
// plus /health, /swagger/*, /ws and /metrics.
func NewRouter(server *Server, validator *validation.RestockOrderValidator, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(MaxBodySize))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.Realtime != nil {
		e.GET("/ws", echo.WrapHandler(cfg.Realtime))
	}
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	servers.RegisterHandlersWithBaseURL(e, server, BaseURL)

	return e
}

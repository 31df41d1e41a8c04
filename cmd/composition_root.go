package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "restock/internal/adapters/in/http"
	"restock/internal/adapters/out/hashing"
	"restock/internal/adapters/out/metrics"
	"restock/internal/adapters/out/mongodb"
	"restock/internal/adapters/out/postgres"
	"restock/internal/adapters/out/postgres/restockorderrepo"
	"restock/internal/adapters/out/publisher"
	"restock/internal/adapters/out/realtime"
	"restock/internal/core/application/usecases/commands"
	"restock/internal/core/application/usecases/queries"
	"restock/internal/core/application/validation"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/domain/services"
	"restock/internal/core/ports"
	"restock/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/text/currency"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Storage is a unit of work factory with a transaction-free reader for queries.
type Storage interface {
	ports.UnitOfWorkFactory
	Reader() ports.RestockOrderReader
}

type CompositionRoot struct {
	logger  *slog.Logger
	cfg     Config
	policy  restockorder.TransitionPolicy
	unit    currency.Unit
	storage Storage

	hasher    *hashing.BcryptHasher
	hub       *realtime.Hub
	collector *metrics.Collector
	validator *validation.RestockOrderValidator
}

// NewCompositionRoot builds the adapters that do not depend on storage.
// Call OpenStorage and UseStorage before creating handlers.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return nil, err
	}
	hasher, err := hashing.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		logger:    logger,
		cfg:       cfg,
		policy:    policy,
		unit:      unit,
		hasher:    hasher,
		hub:       realtime.NewHub(logger),
		validator: validation.NewRestockOrderValidator(),
	}
	if cfg.MetricsEnabled {
		root.collector = metrics.NewCollector()
	}
	return root, nil
}

// Publisher fans committed events out to every subscriber the root owns.
func (c *CompositionRoot) Publisher() ports.EventPublisher {
	if c.collector == nil {
		return publisher.NewFanOut(c.hub)
	}
	return publisher.NewFanOut(c.hub, c.collector)
}

// UseStorage sets the storage every handler is built on.
func (c *CompositionRoot) UseStorage(storage Storage) {
	c.storage = storage
}

// OpenStorage connects to the configured database and prepares its schema.
// The returned function releases the connection.
func (c *CompositionRoot) OpenStorage(ctx context.Context) (Storage, func(context.Context) error, error) {
	switch c.cfg.DBDriver {
	case DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		db := client.Database(c.cfg.MongoDB)
		if err = mongodb.EnsureIndexes(ctx, db); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("creating indexes: %w", err), client.Disconnect(ctx))
		}
		return mongodb.NewMongoUnitOfWorkFactory(db, c.Publisher(), c.logger), client.Disconnect, nil

	default:
		db, err := gorm.Open(gorm_postgres.Open(c.cfg.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err = restockorderrepo.AutoMigrate(db); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("migrating schema: %w", err), sqlDB.Close())
		}
		closeDB := func(context.Context) error { return sqlDB.Close() }
		return postgres.NewGormUnitOfWorkFactory(db, c.Publisher(), c.logger), closeDB, nil
	}
}

func (c *CompositionRoot) uowFactory() commands.RestockOrderUoWFactory {
	return FuncRestockOrderUoWFactory(func() commands.RestockOrderUoW {
		return c.storage.Create()
	})
}

func (c *CompositionRoot) CreateCreateRestockOrderCommandHandler() commands.CreateRestockOrderCommandHandler {
	return commands.NewCreateRestockOrderCommandHandler(c.uowFactory(), c.hasher, services.NewDeliveryDatePlanner())
}

func (c *CompositionRoot) CreateChangeRestockOrderStatusCommandHandler() commands.ChangeRestockOrderStatusCommandHandler {
	return commands.NewChangeRestockOrderStatusCommandHandler(c.uowFactory(), c.policy)
}

func (c *CompositionRoot) CreateConfirmRestockOrderDeliveryCommandHandler() commands.ConfirmRestockOrderDeliveryCommandHandler {
	return commands.NewConfirmRestockOrderDeliveryCommandHandler(c.uowFactory(), c.hasher, c.policy)
}

func (c *CompositionRoot) CreateCancelStaleRestockOrdersCommandHandler() commands.CancelStaleRestockOrdersCommandHandler {
	return commands.NewCancelStaleRestockOrdersCommandHandler(c.uowFactory(), c.policy)
}

func (c *CompositionRoot) CreateGetRestockOrderQueryHandler() queries.GetRestockOrderQueryHandler {
	return queries.NewGetRestockOrderQueryHandler(c.storage.Reader(), c.unit)
}

func (c *CompositionRoot) CreateListRestockOrdersQueryHandler() queries.ListRestockOrdersQueryHandler {
	return queries.NewListRestockOrdersQueryHandler(c.storage.Reader(), c.unit)
}

func (c *CompositionRoot) CreateListRestockOrderStatusesQueryHandler() queries.ListRestockOrderStatusesQueryHandler {
	return queries.NewListRestockOrderStatusesQueryHandler(c.policy)
}

// CreateRouter builds the HTTP router with every route the service exposes.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpadapter.NewServer(c.validator, httpadapter.Handlers{
		Create:          c.CreateCreateRestockOrderCommandHandler(),
		ChangeStatus:    c.CreateChangeRestockOrderStatusCommandHandler(),
		ConfirmDelivery: c.CreateConfirmRestockOrderDeliveryCommandHandler(),
		Get:             c.CreateGetRestockOrderQueryHandler(),
		List:            c.CreateListRestockOrdersQueryHandler(),
		Statuses:        c.CreateListRestockOrderStatusesQueryHandler(),
	})

	cfg := httpadapter.RouterConfig{Realtime: c.hub, Logger: c.logger}
	if c.collector != nil {
		cfg.Metrics = c.collector.Handler()
	}
	return httpadapter.NewRouter(server, c.validator, cfg)
}

// CreateJobManager schedules the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateCancelStaleRestockOrdersCommandHandler()
	return jobs.NewJobManager(
		jobs.NewStaleOrderCancellationJob(&handler,
			c.cfg.StaleOrderSchedule, c.cfg.StaleOrderTTL, c.cfg.StaleOrderBatch, c.logger),
	)
}

// Close disconnects websocket subscribers.
func (c *CompositionRoot) Close() {
	c.hub.Close()
}

type FuncRestockOrderUoWFactory func() commands.RestockOrderUoW

func (f FuncRestockOrderUoWFactory) Create() commands.RestockOrderUoW {
	return f()
}

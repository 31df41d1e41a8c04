// Package postgres provides the GORM-based Unit of Work over restock orders.
// The unit of work holds one database transaction, hands out repositories bound to it
// and remembers every aggregate they wrote. Once the transaction commits, the domain
// events recorded by those aggregates are handed to the event publisher.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.RestockOrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is meant for a single goroutine and a single business operation.
package postgres

import (
	"context"
	"log/slog"

	"restock/internal/adapters/out/postgres/restockorderrepo"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory whose units of work publish committed
// events through publisher.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher, logger: logger.With("component", "postgres_uow")}
}

// Create produces a new UnitOfWork with its own transaction state and tracked aggregates.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// Reader returns a repository outside of any transaction, for queries.
func (f *GormUnitOfWorkFactory) Reader() ports.RestockOrderReader {
	return restockorderrepo.NewGormRestockOrderRepository(f.db, nil)
}

// GormUnitOfWork coordinates one database transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger

	tracked []*restockorder.RestockOrder
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit makes the transaction durable, then publishes the events of tracked aggregates.
// A publishing failure is logged and does not fail the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = nil
		return err
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction. Without an open transaction it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.tracked = nil
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// RestockOrderRepository returns a repository bound to the open transaction, or to the
// connection pool when no transaction was started.
func (uow *GormUnitOfWork) RestockOrderRepository() ports.RestockOrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return restockorderrepo.NewGormRestockOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *restockorder.RestockOrder) {
	for _, tracked := range uow.tracked {
		if tracked == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	var events []restockorder.Event
	for _, aggregate := range uow.tracked {
		events = append(events, aggregate.PullEvents()...)
	}
	uow.tracked = nil

	if len(events) == 0 || uow.publisher == nil {
		return
	}
	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish domain events", "error", err, "count", len(events))
	}
}

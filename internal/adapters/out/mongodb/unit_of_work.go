// Package mongodb stores restock orders as documents in MongoDB.
//
// MongoDB transactions need a replica set, so the unit of work here stages writes in
// memory between Begin and Commit and applies them in order on Commit. Each write is
// atomic on its document and guarded by the order version; a batch that fails part way
// keeps the writes applied before the failure.
package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/ports"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoActiveTransaction is returned by Commit without a prior Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// MongoUnitOfWorkFactory creates units of work over one database.
type MongoUnitOfWorkFactory struct {
	db        *mongo.Database
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewMongoUnitOfWorkFactory(db *mongo.Database, publisher ports.EventPublisher, logger *slog.Logger) *MongoUnitOfWorkFactory {
	return &MongoUnitOfWorkFactory{db: db, publisher: publisher, logger: logger.With("component", "mongodb_uow")}
}

func (f *MongoUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &MongoUnitOfWork{
		coll:      f.db.Collection(CollectionName),
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// Reader returns a repository for queries.
func (f *MongoUnitOfWorkFactory) Reader() ports.RestockOrderReader {
	return NewMongoRestockOrderReader(f.db)
}

// MongoUnitOfWork stages writes until Commit. It is not safe for concurrent use.
type MongoUnitOfWork struct {
	coll      *mongo.Collection
	publisher ports.EventPublisher
	logger    *slog.Logger

	active  bool
	pending []pendingWrite
	tracked []*restockorder.RestockOrder
}

func (uow *MongoUnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit applies the staged writes in order, then publishes the events of the written
// aggregates. The first failing write stops the batch and is returned.
func (uow *MongoUnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	pending := uow.pending
	uow.active = false
	uow.pending = nil

	for _, w := range pending {
		if err := apply(ctx, uow.coll, w); err != nil {
			uow.tracked = nil
			return err
		}
		uow.track(w.aggregate)
	}

	uow.publish(ctx)
	return nil
}

// Rollback drops staged writes. It is a no-op when nothing is open.
func (uow *MongoUnitOfWork) Rollback(_ context.Context) error {
	uow.active = false
	uow.pending = nil
	uow.tracked = nil
	return nil
}

func (uow *MongoUnitOfWork) RestockOrderRepository() ports.RestockOrderRepository {
	return &MongoRestockOrderRepository{coll: uow.coll, uow: uow}
}

func (uow *MongoUnitOfWork) stage(w pendingWrite) {
	uow.pending = append(uow.pending, w)
}

func (uow *MongoUnitOfWork) staged(id kernel.ID) (restockOrderDocument, bool) {
	return latest(uow.pending, id)
}

func (uow *MongoUnitOfWork) track(aggregate *restockorder.RestockOrder) {
	for _, tracked := range uow.tracked {
		if tracked == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *MongoUnitOfWork) publish(ctx context.Context) {
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

package mongodb

import (
	"context"
	"errors"
	"fmt"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding restock orders.
const CollectionName = "restock_orders"

// EnsureIndexes creates the indexes used by listing and stale order lookups.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "supplierId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}}},
	})
	return err
}

// MongoRestockOrderRepository implements ports.RestockOrderRepository on a MongoDB collection.
// Writes made through a unit of work with an open transaction are staged and applied on Commit.
type MongoRestockOrderRepository struct {
	coll *mongo.Collection
	uow  *MongoUnitOfWork
}

// NewMongoRestockOrderReader returns a repository that reads and writes immediately.
func NewMongoRestockOrderReader(db *mongo.Database) *MongoRestockOrderRepository {
	return &MongoRestockOrderRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRestockOrderRepository) Add(ctx context.Context, aggregate *restockorder.RestockOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.write(ctx, pendingWrite{insert: true, doc: fromDomain(aggregate), aggregate: aggregate})
}

func (r *MongoRestockOrderRepository) Update(ctx context.Context, aggregate *restockorder.RestockOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.write(ctx, pendingWrite{doc: fromDomain(aggregate), aggregate: aggregate})
}

func (r *MongoRestockOrderRepository) Get(ctx context.Context, id kernel.ID) (*restockorder.RestockOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if r.uow != nil {
		if doc, ok := r.uow.staged(id); ok {
			return toDomain(doc)
		}
	}

	var doc restockOrderDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return nil, err
	}
	return toDomain(doc)
}

func (r *MongoRestockOrderRepository) List(
	ctx context.Context,
	filter restockorder.Filter,
) ([]*restockorder.RestockOrder, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	query := toQuery(filter)
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []restockOrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	orders := make([]*restockorder.RestockOrder, 0, len(docs))
	for _, doc := range docs {
		o, err := toDomain(doc)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func toQuery(filter restockorder.Filter) bson.M {
	query := bson.M{}
	if filter.StoreID != nil {
		query["storeId"] = filter.StoreID.ObjectID()
	}
	if filter.SupplierID != nil {
		query["supplierId"] = filter.SupplierID.ObjectID()
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.StatusLiterals()}
	}
	if filter.UpdatedBefore != nil {
		query["updatedAt"] = bson.M{"$lt": *filter.UpdatedBefore}
	}
	return query
}

func (r *MongoRestockOrderRepository) write(ctx context.Context, w pendingWrite) error {
	if r.uow != nil && r.uow.active {
		r.uow.stage(w)
		return nil
	}
	if err := apply(ctx, r.coll, w); err != nil {
		return err
	}
	if r.uow != nil {
		r.uow.track(w.aggregate)
	}
	return nil
}

// pendingWrite is an insert or a version-guarded update of one order.
type pendingWrite struct {
	insert    bool
	doc       restockOrderDocument
	aggregate *restockorder.RestockOrder
}

func apply(ctx context.Context, coll *mongo.Collection, w pendingWrite) error {
	if w.insert {
		_, err := coll.InsertOne(ctx, w.doc)
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewValueIsInvalidErrorWithCause("id",
				fmt.Errorf("restock order %s already exists", w.doc.ID.Hex()))
		}
		return err
	}

	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": w.doc.ID, "version": w.doc.Version},
		bson.M{
			"$set": bson.M{
				"status":      w.doc.Status,
				"delivery":    w.doc.Delivery,
				"history":     w.doc.History,
				"updatedAt":   w.doc.UpdatedAt,
				"deliveredAt": w.doc.DeliveredAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	var stored struct {
		Version int `bson:"version"`
	}
	err = coll.FindOne(ctx, bson.M{"_id": w.doc.ID},
		options.FindOne().SetProjection(bson.M{"version": 1})).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NewObjectNotFoundError("orderId", w.doc.ID.Hex())
	}
	if err != nil {
		return err
	}
	return errs.NewVersionIsInvalidErrorWithCause("version",
		fmt.Errorf("order %s was loaded at version %d but is now at version %d",
			w.doc.ID.Hex(), w.doc.Version, stored.Version))
}

// latest returns the last staged document for id.
func latest(writes []pendingWrite, id kernel.ID) (restockOrderDocument, bool) {
	w, _, ok := lo.FindLastIndexOf(writes, func(w pendingWrite) bool { return w.doc.ID == id.ObjectID() })
	return w.doc, ok
}

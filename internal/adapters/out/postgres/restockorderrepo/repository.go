package restockorderrepo

import (
	"context"
	"errors"
	"fmt"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// GormRestockOrderRepository implements ports.RestockOrderRepository using GORM.
type GormRestockOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects the aggregates written in a unit of work.
type aggregateTracker interface {
	TrackAggregate(aggregate *restockorder.RestockOrder)
}

// NewGormRestockOrderRepository creates a repository bound to db. A nil tracker
// makes a read-only view suitable for queries.
func NewGormRestockOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormRestockOrderRepository {
	return &GormRestockOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and history.
func (r *GormRestockOrderRepository) Add(ctx context.Context, aggregate *restockorder.RestockOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec.order).Error; err != nil {
			return err
		}
		if err := tx.Create(&rec.items).Error; err != nil {
			return err
		}
		if len(rec.history) > 0 {
			return tx.Create(&rec.history).Error
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("id",
				fmt.Errorf("restock order %s already exists", rec.order.ID))
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Update writes status, timestamps and history of an existing order, guarded by its version.
func (r *GormRestockOrderRepository) Update(ctx context.Context, aggregate *restockorder.RestockOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RestockOrderDTO{}).
			Where("id = ? AND version = ?", rec.order.ID, rec.order.Version).
			Updates(map[string]any{
				"status":                  rec.order.Status,
				"requested_delivery_date": rec.order.RequestedDeliveryDate,
				"updated_at":              rec.order.UpdatedAt,
				"delivered_at":            rec.order.DeliveredAt,
				"version":                 gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate)
		}

		if len(rec.history) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec.history).Error
	})
	if err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormRestockOrderRepository) Get(ctx context.Context, id kernel.ID) (*restockorder.RestockOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dto RestockOrderDTO
	if err := db.First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	records, err := r.hydrate(db, []RestockOrderDTO{dto})
	if err != nil {
		return nil, err
	}
	return toDomain(records[0])
}

// List returns one page of orders matching filter, newest first, and the total match count.
func (r *GormRestockOrderRepository) List(
	ctx context.Context,
	filter restockorder.Filter,
) ([]*restockorder.RestockOrder, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	db := r.db.WithContext(ctx)
	scope := applyFilter(db.Model(&RestockOrderDTO{}), filter)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dtos []RestockOrderDTO
	if err := applyFilter(db.Model(&RestockOrderDTO{}), filter).
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&dtos).Error; err != nil {
		return nil, 0, err
	}

	records, err := r.hydrate(db, dtos)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*restockorder.RestockOrder, 0, len(records))
	for _, rec := range records {
		o, err := toDomain(rec)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func applyFilter(db *gorm.DB, filter restockorder.Filter) *gorm.DB {
	if filter.StoreID != nil {
		db = db.Where("store_id = ?", filter.StoreID.String())
	}
	if filter.SupplierID != nil {
		db = db.Where("supplier_id = ?", filter.SupplierID.String())
	}
	if len(filter.Statuses) > 0 {
		statuses := lo.Map(filter.Statuses, func(s restockorder.Status, _ int) int64 { return int64(s) })
		db = db.Where("status = ANY(?)", pq.Array(statuses))
	}
	if filter.UpdatedBefore != nil {
		db = db.Where("updated_at < ?", *filter.UpdatedBefore)
	}
	return db
}

// hydrate loads items and history for the given orders, keeping their order.
func (r *GormRestockOrderRepository) hydrate(db *gorm.DB, dtos []RestockOrderDTO) ([]record, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	ids := lo.Map(dtos, func(dto RestockOrderDTO, _ int) string { return dto.ID })

	var items []ItemDTO
	if err := db.Where("order_id IN ?", ids).Order("order_id, position").Find(&items).Error; err != nil {
		return nil, err
	}
	var history []StatusChangeDTO
	if err := db.Where("order_id IN ?", ids).Order("order_id, seq").Find(&history).Error; err != nil {
		return nil, err
	}

	itemsByOrder := lo.GroupBy(items, func(item ItemDTO) string { return item.OrderID })
	historyByOrder := lo.GroupBy(history, func(change StatusChangeDTO) string { return change.OrderID })

	return lo.Map(dtos, func(dto RestockOrderDTO, _ int) record {
		return record{order: dto, items: itemsByOrder[dto.ID], history: historyByOrder[dto.ID]}
	}), nil
}

func (r *GormRestockOrderRepository) missingOrStale(tx *gorm.DB, aggregate *restockorder.RestockOrder) error {
	var stored RestockOrderDTO
	err := tx.Select("version").First(&stored, "id = ?", aggregate.ID().String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}
	if err != nil {
		return err
	}
	return errs.NewVersionIsInvalidErrorWithCause("version",
		fmt.Errorf("order %s was loaded at version %d but is now at version %d",
			aggregate.ID(), aggregate.Version(), stored.Version))
}

func (r *GormRestockOrderRepository) track(aggregate *restockorder.RestockOrder) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate)
	}
}

// Package restockorderrepo persists restock order aggregates in PostgreSQL through GORM.
// An order is stored as one row in restock_orders, one row per item in
// restock_order_items and one row per status change in restock_order_status_changes.
package restockorderrepo

import (
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// RestockOrderDTO represents the restock_orders table.
type RestockOrderDTO struct {
	ID                    string     `gorm:"type:char(24);primaryKey"`
	StoreID               string     `gorm:"type:char(24);not null;index"`
	SupplierID            string     `gorm:"type:char(24);not null;index"`
	SupplierRouteID       string     `gorm:"type:char(24);not null"`
	RequestedDayOfWeek    *int16     `gorm:"type:smallint"`
	RequestedDeliveryDate *time.Time `gorm:"type:date"`
	DeliveryNotes         string     `gorm:"type:text;not null;default:''"`
	Notes                 string     `gorm:"type:text;not null;default:''"`
	Status                int16      `gorm:"type:smallint;not null;index"`
	DeliveryCodeHash      string     `gorm:"type:text;not null"`
	CreatedAt             time.Time  `gorm:"type:timestamptz;not null;index;autoCreateTime:false"`
	UpdatedAt             time.Time  `gorm:"type:timestamptz;not null;index;autoUpdateTime:false"`
	DeliveredAt           *time.Time `gorm:"type:timestamptz"`
	Version               int        `gorm:"not null"`
}

func (RestockOrderDTO) TableName() string {
	return "restock_orders"
}

// ItemDTO represents one order line. Position preserves the requested order.
type ItemDTO struct {
	OrderID        string `gorm:"type:char(24);primaryKey"`
	Position       int    `gorm:"primaryKey"`
	ProductID      string `gorm:"type:char(24);not null"`
	Quantity       int    `gorm:"not null"`
	UnitPriceCents int64  `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "restock_order_items"
}

// StatusChangeDTO represents one history entry. Seq is its index in the history.
type StatusChangeDTO struct {
	OrderID    string    `gorm:"type:char(24);primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	FromStatus int16     `gorm:"type:smallint;not null"`
	ToStatus   int16     `gorm:"type:smallint;not null"`
	Reason     string    `gorm:"type:text;not null;default:''"`
	At         time.Time `gorm:"type:timestamptz;not null"`
}

func (StatusChangeDTO) TableName() string {
	return "restock_order_status_changes"
}

// AutoMigrate creates or updates the tables used by the repository.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&RestockOrderDTO{}, &ItemDTO{}, &StatusChangeDTO{})
}

// record groups the rows of one aggregate.
type record struct {
	order   RestockOrderDTO
	items   []ItemDTO
	history []StatusChangeDTO
}

func fromDomain(o *restockorder.RestockOrder) record {
	id := o.ID().String()
	dto := RestockOrderDTO{
		ID:                    id,
		StoreID:               o.StoreID().String(),
		SupplierID:            o.SupplierID().String(),
		SupplierRouteID:       o.SupplierRouteID().String(),
		RequestedDeliveryDate: o.Delivery().RequestedDate(),
		DeliveryNotes:         o.Delivery().Notes(),
		Notes:                 o.Notes(),
		Status:                int16(o.Status()),
		DeliveryCodeHash:      o.DeliveryCodeHash(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		DeliveredAt:           o.DeliveredAt(),
		Version:               o.Version(),
	}
	if day := o.RequestedDayOfWeek(); day != nil {
		dto.RequestedDayOfWeek = lo.ToPtr(int16(day.Int()))
	}

	return record{
		order: dto,
		items: lo.Map(o.Items(), func(item restockorder.Item, i int) ItemDTO {
			return ItemDTO{
				OrderID:        id,
				Position:       i,
				ProductID:      item.ProductID().String(),
				Quantity:       item.Quantity(),
				UnitPriceCents: item.UnitPriceCents().Int64(),
			}
		}),
		history: lo.Map(o.History(), func(change restockorder.StatusChange, i int) StatusChangeDTO {
			return StatusChangeDTO{
				OrderID:    id,
				Seq:        i,
				FromStatus: int16(change.From),
				ToStatus:   int16(change.To),
				Reason:     change.Reason,
				At:         change.At,
			}
		}),
	}
}

func toDomain(r record) (*restockorder.RestockOrder, error) {
	id, err := kernel.IDFromHex(r.order.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.IDFromHex(r.order.StoreID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.IDFromHex(r.order.SupplierID)
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.IDFromHex(r.order.SupplierRouteID)
	if err != nil {
		return nil, err
	}

	specs := make([]restockorder.ItemSpec, 0, len(r.items))
	for _, item := range r.items {
		productID, productErr := kernel.IDFromHex(item.ProductID)
		if productErr != nil {
			return nil, productErr
		}
		specs = append(specs, restockorder.ItemSpec{
			ProductID:      productID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	items, err := restockorder.NewItems(specs)
	if err != nil {
		return nil, err
	}

	var day *restockorder.Weekday
	if r.order.RequestedDayOfWeek != nil {
		d, dayErr := restockorder.NewWeekday(int(*r.order.RequestedDayOfWeek))
		if dayErr != nil {
			return nil, dayErr
		}
		day = &d
	}

	delivery, err := restockorder.NewDelivery(r.order.RequestedDeliveryDate, r.order.DeliveryNotes)
	if err != nil {
		return nil, err
	}

	return restockorder.RestoreRestockOrder(restockorder.RestoreParams{
		NewParams: restockorder.NewParams{
			ID:                 id,
			StoreID:            storeID,
			SupplierID:         supplierID,
			SupplierRouteID:    routeID,
			RequestedDayOfWeek: day,
			Items:              items,
			Delivery:           delivery,
			Notes:              r.order.Notes,
			DeliveryCodeHash:   r.order.DeliveryCodeHash,
			CreatedAt:          r.order.CreatedAt,
		},
		Status: restockorder.Status(r.order.Status),
		History: lo.Map(r.history, func(dto StatusChangeDTO, _ int) restockorder.StatusChange {
			return restockorder.StatusChange{
				From:   restockorder.Status(dto.FromStatus),
				To:     restockorder.Status(dto.ToStatus),
				Reason: dto.Reason,
				At:     dto.At.UTC(),
			}
		}),
		UpdatedAt:   r.order.UpdatedAt,
		DeliveredAt: r.order.DeliveredAt,
		Version:     r.order.Version,
	})
}

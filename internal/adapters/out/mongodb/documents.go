package mongodb

import (
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// restockOrderDocument is the shape of an order in the restock_orders collection.
// Items and history are embedded; statuses are stored as their literals.
type restockOrderDocument struct {
	ID                 primitive.ObjectID     `bson:"_id"`
	StoreID            primitive.ObjectID     `bson:"storeId"`
	SupplierID         primitive.ObjectID     `bson:"supplierId"`
	SupplierRouteID    primitive.ObjectID     `bson:"supplierRouteId"`
	RequestedDayOfWeek *int                   `bson:"requestedDayOfWeek,omitempty"`
	Items              []itemDocument         `bson:"items"`
	Delivery           *deliveryDocument      `bson:"delivery,omitempty"`
	Notes              string                 `bson:"notes"`
	Status             string                 `bson:"status"`
	DeliveryCodeHash   string                 `bson:"deliveryCodeHash"`
	History            []statusChangeDocument `bson:"history"`
	CreatedAt          time.Time              `bson:"createdAt"`
	UpdatedAt          time.Time              `bson:"updatedAt"`
	DeliveredAt        *time.Time             `bson:"deliveredAt,omitempty"`
	Version            int                    `bson:"version"`
}

type itemDocument struct {
	ProductID      primitive.ObjectID `bson:"productId"`
	Quantity       int                `bson:"quantity"`
	UnitPriceCents int64              `bson:"unitPriceCents"`
}

type deliveryDocument struct {
	RequestedDeliveryDate *time.Time `bson:"requestedDeliveryDate,omitempty"`
	Notes                 string     `bson:"notes,omitempty"`
}

type statusChangeDocument struct {
	From   string    `bson:"from"`
	To     string    `bson:"to"`
	Reason string    `bson:"reason,omitempty"`
	At     time.Time `bson:"at"`
}

func fromDomain(o *restockorder.RestockOrder) restockOrderDocument {
	doc := restockOrderDocument{
		ID:              o.ID().ObjectID(),
		StoreID:         o.StoreID().ObjectID(),
		SupplierID:      o.SupplierID().ObjectID(),
		SupplierRouteID: o.SupplierRouteID().ObjectID(),
		Items: lo.Map(o.Items(), func(item restockorder.Item, _ int) itemDocument {
			return itemDocument{
				ProductID:      item.ProductID().ObjectID(),
				Quantity:       item.Quantity(),
				UnitPriceCents: item.UnitPriceCents().Int64(),
			}
		}),
		Notes:            o.Notes(),
		Status:           o.Status().String(),
		DeliveryCodeHash: o.DeliveryCodeHash(),
		History: lo.Map(o.History(), func(change restockorder.StatusChange, _ int) statusChangeDocument {
			return statusChangeDocument{
				From:   change.From.String(),
				To:     change.To.String(),
				Reason: change.Reason,
				At:     change.At,
			}
		}),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		DeliveredAt: o.DeliveredAt(),
		Version:     o.Version(),
	}
	if day := o.RequestedDayOfWeek(); day != nil {
		doc.RequestedDayOfWeek = lo.ToPtr(day.Int())
	}
	if d := o.Delivery(); !d.IsEmpty() {
		doc.Delivery = &deliveryDocument{RequestedDeliveryDate: d.RequestedDate(), Notes: d.Notes()}
	}
	return doc
}

func toDomain(doc restockOrderDocument) (*restockorder.RestockOrder, error) {
	specs := make([]restockorder.ItemSpec, 0, len(doc.Items))
	for _, item := range doc.Items {
		specs = append(specs, restockorder.ItemSpec{
			ProductID:      kernel.IDFromObjectID(item.ProductID),
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	items, err := restockorder.NewItems(specs)
	if err != nil {
		return nil, err
	}

	var day *restockorder.Weekday
	if doc.RequestedDayOfWeek != nil {
		d, dayErr := restockorder.NewWeekday(*doc.RequestedDayOfWeek)
		if dayErr != nil {
			return nil, dayErr
		}
		day = &d
	}

	var delivery restockorder.Delivery
	if doc.Delivery != nil {
		delivery, err = restockorder.NewDelivery(doc.Delivery.RequestedDeliveryDate, doc.Delivery.Notes)
		if err != nil {
			return nil, err
		}
	}

	status, err := restockorder.ParseStatus(doc.Status)
	if err != nil {
		return nil, err
	}

	history := make([]restockorder.StatusChange, 0, len(doc.History))
	for _, change := range doc.History {
		from, fromErr := restockorder.ParseStatus(change.From)
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := restockorder.ParseStatus(change.To)
		if toErr != nil {
			return nil, toErr
		}
		history = append(history, restockorder.StatusChange{From: from, To: to, Reason: change.Reason, At: change.At.UTC()})
	}

	return restockorder.RestoreRestockOrder(restockorder.RestoreParams{
		NewParams: restockorder.NewParams{
			ID:                 kernel.IDFromObjectID(doc.ID),
			StoreID:            kernel.IDFromObjectID(doc.StoreID),
			SupplierID:         kernel.IDFromObjectID(doc.SupplierID),
			SupplierRouteID:    kernel.IDFromObjectID(doc.SupplierRouteID),
			RequestedDayOfWeek: day,
			Items:              items,
			Delivery:           delivery,
			Notes:              doc.Notes,
			DeliveryCodeHash:   doc.DeliveryCodeHash,
			CreatedAt:          doc.CreatedAt,
		},
		Status:      status,
		History:     history,
		UpdatedAt:   doc.UpdatedAt,
		DeliveredAt: doc.DeliveredAt,
		Version:     doc.Version,
	})
}

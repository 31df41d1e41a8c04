package restockorder

import (
	"errors"
	"fmt"
	"strings"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of a restock order: a product, how many units and the agreed
// unit price in cents. Items are immutable value objects.
type Item struct {
	productID      kernel.ID
	quantity       int
	unitPriceCents kernel.Cents
	isConstructed  bool
}

// ItemSpec is the raw input for one item, before validation.
type ItemSpec struct {
	ProductID      kernel.ID
	Quantity       int
	UnitPriceCents int64
}

// NewItem validates and creates an Item.
//
// Rules:
//   - productID must be a constructed identifier
//   - quantity must be at least 1
//   - unitPriceCents must not be negative
//   - quantity times unitPriceCents must not exceed kernel.MaxCents
func NewItem(productID kernel.ID, quantity int, unitPriceCents int64) (Item, error) {
	return newItem("", ItemSpec{ProductID: productID, Quantity: quantity, UnitPriceCents: unitPriceCents})
}

// NewItems builds the item list of an order. Every violation is reported with its
// position, e.g. "items.1.quantity", and an empty list is rejected.
func NewItems(specs []ItemSpec) ([]Item, error) {
	if len(specs) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("items", errors.New("must contain at least 1 item"))
	}

	items := make([]Item, 0, len(specs))
	var errList []error
	for i, spec := range specs {
		item, err := newItem(fmt.Sprintf("items.%d.", i), spec)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return items, nil
}

func newItem(prefix string, spec ItemSpec) (Item, error) {
	var errList []error
	if err := spec.ProductID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(prefix+"productId", err))
	}
	if spec.Quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(prefix+"quantity",
			fmt.Errorf("%d is less than 1", spec.Quantity)))
	}
	if spec.UnitPriceCents < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(prefix+"unitPriceCents",
			fmt.Errorf("%d is negative", spec.UnitPriceCents)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}
	if _, ok := kernel.Cents(spec.UnitPriceCents).TimesChecked(spec.Quantity); !ok {
		field := strings.TrimSuffix(prefix, ".")
		if field == "" {
			field = "item"
		}
		return Item{}, errs.NewValueIsInvalidErrorWithCause(field,
			fmt.Errorf("subtotal of %d units at %d cents exceeds %d cents", spec.Quantity, spec.UnitPriceCents, kernel.MaxCents))
	}

	return Item{
		productID:      spec.ProductID,
		quantity:       spec.Quantity,
		unitPriceCents: kernel.Cents(spec.UnitPriceCents),
		isConstructed:  true,
	}, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) ProductID() kernel.ID {
	return i.productID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPriceCents() kernel.Cents {
	return i.unitPriceCents
}

// SubtotalCents is quantity times unit price.
func (i Item) SubtotalCents() kernel.Cents {
	return i.unitPriceCents.Times(i.quantity)
}

package restockorder

import (
	"errors"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter selects orders for listing. Zero fields do not filter.
// Results are ordered by creation time, newest first.
type Filter struct {
	StoreID    *kernel.ID
	SupplierID *kernel.ID
	Statuses   []Status
	// UpdatedBefore keeps orders whose last change happened strictly before it.
	UpdatedBefore *time.Time
	Limit         int
	Offset        int
}

func (f Filter) Validate() error {
	var errList []error
	if f.StoreID != nil {
		if err := f.StoreID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("storeId", err))
		}
	}
	if f.SupplierID != nil {
		if err := f.SupplierID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("supplierId", err))
		}
	}
	for _, s := range f.Statuses {
		if err := s.Validate(); err != nil {
			errList = append(errList, err)
			break
		}
	}
	if f.Limit < 1 || f.Limit > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", f.Limit, 1, MaxPageSize))
	}
	if f.Offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", f.Offset, 0, "unbounded"))
	}
	return errors.Join(errList...)
}

// Matches reports whether o satisfies every criterion of f, ignoring paging.
func (f Filter) Matches(o *RestockOrder) bool {
	if f.StoreID != nil && !f.StoreID.IsEqual(o.StoreID()) {
		return false
	}
	if f.SupplierID != nil && !f.SupplierID.IsEqual(o.SupplierID()) {
		return false
	}
	if f.UpdatedBefore != nil && !o.UpdatedAt().Before(*f.UpdatedBefore) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if s == o.Status() {
			return true
		}
	}
	return false
}

// StatusLiterals returns the wire literals of the filtered statuses.
func (f Filter) StatusLiterals() []string {
	literals := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		literals = append(literals, s.String())
	}
	return literals
}

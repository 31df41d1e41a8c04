package restockorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/pkg/errs"
)

const (
	// ReasonDeliveryConfirmed is recorded in the history when the code was verified.
	ReasonDeliveryConfirmed = "delivery confirmed"

	// ReasonExpired is recorded when an order was left unanswered for too long.
	ReasonExpired = "expired"
)

var (
	// ErrRestockOrderIsNotConstructed is returned when a RestockOrder was not created
	// through NewRestockOrder or RestoreRestockOrder.
	ErrRestockOrderIsNotConstructed = errors.New("RestockOrder must be created via NewRestockOrder constructor")
)

// RestockOrder is the aggregate root of a store's request to a supplier.
//
// Invariants:
//   - store, supplier and supplier route are valid identifiers
//   - items are never empty
//   - status is always one of the eight valid statuses
//   - the delivery code is only known as a hash
//   - every status change is appended to the history, with its reason
//
// Which changes are legal is decided by a TransitionPolicy passed to each mutation.
type RestockOrder struct {
	id                 kernel.ID
	storeID            kernel.ID
	supplierID         kernel.ID
	supplierRouteID    kernel.ID
	requestedDayOfWeek *Weekday
	items              []Item
	delivery           Delivery
	notes              string
	status             Status
	deliveryCodeHash   string
	history            []StatusChange
	createdAt          time.Time
	updatedAt          time.Time
	deliveredAt        *time.Time

	// version is the persisted version the aggregate was loaded with.
	version int

	events        []Event
	isConstructed bool
}

// NewParams carries the inputs of NewRestockOrder.
type NewParams struct {
	ID                 kernel.ID
	StoreID            kernel.ID
	SupplierID         kernel.ID
	SupplierRouteID    kernel.ID
	RequestedDayOfWeek *Weekday
	Items              []Item
	Delivery           Delivery
	Notes              string
	DeliveryCodeHash   string
	CreatedAt          time.Time
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	NewParams
	Status      Status
	History     []StatusChange
	UpdatedAt   time.Time
	DeliveredAt *time.Time
	Version     int
}

// NewRestockOrder creates an order in status CREADA, at version 1, and records
// EventOrderCreated. All violations are returned together.
//
// Example:
//
//	items, _ := restockorder.NewItems([]restockorder.ItemSpec{{ProductID: productID, Quantity: 10, UnitPriceCents: 2500}})
//	o, err := restockorder.NewRestockOrder(restockorder.NewParams{
//	    ID: kernel.NewID(), StoreID: storeID, SupplierID: supplierID, SupplierRouteID: routeID,
//	    Items: items, DeliveryCodeHash: hash, CreatedAt: time.Now(),
//	})
func NewRestockOrder(p NewParams) (*RestockOrder, error) {
	o := &RestockOrder{
		status:        Created,
		version:       1,
		isConstructed: true,
	}
	if err := o.apply(p); err != nil {
		return nil, err
	}
	o.updatedAt = o.createdAt

	o.record(EventOrderCreated, Unknown, Created, "", o.createdAt)
	return o, nil
}

// RestoreRestockOrder rebuilds an order loaded from storage. No event is recorded.
func RestoreRestockOrder(p RestoreParams) (*RestockOrder, error) {
	o := &RestockOrder{isConstructed: true}
	if err := errors.Join(
		o.apply(p.NewParams),
		o.setStatus(p.Status),
		o.setVersion(p.Version),
	); err != nil {
		return nil, err
	}

	o.history = make([]StatusChange, len(p.History))
	copy(o.history, p.History)
	o.updatedAt = p.UpdatedAt.UTC()
	if o.updatedAt.IsZero() {
		o.updatedAt = o.createdAt
	}
	if p.DeliveredAt != nil {
		at := p.DeliveredAt.UTC()
		o.deliveredAt = &at
	}
	return o, nil
}

func (o *RestockOrder) apply(p NewParams) error {
	return errors.Join(
		setRequiredID(&o.id, "id", p.ID),
		setRequiredID(&o.storeID, "storeId", p.StoreID),
		setRequiredID(&o.supplierID, "supplierId", p.SupplierID),
		setRequiredID(&o.supplierRouteID, "supplierRouteId", p.SupplierRouteID),
		o.setRequestedDayOfWeek(p.RequestedDayOfWeek),
		o.setItems(p.Items),
		o.setNotes(p.Notes),
		o.setDeliveryCodeHash(p.DeliveryCodeHash),
		o.setCreatedAt(p.CreatedAt),
		o.setDelivery(p.Delivery),
	)
}

func (o *RestockOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrRestockOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *RestockOrder) IsEqual(other *RestockOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *RestockOrder) ID() kernel.ID {
	return o.id
}

func (o *RestockOrder) StoreID() kernel.ID {
	return o.storeID
}

func (o *RestockOrder) SupplierID() kernel.ID {
	return o.supplierID
}

func (o *RestockOrder) SupplierRouteID() kernel.ID {
	return o.supplierRouteID
}

// RequestedDayOfWeek is nil when the store did not ask for a weekday.
func (o *RestockOrder) RequestedDayOfWeek() *Weekday {
	if o.requestedDayOfWeek == nil {
		return nil
	}
	day := *o.requestedDayOfWeek
	return &day
}

// Items returns a copy of the order lines, in their original order.
func (o *RestockOrder) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *RestockOrder) Delivery() Delivery {
	return o.delivery
}

func (o *RestockOrder) Notes() string {
	return o.notes
}

func (o *RestockOrder) Status() Status {
	return o.status
}

func (o *RestockOrder) DeliveryCodeHash() string {
	return o.deliveryCodeHash
}

// History returns a copy of every status change, oldest first.
func (o *RestockOrder) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

func (o *RestockOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *RestockOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *RestockOrder) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	at := *o.deliveredAt
	return &at
}

func (o *RestockOrder) Version() int {
	return o.version
}

// TotalCents sums the subtotal of every item. The sum never exceeds kernel.MaxCents.
func (o *RestockOrder) TotalCents() kernel.Cents {
	var total kernel.Cents
	for _, item := range o.items {
		total += item.SubtotalCents()
	}
	return total
}

// ScheduleDelivery sets the requested delivery date, keeping the delivery notes.
func (o *RestockOrder) ScheduleDelivery(date time.Time) {
	o.delivery = o.delivery.WithRequestedDate(date)
}

// ChangeStatus moves the order to status `to` if policy allows it.
//
// The reason is trimmed and stored in the history. Under the strict policy ENTREGADA
// is only reachable through ConfirmDelivery. On failure the order is left unchanged.
func (o *RestockOrder) ChangeStatus(to Status, reason string, policy TransitionPolicy, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if err := errors.Join(
		checkNotes("reason", reason),
		checkTimestamp(at),
	); err != nil {
		return err
	}
	if err := policy.CheckChange(o.status, to); err != nil {
		return err
	}

	o.transition(to, reason, at.UTC())
	return nil
}

// ConfirmDelivery marks the order ENTREGADA once the presented code matches the
// issued one. A mismatch returns ErrDeliveryCodeMismatch and changes nothing.
func (o *RestockOrder) ConfirmDelivery(code DeliveryCode, matcher CodeMatcher, policy TransitionPolicy, at time.Time) error {
	if err := errors.Join(
		code.Validate(),
		checkTimestamp(at),
	); err != nil {
		return err
	}
	if err := policy.CheckDelivery(o.status); err != nil {
		return err
	}
	if !matcher.Matches(o.deliveryCodeHash, code) {
		return ErrDeliveryCodeMismatch
	}

	o.transition(Delivered, ReasonDeliveryConfirmed, at.UTC())
	return nil
}

// IsAwaitingSupplier reports whether the supplier has not answered yet.
func (o *RestockOrder) IsAwaitingSupplier() bool {
	return o.status == Created || o.status == Sent
}

// Expire cancels an order the supplier never answered.
func (o *RestockOrder) Expire(policy TransitionPolicy, at time.Time) error {
	if !o.IsAwaitingSupplier() {
		return fmt.Errorf("%w: %s orders do not expire", ErrTransitionNotAllowed, o.status)
	}
	return o.ChangeStatus(Cancelled, ReasonExpired, policy, at)
}

// PullEvents returns the recorded events and forgets them.
func (o *RestockOrder) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *RestockOrder) transition(to Status, reason string, at time.Time) {
	from := o.status
	o.status = to
	o.updatedAt = at
	o.history = append(o.history, StatusChange{From: from, To: to, Reason: reason, At: at})

	o.record(EventOrderStatusChanged, from, to, reason, at)
	switch {
	case to == Delivered:
		o.deliveredAt = &at
		o.record(EventOrderDelivered, from, to, reason, at)
	case from == Delivered:
		// deliveredAt is only set while the order is ENTREGADA.
		o.deliveredAt = nil
	}
}

func (o *RestockOrder) record(name string, from, to Status, reason string, at time.Time) {
	o.events = append(o.events, Event{
		Name:       name,
		OrderID:    o.id,
		StoreID:    o.storeID,
		SupplierID: o.supplierID,
		From:       from,
		To:         to,
		Reason:     reason,
		OccurredAt: at,
	})
}

func setRequiredID(dst *kernel.ID, param string, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = id
	return nil
}

func (o *RestockOrder) setRequestedDayOfWeek(day *Weekday) error {
	if day == nil {
		return nil
	}
	if err := day.Validate(); err != nil {
		return err
	}
	d := *day
	o.requestedDayOfWeek = &d
	return nil
}

func (o *RestockOrder) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("must contain at least 1 item"))
	}
	var total kernel.Cents
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items.%d", i), err)
		}
		var ok bool
		if total, ok = total.PlusChecked(item.SubtotalCents()); !ok {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("order total exceeds %d cents", kernel.MaxCents))
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *RestockOrder) setDelivery(delivery Delivery) error {
	o.delivery = delivery
	return nil
}

func (o *RestockOrder) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if err := checkNotes("notes", notes); err != nil {
		return err
	}
	o.notes = notes
	return nil
}

func (o *RestockOrder) setDeliveryCodeHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("deliveryCodeHash")
	}
	o.deliveryCodeHash = hash
	return nil
}

func (o *RestockOrder) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = at.UTC()
	return nil
}

func (o *RestockOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *RestockOrder) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is less than 1", version))
	}
	o.version = version
	return nil
}

func checkTimestamp(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	return nil
}

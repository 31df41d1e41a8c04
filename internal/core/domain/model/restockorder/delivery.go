package restockorder

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"restock/internal/pkg/errs"
)

// MaxNotesLength bounds every free text field of an order.
const MaxNotesLength = 500

// Delivery holds what the store asked about the delivery itself.
type Delivery struct {
	requestedDate *time.Time
	notes         string
}

// NewDelivery normalizes the requested date to midnight UTC and trims notes.
func NewDelivery(requestedDate *time.Time, notes string) (Delivery, error) {
	notes = strings.TrimSpace(notes)
	if err := checkNotes("delivery.notes", notes); err != nil {
		return Delivery{}, err
	}

	d := Delivery{notes: notes}
	if requestedDate != nil {
		day := DateOf(*requestedDate)
		d.requestedDate = &day
	}
	return d, nil
}

// RequestedDate is nil when the store expressed no date.
func (d Delivery) RequestedDate() *time.Time {
	if d.requestedDate == nil {
		return nil
	}
	day := *d.requestedDate
	return &day
}

func (d Delivery) Notes() string {
	return d.notes
}

func (d Delivery) IsEmpty() bool {
	return d.requestedDate == nil && d.notes == ""
}

// WithRequestedDate returns a copy scheduled for date.
func (d Delivery) WithRequestedDate(date time.Time) Delivery {
	day := DateOf(date)
	d.requestedDate = &day
	return d
}

// DateOf truncates t to the calendar day, in UTC.
func DateOf(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// Weekday is an ISO-8601 day of week: 1 is Monday, 7 is Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func NewWeekday(day int) (Weekday, error) {
	w := Weekday(day)
	if err := w.Validate(); err != nil {
		return 0, err
	}
	return w, nil
}

func (w Weekday) Validate() error {
	if w < Monday || w > Sunday {
		return errs.NewValueIsOutOfRangeError("requestedDayOfWeek", int(w), int(Monday), int(Sunday))
	}
	return nil
}

// TimeWeekday converts to the standard library numbering, where Sunday is 0.
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday(int(w) % 7)
}

func (w Weekday) Int() int {
	return int(w)
}

func checkNotes(field, notes string) error {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsInvalidErrorWithCause(field,
			fmt.Errorf("must be at most %d characters long, got %d", MaxNotesLength, n))
	}
	return nil
}

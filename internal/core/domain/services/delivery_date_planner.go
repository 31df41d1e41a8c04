package services

import (
	"time"

	"restock/internal/core/domain/model/restockorder"
)

// DeliveryDatePlanner schedules orders whose store asked for a weekday rather than a date.
//
// Business rules:
//   - An explicit requested delivery date always wins
//   - Otherwise the order is scheduled on the first matching weekday strictly after
//     the day the order was created, so a store never receives a same-day promise
//
// Example usage:
//
//	planner := services.NewDeliveryDatePlanner()
//	if err := planner.Plan(order); err != nil {
//	    return err
//	}
type DeliveryDatePlanner struct{}

func NewDeliveryDatePlanner() DeliveryDatePlanner {
	return DeliveryDatePlanner{}
}

// Plan sets the requested delivery date of o when only a weekday is known.
func (p DeliveryDatePlanner) Plan(o *restockorder.RestockOrder) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Delivery().RequestedDate() != nil {
		return nil
	}
	day := o.RequestedDayOfWeek()
	if day == nil {
		return nil
	}

	o.ScheduleDelivery(p.NextDate(o.CreatedAt(), *day))
	return nil
}

// NextDate returns the first date after from's calendar day that falls on day.
func (p DeliveryDatePlanner) NextDate(from time.Time, day restockorder.Weekday) time.Time {
	start := restockorder.DateOf(from)
	delta := (int(day.TimeWeekday()) - int(start.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return start.AddDate(0, 0, delta)
}

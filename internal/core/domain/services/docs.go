// Package services provides domain services that apply business rules spanning
// more than a single method of the RestockOrder aggregate.
//
// The package includes:
//   - DeliveryDatePlanner: turns a requested weekday into a concrete delivery date
package services

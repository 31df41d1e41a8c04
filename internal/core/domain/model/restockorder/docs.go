// Package restockorder holds the RestockOrder aggregate: a store's request for goods
// from a supplier, and the lifecycle that request goes through until it is delivered,
// rejected or cancelled.
//
// The package includes:
//   - RestockOrder: the aggregate root, with its items, delivery details and status history
//   - Status: the closed set of lifecycle states and the strict transition table
//   - TransitionPolicy: strict or permissive legality of status changes
//   - DeliveryCode: the secret that confirms delivery, persisted only as a hash
//   - Event: facts recorded by the aggregate and dispatched after commit
//   - Filter: listing criteria shared by every repository implementation
//
// Key business rules:
//   - An order is created in CREADA with at least one item
//   - Quantities are at least 1 and unit prices are never negative, both in integers
//   - Under the strict policy ENTREGADA can only be reached by presenting the delivery code
//     while the order is EN_RUTA
//   - A wrong delivery code never changes the order
package restockorder

// Package kernel provides core domain primitives shared by the restock order model.
//
// The package includes:
//   - ID: the 24 character hexadecimal identifier used for orders and for every
//     external entity an order references (store, supplier, supplier route, product)
//   - Cents: integer money in minor units with a decimal view for presentation
//
// The primitives are immutable and safe for concurrent use.
package kernel

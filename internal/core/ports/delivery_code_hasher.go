package ports

import (
	"restock/internal/core/domain/model/restockorder"
)

// DeliveryCodeHasher turns a delivery code into the only form that is ever stored.
type DeliveryCodeHasher interface {
	restockorder.CodeMatcher

	Hash(code restockorder.DeliveryCode) (string, error)
}

// Package hashing stores delivery codes as bcrypt hashes.
package hashing

import (
	"fmt"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements ports.DeliveryCodeHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher accepts costs between bcrypt.MinCost and bcrypt.MaxCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errs.NewValueIsOutOfRangeError("bcryptCost", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Hash(code restockorder.DeliveryCode) (string, error) {
	if err := code.Validate(); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code.String()), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash delivery code: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether code hashes to hash. A malformed hash never matches.
func (h *BcryptHasher) Matches(hash string, code restockorder.DeliveryCode) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code.String())) == nil
}

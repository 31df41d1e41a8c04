package restockorder

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"restock/internal/pkg/errs"
)

const (
	DeliveryCodeMinLength = 4
	DeliveryCodeMaxLength = 12

	// GeneratedDeliveryCodeLength is the number of digits of codes issued on creation.
	GeneratedDeliveryCodeLength = 6
)

var (
	// ErrDeliveryCodeMismatch is returned when the presented code does not match the
	// one issued for the order. The order is left untouched.
	ErrDeliveryCodeMismatch = errors.New("delivery code does not match")

	ErrDeliveryCodeIsNotConstructed = errors.New("DeliveryCode must be created via NewDeliveryCode")
)

// DeliveryCode is the secret the receiving store hands to the driver; presenting it
// confirms delivery. Only its hash is ever persisted.
type DeliveryCode struct {
	value string
}

// NewDeliveryCode accepts any string of 4 to 12 characters.
func NewDeliveryCode(value string) (DeliveryCode, error) {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return DeliveryCode{}, errs.NewValueIsRequiredError("deliveryCode")
	}
	if n < DeliveryCodeMinLength || n > DeliveryCodeMaxLength {
		return DeliveryCode{}, errs.NewValueIsInvalidErrorWithCause("deliveryCode",
			fmt.Errorf("must be between %d and %d characters long, got %d",
				DeliveryCodeMinLength, DeliveryCodeMaxLength, n))
	}
	return DeliveryCode{value: value}, nil
}

// GenerateDeliveryCode issues a random numeric code of GeneratedDeliveryCodeLength digits.
func GenerateDeliveryCode() (DeliveryCode, error) {
	digits := make([]byte, GeneratedDeliveryCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return DeliveryCode{}, fmt.Errorf("generate delivery code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return DeliveryCode{value: string(digits)}, nil
}

func (c DeliveryCode) Validate() error {
	if c.value == "" {
		return ErrDeliveryCodeIsNotConstructed
	}
	return nil
}

// String returns the plain code. Callers must not log it.
func (c DeliveryCode) String() string {
	return c.value
}

// CodeMatcher checks a presented code against the stored hash.
type CodeMatcher interface {
	Matches(hash string, code DeliveryCode) bool
}

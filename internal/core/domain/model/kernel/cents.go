package kernel

import (
	"github.com/shopspring/decimal"
)

// MaxCents is the largest amount the service stores or reports. It is the largest
// integer a JSON number carries without loss.
const MaxCents Cents = 1<<53 - 1

// Cents is a monetary amount in minor units. Prices travel as integers end to end;
// conversion to a decimal amount only happens for presentation.
type Cents int64

// Amount converts minor units into a decimal amount with two fractional digits.
func (c Cents) Amount() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Times multiplies a unit price by a quantity.
func (c Cents) Times(quantity int) Cents {
	return c * Cents(quantity)
}

// TimesChecked is Times that reports false when the product leaves [0, MaxCents].
func (c Cents) TimesChecked(quantity int) (Cents, bool) {
	if c < 0 || quantity < 0 || c > MaxCents {
		return 0, false
	}
	if quantity != 0 && c > MaxCents/Cents(quantity) {
		return 0, false
	}
	return c * Cents(quantity), true
}

// PlusChecked adds two amounts and reports false when the sum leaves [0, MaxCents].
func (c Cents) PlusChecked(other Cents) (Cents, bool) {
	if c < 0 || other < 0 || c > MaxCents || other > MaxCents-c {
		return 0, false
	}
	return c + other, true
}

func (c Cents) Int64() int64 {
	return int64(c)
}

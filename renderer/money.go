// Package renderer turns ledger reports into markdown, ready for terminal
// rendering or plain-text output.
package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value for display.
type Money struct {
	value *money.Money
}

// NewMoney creates a new Money instance from a decimal.Decimal.
func NewMoney(amount decimal.Decimal, currency string) Money {
	// Find the currency first.
	cur := money.GetCurrency(currency)
	if cur == nil {
		return Money{}
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	amount = amount.Mul(factor)
	return Money{money.New(amount.IntPart(), currency)}
}

// String returns the formatted money value, or "-" for the zero Money.
func (m Money) String() string {
	if m.value == nil {
		return "-"
	}
	return m.value.Display()
}

// SignedString returns the formatted money value with an explicit plus sign
// on positive values.
func (m Money) SignedString() string {
	if m.value == nil {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.value.Display()
	}
	return m.value.Display()
}

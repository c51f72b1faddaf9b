package analyst

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary value in a reporting currency, used to render metric
// values. Ledger arithmetic stays in decimal.Decimal; Money only dresses the
// result for display.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M creates a Money from a decimal value and an ISO currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns the full currency definition, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency's symbol and fraction rules.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the formatted value with a sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string   { return m.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Add(n Money) Money  { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) Sub(n Money) Money  { return Money{value: m.value.Sub(n.value), cur: m.cur} }

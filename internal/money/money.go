// Package money provides a fixed-point USD amount for tracking per-request
// oracle spend. Amounts stay numeric internally; dollar-string formatting
// happens only at the presentation boundary.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// USD is a non-negative dollar amount.
type USD struct {
	amount decimal.Decimal
}

// Zero returns a zero dollar amount.
func Zero() USD {
	return USD{amount: decimal.Zero}
}

// FromFloat converts a float dollar value into a USD amount.
// Negative inputs are clamped to zero.
func FromFloat(v float64) USD {
	if v < 0 {
		v = 0
	}
	return USD{amount: decimal.NewFromFloat(v)}
}

// Add returns the sum of two amounts.
func (u USD) Add(other USD) USD {
	return USD{amount: u.amount.Add(other.amount)}
}

// IsZero reports whether the amount is exactly zero.
func (u USD) IsZero() bool {
	return u.amount.IsZero()
}

// Float64 returns the amount as a float dollar value.
func (u USD) Float64() float64 {
	f, _ := u.amount.Float64()
	return f
}

// String renders the amount as a dollar string: "$0" for a zero amount,
// otherwise seven decimal places to keep sub-cent token costs visible.
func (u USD) String() string {
	if u.amount.IsZero() {
		return "$0"
	}
	return "$" + u.amount.StringFixed(7)
}

// MarshalJSON renders the amount as its dollar string.
func (u USD) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", u.String())), nil
}

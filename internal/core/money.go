// Package core holds the domain entities and the aggregation rules that
// derive financial summaries from them. Everything in here is pure: no
// storage, no formatting, no side effects.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input into a strictly positive decimal amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Signed, zero and malformed values are rejected: entry forms silently refuse
// them before a transaction is ever built.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseFeePct converts user input into an admin fee percentage in [0, 100].
func ParseFeePct(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidFee
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidFee
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Zero, ErrInvalidFee
	}
	return d, nil
}

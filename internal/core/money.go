// Package core holds the domain model of the ledger: entities, the error
// taxonomy, money handling and period windows.
//
// Monetary amounts are signed integers in minor units of the CFA franc.
// The CFA has no sub-unit, so one minor unit equals one franc. Floating
// point never carries money inside the system; decimal conversion happens
// only at the API boundary.
package core

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal amount string from the API boundary into
// minor units. The CFA carries no fractional part, so any input with a
// non-zero fraction is rejected alongside empty and malformed strings.
//
// Examples:
//
//	ParseAmount("150000")  -> 150000, nil
//	ParseAmount("-45000")  -> -45000, nil
//	ParseAmount("12.50")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsInteger() {
		return 0, ErrInvalidAmount
	}
	if !d.BigInt().IsInt64() {
		return 0, ErrInvalidAmount
	}
	return d.IntPart(), nil
}

// FormatAmount renders minor units with thousands separators for
// user-facing messages, e.g. 20000 -> "20,000".
func FormatAmount(n int64) string {
	return humanize.Comma(n)
}

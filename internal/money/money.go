package money

import "github.com/shopspring/decimal"

// Monetary values use two decimal places. Rounding is half-to-even and is
// applied after arithmetic, never on intermediate operands.

const Places = 2

var Zero = decimal.Zero

// Round rounds to the currency minor unit using banker's rounding.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// OrZero dereferences an optional monetary field, treating absent as zero.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// IsNegative reports whether d is strictly below zero.
func IsNegative(d decimal.Decimal) bool {
	return d.Sign() < 0
}

// IsPositive reports whether d is strictly above zero.
func IsPositive(d decimal.Decimal) bool {
	return d.Sign() > 0
}

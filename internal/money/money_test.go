package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundBankersHalfToEven(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100.005", "100.00"}, // half, even neighbor stays
		{"100.015", "100.02"}, // half, rounds to even
		{"100.025", "100.02"},
		{"100.035", "100.04"},
		{"13.5", "13.5"},
		{"2.675", "2.68"},
		{"2.665", "2.66"},
		{"-100.005", "-100.00"},
		{"0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			in := decimal.RequireFromString(tc.in)
			want := decimal.RequireFromString(tc.want)
			assert.True(t, Round(in).Equal(want), "Round(%s) = %s, want %s", tc.in, Round(in), tc.want)
		})
	}
}

func TestRoundAfterArithmetic(t *testing.T) {
	// (100.00 - 10.00) * 0.15 must come out exactly 13.50.
	subtotal := decimal.RequireFromString("100.00")
	discount := decimal.RequireFromString("10.00")
	rate := decimal.RequireFromString("0.15")

	tax := Round(subtotal.Sub(discount).Mul(rate))
	assert.Equal(t, "13.5", tax.String())
	assert.True(t, tax.Equal(decimal.RequireFromString("13.50")))
}

func TestOrZero(t *testing.T) {
	assert.True(t, OrZero(nil).IsZero())

	v := decimal.RequireFromString("12.34")
	assert.True(t, OrZero(&v).Equal(v))
}

package invoice

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/money"
)

var (
	ErrNotFound        = errors.New("invoice not found")
	ErrAlreadyExists   = errors.New("invoice already exists for this work order")
	ErrInvalidDiscount = errors.New("discount must be between zero and the subtotal")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
	ErrOverpayment     = errors.New("payment exceeds the remaining balance")
)

// Subtotal sums item lines (qty * unit price) and flat-rate service lines.
// Unrounded; the caller rounds once, after all arithmetic.
func Subtotal(items []models.WorkOrderItem, services []models.WorkOrderService) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	for _, ws := range services {
		sum = sum.Add(ws.Price)
	}
	return sum
}

// Compute builds the invoice monetary fields from a subtotal, discount and
// tax rate. Every field is bank-rounded to 2 decimals after its arithmetic.
//
//	tax   = max(subtotal - discount, 0) * rate
//	total = subtotal - discount + tax
func Compute(subtotal, discount, taxRate decimal.Decimal) (models.Invoice, error) {
	subtotal = money.Round(subtotal)
	discount = money.Round(discount)

	if money.IsNegative(discount) || discount.GreaterThan(subtotal) {
		return models.Invoice{}, ErrInvalidDiscount
	}

	taxable := subtotal.Sub(discount)
	if money.IsNegative(taxable) {
		taxable = decimal.Zero
	}

	tax := money.Round(taxable.Mul(taxRate))
	total := money.Round(subtotal.Sub(discount).Add(tax))

	return models.Invoice{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
		Paid:     decimal.Zero,
	}, nil
}

// ValidatePayment checks amount against the invoice at the instant of
// application. The repository re-runs this under a row lock.
func ValidatePayment(inv *models.Invoice, amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(inv.Balance()) {
		return ErrOverpayment
	}
	return nil
}

package pricing

import "github.com/shopspring/decimal"

// Result holds the derived charges for an order. Each component is rounded
// to 2 places exactly once; GrandTotal is the sum of the rounded parts, so
// stored totals always satisfy
//
//	grandTotal = (subTotal - discount) + vatAmount + serviceCharge
//
// exactly.
type Result struct {
	VatAmount     decimal.Decimal
	ServiceCharge decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Price computes tax and service charge on the discounted subtotal.
// The discount reduces the base before either rate is applied.
func Price(subTotal, vatRate, serviceChargeRate, discountAmount decimal.Decimal) Result {
	effective := subTotal.Sub(discountAmount)
	vat := effective.Mul(vatRate).Round(2)
	svc := effective.Mul(serviceChargeRate).Round(2)
	return Result{
		VatAmount:     vat,
		ServiceCharge: svc,
		GrandTotal:    effective.Add(vat).Add(svc),
	}
}

// PercentageAmount converts a percentage discount value into a concrete
// amount against the original subtotal.
func PercentageAmount(subTotal, value decimal.Decimal) decimal.Decimal {
	return subTotal.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
}

// Percentage is the share of subTotal that amount represents, in percent.
// Used for discount tiering; computed against the original subtotal.
func Percentage(amount, subTotal decimal.Decimal) decimal.Decimal {
	if subTotal.IsZero() {
		return decimal.Zero
	}
	return amount.Div(subTotal).Mul(decimal.NewFromInt(100))
}

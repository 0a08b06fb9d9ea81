package billing

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// FeeBreakdown is the result of computing charges for a fee transaction.
type FeeBreakdown struct {
	Amount     decimal.Decimal
	Discount   decimal.Decimal
	NetPayable decimal.Decimal
}

// ComputeFee calculates the gross amount, discount and net payable for a
// payment of monthsRequested months at feePerMonth.
//
// The discount is all-or-nothing: it applies only when the payment covers the
// full course duration in a single transaction. Partial payments never earn a
// prorated discount. Callers are responsible for validating monthsRequested
// against the student's remaining balance; this function is pure.
func ComputeFee(feePerMonth decimal.Decimal, monthsRequested int, durationMonths int, discountPercentage decimal.Decimal) FeeBreakdown {
	amount := feePerMonth.Mul(decimal.NewFromInt(int64(monthsRequested)))

	discount := decimal.Zero
	if monthsRequested == durationMonths && discountPercentage.IsPositive() {
		discount = amount.Mul(discountPercentage).Div(oneHundred)
	}

	return FeeBreakdown{
		Amount:     amount,
		Discount:   discount,
		NetPayable: amount.Sub(discount),
	}
}

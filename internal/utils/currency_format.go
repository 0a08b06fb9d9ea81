package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount formats a monetary amount at the standard two decimal places
// used on bills and in notification payloads.
// Example: 27000 -> "27000.00", 99.9 -> "99.90"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

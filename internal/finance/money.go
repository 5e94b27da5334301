// Package finance holds the pure pieces of the dashboard and budget logic:
// monetary rounding, calendar month windows and budget progress. Everything
// here is deterministic so it can be tested without a database or a clock.
package finance

import "github.com/shopspring/decimal"

// RoundAmount normalizes a monetary input to two decimal places. All amounts
// are rounded once at write time; aggregation later sums the stored values
// as-is.
func RoundAmount(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// Progress returns how much of a budget has been consumed, in percent.
// A missing or non-positive budget yields 0 rather than a division by zero.
func Progress(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}

	result, _ := decimal.NewFromFloat(spent).
		Div(decimal.NewFromFloat(budget)).
		Mul(decimal.NewFromInt(100)).
		Float64()

	return result
}

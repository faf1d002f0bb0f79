// Package rounding pins the rounding convention used for hours and money.
//
// All stored and reported figures are rounded to two decimal places with
// round-half-to-even (banker's rounding).
package rounding

import "github.com/shopspring/decimal"

// Places is the number of decimal places kept for hours and currency.
const Places int32 = 2

// Round rounds d to Places using round-half-to-even.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// Sum adds values and rounds the result.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round(total)
}

// Package money holds the rounding rules shared by payroll and payments.
package money

import "github.com/shopspring/decimal"

// Places is the number of decimals kept on every stored amount.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds half away from zero to two decimals.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Mul multiplies a rate by a quantity and rounds the product.
func Mul(rate, quantity decimal.Decimal) decimal.Decimal {
	return Round(rate.Mul(quantity))
}

// Percent returns part/whole as a percentage with two decimals, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return Round(part.Div(whole).Mul(hundred))
}

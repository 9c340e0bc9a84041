package utils

import "github.com/shopspring/decimal"

// Round rounds a monetary amount to 2 decimal places for display
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// Sum adds up the amounts returned by value for every element of items
func Sum[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(value(item))
	}
	return total
}

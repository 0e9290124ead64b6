// Package money форматирование денежных сумм для ответов API.
package money

import "github.com/shopspring/decimal"

// CurrencySymbol символ валюты, в которой ведётся учёт.
const CurrencySymbol = "Bs"

// FromCents переводит целые центы в decimal с двумя знаками.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatBs возвращает сумму для отображения, например "Bs 35.00".
func FormatBs(cents int64) string {
	return CurrencySymbol + " " + FromCents(cents).StringFixed(2)
}

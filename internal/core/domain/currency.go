package domain

import "strings"

// BaseCurrencyCode is the reference currency every listing amount is stored in.
const BaseCurrencyCode = "USD"

// DefaultCurrencyPrecision applies to currencies without a registered precision.
const DefaultCurrencyPrecision = 2

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // display decimals, e.g. 2 for USD, 0 for LAK
	AuditFields
}

// NormalizeCurrencyCode upper-cases and trims a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsBaseCurrency reports whether code names the base currency.
func IsBaseCurrency(code string) bool {
	return NormalizeCurrencyCode(code) == BaseCurrencyCode
}

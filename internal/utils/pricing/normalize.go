// Package pricing derives multi-currency price views from a base-currency amount.
package pricing

import (
	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PrecisionTable maps a currency code to its display precision (decimal places).
type PrecisionTable map[string]int32

// For returns the precision of code, or domain.DefaultCurrencyPrecision when unregistered.
func (p PrecisionTable) For(code string) int32 {
	if places, ok := p[code]; ok {
		return places
	}
	return domain.DefaultCurrencyPrecision
}

// NewPrecisionTable builds a table from the currency registry.
func NewPrecisionTable(currencies []domain.Currency) PrecisionTable {
	table := make(PrecisionTable, len(currencies))
	for _, c := range currencies {
		table[domain.NormalizeCurrencyCode(c.CurrencyCode)] = int32(c.Precision)
	}
	return table
}

// Normalize expresses baseAmountUSD in every currency of rates.
//
// The USD entry is always baseAmountUSD itself, never multiplied or rounded.
// Every other currency gets baseAmountUSD*rate rounded to its precision.
// An empty or nil table yields {USD: baseAmountUSD}.
func Normalize(baseAmountUSD decimal.Decimal, rates domain.RateTable, precision PrecisionTable) domain.PriceMap {
	out := make(domain.PriceMap, len(rates)+1)
	out[domain.BaseCurrencyCode] = baseAmountUSD
	for code, rate := range rates {
		if code == domain.BaseCurrencyCode {
			continue
		}
		out[code] = baseAmountUSD.Mul(rate).Round(precision.For(code))
	}
	return out
}

// Refresh recomputes existing against rates. Currencies present in existing
// but absent from rates are carried over untouched, so removing a rate never
// strips it from already-cached maps.
func Refresh(existing domain.PriceMap, baseAmountUSD decimal.Decimal, rates domain.RateTable, precision PrecisionTable) domain.PriceMap {
	out := Normalize(baseAmountUSD, rates, precision)
	for code, amount := range existing {
		if _, ok := out[code]; !ok {
			out[code] = amount
		}
	}
	return out
}

// Equal reports whether two price maps hold the same currencies with numerically equal amounts.
func Equal(a, b domain.PriceMap) bool {
	if len(a) != len(b) {
		return false
	}
	for code, av := range a {
		bv, ok := b[code]
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

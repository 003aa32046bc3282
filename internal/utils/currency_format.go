package utils

import (
	"sort"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given number of decimal places,
// padding with zeros so 2000000 with precision 2 reads "2000000.00".
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// FormatPriceMap renders every entry of price at its currency's precision.
func FormatPriceMap(price domain.PriceMap, precision pricing.PrecisionTable) map[string]string {
	if price == nil {
		return nil
	}
	out := make(map[string]string, len(price))
	for code, amount := range price {
		out[code] = FormatWithPrecision(amount, precision.For(code))
	}
	return out
}

// SortedCurrencies returns the currency codes of price in ascending order.
func SortedCurrencies(price domain.PriceMap) []string {
	codes := make([]string, 0, len(price))
	for code := range price {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

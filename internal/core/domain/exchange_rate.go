package domain

import (
	"fmt"
	"sort"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Rate expresses "1 unit of the base currency = Rate units of CurrencyCode".
// CurrencyCode is the natural key; there is exactly one row per currency.
type Rate struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	AuditFields
}

// RateTable is the current {currency -> rate} snapshot.
type RateTable map[string]decimal.Decimal

// ValidateRateValue rejects zero and negative rates.
// decimal.Decimal has no NaN or infinity, so anything that parsed is finite.
func ValidateRateValue(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrValidation, rate.String())
	}
	return nil
}

// ValidateCurrencyCode checks the 3-letter shape of a currency code.
func ValidateCurrencyCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: currency code must be 3 letters, got %q", apperrors.ErrValidation, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: currency code must be upper-case letters, got %q", apperrors.ErrValidation, code)
		}
	}
	return nil
}

// NewRateTable builds a table from rate rows.
func NewRateTable(rates []Rate) RateTable {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		table[NormalizeCurrencyCode(r.CurrencyCode)] = r.Rate
	}
	return table
}

// Clone returns an independent copy, used as the per-job snapshot.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Currencies returns the table's currency codes in sorted order.
func (t RateTable) Currencies() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

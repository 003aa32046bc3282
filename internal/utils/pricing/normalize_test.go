package pricing_test

import (
	"testing"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var precisions = pricing.PrecisionTable{"USD": 2, "LAK": 0, "VND": 0, "THB": 2}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalize_ScenarioA(t *testing.T) {
	rates := domain.RateTable{"USD": dec("1"), "LAK": dec("20000")}

	got := pricing.Normalize(dec("100"), rates, precisions)

	require.Len(t, got, 2)
	assert.True(t, got["USD"].Equal(dec("100")))
	assert.True(t, got["LAK"].Equal(dec("2000000")))
}

func TestNormalize_IdentityCurrencyIsNeverScaled(t *testing.T) {
	// A bogus USD rate must not leak into the identity entry.
	rates := domain.RateTable{"USD": dec("3"), "LAK": dec("21000")}

	got := pricing.Normalize(dec("99.999"), rates, precisions)

	assert.Equal(t, "99.999", got["USD"].String(), "USD is neither multiplied nor rounded")
}

func TestNormalize_EmptyTable(t *testing.T) {
	for _, rates := range []domain.RateTable{nil, {}} {
		got := pricing.Normalize(dec("42"), rates, precisions)
		assert.Equal(t, domain.PriceMap{"USD": dec("42")}, got)
	}
}

func TestNormalize_RoundsToCurrencyPrecision(t *testing.T) {
	rates := domain.RateTable{"VND": dec("25431.7"), "THB": dec("35.123"), "EUR": dec("0.91234")}

	got := pricing.Normalize(dec("10.5"), rates, precisions)

	assert.Equal(t, "267033", got["VND"].String())
	assert.Equal(t, "368.79", got["THB"].String())
	assert.Equal(t, "9.58", got["EUR"].String(), "unregistered currency uses the default precision")
}

func TestNormalize_Deterministic(t *testing.T) {
	rates := domain.RateTable{"LAK": dec("21000"), "VND": dec("25000"), "THB": dec("35.5")}

	first := pricing.Normalize(dec("123.45"), rates, precisions)
	for i := 0; i < 20; i++ {
		assert.True(t, pricing.Equal(first, pricing.Normalize(dec("123.45"), rates, precisions)))
	}
}

func TestNewPrecisionTable(t *testing.T) {
	table := pricing.NewPrecisionTable([]domain.Currency{
		{CurrencyCode: "lak", Precision: 0},
		{CurrencyCode: "USD", Precision: 2},
	})

	assert.Equal(t, int32(0), table.For("LAK"))
	assert.Equal(t, int32(2), table.For("USD"))
	assert.Equal(t, int32(domain.DefaultCurrencyPrecision), table.For("JPY"))
}

func TestEqual(t *testing.T) {
	a := domain.PriceMap{"USD": dec("1.0")}
	assert.True(t, pricing.Equal(a, domain.PriceMap{"USD": dec("1")}))
	assert.False(t, pricing.Equal(a, domain.PriceMap{"USD": dec("1"), "LAK": dec("1")}))
	assert.False(t, pricing.Equal(a, domain.PriceMap{"LAK": dec("1")}))
}

func TestRefresh_KeepsCurrenciesMissingFromTable(t *testing.T) {
	existing := domain.PriceMap{
		"USD": decimal.NewFromInt(100),
		"LAK": decimal.NewFromInt(1),
		"THB": decimal.NewFromInt(3500),
	}
	rates := domain.RateTable{"LAK": decimal.NewFromInt(20000)}

	out := pricing.Refresh(existing, decimal.NewFromInt(100), rates, nil)

	assert.True(t, out["LAK"].Equal(decimal.NewFromInt(2000000)))
	assert.True(t, out["THB"].Equal(decimal.NewFromInt(3500)), "stale currency is carried over")
	assert.True(t, out["USD"].Equal(decimal.NewFromInt(100)))
	assert.True(t, existing["LAK"].Equal(decimal.NewFromInt(1)), "input is not mutated")
}

func TestRefresh_Converges(t *testing.T) {
	rates := domain.RateTable{"LAK": decimal.NewFromInt(20000), "VND": decimal.RequireFromString("25431.7")}
	base := decimal.RequireFromString("10.5")

	fromStale := pricing.Refresh(domain.PriceMap{"LAK": decimal.NewFromInt(7)}, base, rates, nil)
	fromEmpty := pricing.Refresh(nil, base, rates, nil)

	assert.True(t, pricing.Equal(fromStale, fromEmpty))
	assert.True(t, pricing.Equal(fromEmpty, pricing.Refresh(fromEmpty, base, rates, nil)))
}

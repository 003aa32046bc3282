package services

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/dto"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// PrecisionProvider yields the per-currency rounding table used by price normalization.
type PrecisionProvider interface {
	PrecisionTable(ctx context.Context) (pricing.PrecisionTable, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	PrecisionProvider
}

// RateTableSource yields the current USD->currency rate table.
type RateTableSource interface {
	RateTable(ctx context.Context) (domain.RateTable, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the rate row for one currency.
	GetExchangeRate(ctx context.Context, currencyCode string) (*domain.Rate, error)

	// ListExchangeRates retrieves every rate row.
	ListExchangeRates(ctx context.Context) ([]domain.Rate, error)

	RateTableSource
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// UpdateExchangeRate validates and upserts the USD->currency rate, then
	// schedules a price recalculation.
	UpdateExchangeRate(ctx context.Context, currencyCode string, rate decimal.Decimal, userID string) (*domain.Rate, error)

	// RemoveExchangeRate deletes the rate row for currencyCode.
	RemoveExchangeRate(ctx context.Context, currencyCode string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

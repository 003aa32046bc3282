package repositories

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the USD->currency rate row.
	FindExchangeRate(ctx context.Context, currencyCode string) (*domain.Rate, error)

	// ListExchangeRates retrieves every rate row ordered by currency code.
	ListExchangeRates(ctx context.Context) ([]domain.Rate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts or replaces the row for rate.CurrencyCode and
	// announces the change to listeners once the write has committed.
	UpsertExchangeRate(ctx context.Context, rate domain.Rate) error

	// RemoveExchangeRate deletes the row for currencyCode.
	RemoveExchangeRate(ctx context.Context, currencyCode string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}

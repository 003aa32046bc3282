package pgsql

import (
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every postgres repository. notifyChannel is the
// channel rate upserts are announced on; empty disables the announcement.
func NewRepositoryProvider(dbPool *pgxpool.Pool, notifyChannel string) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool, notifyChannel),
		ListingRepo:      newPgxListingRepository(dbPool),
		TranslationRepo:  newPgxTranslationRepository(dbPool),
	}
}

package services

import (
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/platform/config"
	"github.com/SscSPs/property_market_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The returned trigger must be started by the caller to process scheduled recalculations.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	translator portssvc.Translator,
	m *metrics.Metrics,
) (*portssvc.ServiceContainer, *RecalculationTrigger) {
	container := &portssvc.ServiceContainer{}

	currency := NewCurrencyService(repos.CurrencyRepo)
	container.Currency = currency

	job := NewRecalculationJob(repos.ListingRepo, currency, cfg.RecalcWorkers, m)
	trigger := NewRecalculationTrigger(nil, job)
	exchangeRate := NewExchangeRateService(repos.ExchangeRateRepo, trigger)
	trigger.SetRateSource(exchangeRate)
	container.ExchangeRate = exchangeRate
	container.Recalculation = trigger

	translations := NewTranslationCache(translator, repos.TranslationRepo, TranslationCacheConfig{
		Canonical:      cfg.CanonicalLanguage,
		Languages:      cfg.SupportedLanguages,
		MaxConcurrency: cfg.TranslatorMaxConcurrency,
		CallTimeout:    cfg.TranslatorTimeout,
	}, m)
	container.Translations = translations

	container.Listing = NewListingService(repos.ListingRepo, exchangeRate, currency, translations)
	container.Bank = NewContentService[domain.Bank](translations)
	container.Location = NewContentService[domain.Location](translations)
	container.News = NewContentService[domain.News](translations)
	container.NewsCategory = NewContentService[domain.NewsCategory](translations)

	return container, trigger
}

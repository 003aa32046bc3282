package services

import "github.com/SscSPs/property_market_app/internal/core/domain"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency      CurrencySvcFacade
	ExchangeRate  ExchangeRateSvcFacade
	Recalculation RecalculationSvc
	Translations  TranslationCacheSvc
	Listing       ListingSvcFacade
	Bank          ContentSvc[domain.Bank]
	Location      ContentSvc[domain.Location]
	News          ContentSvc[domain.News]
	NewsCategory  ContentSvc[domain.NewsCategory]
}

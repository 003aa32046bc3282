package mapping

import (
	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/models"
)

// ToModelExchangeRate converts a domain Rate to a model ExchangeRate
func ToModelExchangeRate(d domain.Rate) models.ExchangeRate {
	return models.ExchangeRate{
		CurrencyCode: d.CurrencyCode,
		Rate:         d.Rate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain Rate
func ToDomainExchangeRate(m models.ExchangeRate) domain.Rate {
	return domain.Rate{
		CurrencyCode: m.CurrencyCode,
		Rate:         m.Rate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts model rows to domain rates.
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.Rate {
	ds := make([]domain.Rate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}

package dto

import (
	"time"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateExchangeRateRequest sets the USD->currency rate named in the path.
type UpdateExchangeRateRequest struct {
	Rate *decimal.Decimal `json:"rate" binding:"required" swaggertype:"string" example:"20000"`
}

// ExchangeRateURI binds the currency path parameter.
type ExchangeRateURI struct {
	CurrencyCode string `uri:"currency" binding:"required,currencycode"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	BaseCurrencyCode string          `json:"baseCurrencyCode"`
	CurrencyCode     string          `json:"currencyCode"`
	Rate             decimal.Decimal `json:"rate" swaggertype:"string"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ListExchangeRatesResponse wraps the full rate table.
type ListExchangeRatesResponse struct {
	BaseCurrencyCode string                 `json:"baseCurrencyCode"`
	Rates            []ExchangeRateResponse `json:"rates"`
}

// ToExchangeRateResponse converts a domain.Rate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.Rate) ExchangeRateResponse {
	return ExchangeRateResponse{
		BaseCurrencyCode: domain.BaseCurrencyCode,
		CurrencyCode:     rate.CurrencyCode,
		Rate:             rate.Rate,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
		LastUpdatedAt:    rate.LastUpdatedAt,
		LastUpdatedBy:    rate.LastUpdatedBy,
	}
}

// ToListExchangeRatesResponse converts rate rows to the list response.
func ToListExchangeRatesResponse(rates []domain.Rate) ListExchangeRatesResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return ListExchangeRatesResponse{BaseCurrencyCode: domain.BaseCurrencyCode, Rates: responses}
}

// RecalculationReportResponse is returned by the synchronous recalculation endpoint.
type RecalculationReportResponse struct {
	StartedAt  time.Time                   `json:"startedAt"`
	DurationMS int64                       `json:"durationMs"`
	Processed  int                         `json:"processed"`
	Skipped    int                         `json:"skipped"`
	Failed     int                         `json:"failed"`
	Issues     []domain.RecalculationIssue `json:"issues"`
}

// ToRecalculationReportResponse converts a domain report to its DTO.
func ToRecalculationReportResponse(r domain.RecalculationReport) RecalculationReportResponse {
	issues := r.Issues
	if issues == nil {
		issues = []domain.RecalculationIssue{}
	}
	return RecalculationReportResponse{
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
		Processed:  r.Processed,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		Issues:     issues,
	}
}

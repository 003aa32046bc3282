package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for exchange rates.
type ExchangeRateService struct {
	BaseService
	rateRepo  portsrepo.ExchangeRateRepositoryFacade
	scheduler portssvc.RecalculationScheduler
}

// NewExchangeRateService creates a new ExchangeRateService. scheduler is told
// about every accepted rate change.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, scheduler portssvc.RecalculationScheduler) *ExchangeRateService {
	return &ExchangeRateService{
		BaseService: newBaseService("exchange_rate_service"),
		rateRepo:    rateRepo,
		scheduler:   scheduler,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// UpdateExchangeRate validates and upserts the USD->currency rate. Once the
// write has committed a recalculation is scheduled; the caller does not wait for it.
func (s *ExchangeRateService) UpdateExchangeRate(ctx context.Context, currencyCode string, rate decimal.Decimal, userID string) (*domain.Rate, error) {
	code := domain.NormalizeCurrencyCode(currencyCode)
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}
	if err := domain.ValidateRateValue(rate); err != nil {
		return nil, err
	}
	if domain.IsBaseCurrency(code) && !rate.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: the %s rate is fixed at 1", apperrors.ErrValidation, domain.BaseCurrencyCode)
	}

	now := time.Now().UTC()
	row := domain.Rate{
		CurrencyCode: code,
		Rate:         rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, row); err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate", "currency", code)
		return nil, fmt.Errorf("failed to update exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate updated", "currency", code, "rate", rate.String(), "user_id", userID)
	s.scheduler.Schedule(ctx)
	return &row, nil
}

// GetExchangeRate retrieves the rate row for one currency.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	code := domain.NormalizeCurrencyCode(currencyCode)
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get exchange rate", "currency", code)
		}
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates retrieves every rate row.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.Rate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.Rate{}, nil
	}
	return rates, nil
}

// RateTable returns the current rate table as a map.
func (s *ExchangeRateService) RateTable(ctx context.Context) (domain.RateTable, error) {
	rates, err := s.ListExchangeRates(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewRateTable(rates), nil
}

// RemoveExchangeRate deletes the rate row for currencyCode. Cached price maps
// keep their entries for the removed currency.
func (s *ExchangeRateService) RemoveExchangeRate(ctx context.Context, currencyCode string) error {
	code := domain.NormalizeCurrencyCode(currencyCode)
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return err
	}
	if domain.IsBaseCurrency(code) {
		return fmt.Errorf("%w: the %s rate cannot be removed", apperrors.ErrValidation, domain.BaseCurrencyCode)
	}

	if err := s.rateRepo.RemoveExchangeRate(ctx, code); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to remove exchange rate", "currency", code)
		}
		return fmt.Errorf("failed to remove exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate removed", "currency", code)
	return nil
}

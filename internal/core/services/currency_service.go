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
	"github.com/SscSPs/property_market_app/internal/dto"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
)

// maxCurrencyPrecision bounds the number of decimal places a currency may declare.
const maxCurrencyPrecision = 8

type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) *CurrencyService {
	return &CurrencyService{
		BaseService:  newBaseService("currency_service"),
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := domain.NormalizeCurrencyCode(req.CurrencyCode)
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	precision := domain.DefaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision < 0 || precision > maxCurrencyPrecision {
		return nil, fmt.Errorf("%w: precision must be between 0 and %d", apperrors.ErrValidation, maxCurrencyPrecision)
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", "currency", code)
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency saved", "currency", code, "precision", precision)
	return &currency, nil
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, domain.NormalizeCurrencyCode(currencyCode))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency", "currency", currencyCode)
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// PrecisionTable returns the rounding table built from the currency registry.
func (s *CurrencyService) PrecisionTable(ctx context.Context) (pricing.PrecisionTable, error) {
	currencies, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.NewPrecisionTable(currencies), nil
}

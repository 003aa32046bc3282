package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pm-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.Rate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rate), args.Error(1)
}

func (m *MockExchangeRateService) RateTable(ctx context.Context) (domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RateTable), args.Error(1)
}

func (m *MockExchangeRateService) UpdateExchangeRate(ctx context.Context, currencyCode string, rate decimal.Decimal, userID string) (*domain.Rate, error) {
	args := m.Called(ctx, currencyCode, rate, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockExchangeRateService) RemoveExchangeRate(ctx context.Context, currencyCode string) error {
	args := m.Called(ctx, currencyCode)
	return args.Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock RecalculationService ---
type MockRecalculationService struct {
	mock.Mock
}

func (m *MockRecalculationService) Schedule(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockRecalculationService) RunNow(ctx context.Context) (domain.RecalculationReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RecalculationReport), args.Error(1)
}

var _ portssvc.RecalculationSvc = (*MockRecalculationService)(nil)

// --- Mock ListingService ---
type MockListingService struct {
	mock.Mock
	canonical domain.Language
}

func (m *MockListingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) ChangePrice(ctx context.Context, listingID string, baseAmountUSD decimal.Decimal, userID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, baseAmountUSD, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) UpdateContent(ctx context.Context, listingID, title, description, userID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, title, description, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) SaveTranslations(ctx context.Context, entity domain.Listing) domain.TranslatableBlob {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(domain.TranslatableBlob)
}

// PickTranslatedContent applies the real selection rules so responses can be asserted on.
func (m *MockListingService) PickTranslatedContent(entity domain.Listing, requested string) domain.Listing {
	return domain.PickTranslated(entity, domain.ResolveLanguage(requested, m.canonical))
}

func (m *MockListingService) PickTranslatedContents(entities []domain.Listing, requested string) []domain.Listing {
	out := make([]domain.Listing, len(entities))
	for i, e := range entities {
		out[i] = m.PickTranslatedContent(e, requested)
	}
	return out
}

var _ portssvc.ListingSvcFacade = (*MockListingService)(nil)

// --- Mock PrecisionProvider ---
type MockPrecisionProvider struct {
	mock.Mock
}

func (m *MockPrecisionProvider) PrecisionTable(ctx context.Context) (pricing.PrecisionTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pricing.PrecisionTable), args.Error(1)
}

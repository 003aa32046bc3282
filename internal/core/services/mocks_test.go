package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.Rate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.Rate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) RemoveExchangeRate(ctx context.Context, currencyCode string) error {
	args := m.Called(ctx, currencyCode)
	return args.Error(0)
}

// --- Mock ListingRepository ---
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) FindAllWithPrice(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepository) SaveListingBatch(ctx context.Context, listings []domain.Listing) ([]string, error) {
	args := m.Called(ctx, listings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingRepository) AppendPriceHistory(ctx context.Context, listingID string, expectedVersion int64, entry domain.PriceHistoryEntry, price domain.PriceMap, updatedBy string) error {
	args := m.Called(ctx, listingID, expectedVersion, entry, price, updatedBy)
	return args.Error(0)
}

func (m *MockListingRepository) UpdateListingContent(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

// --- Mock TranslationRepository ---
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) SaveTranslations(ctx context.Context, subject domain.TranslationSubject, blob domain.TranslatableBlob) error {
	args := m.Called(ctx, subject, blob)
	return args.Error(0)
}

// --- Mock RecalculationScheduler ---
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(ctx context.Context) {
	m.Called(ctx)
}

// --- Mock RecalculationRunner ---
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, rates domain.RateTable) (domain.RecalculationReport, error) {
	args := m.Called(ctx, rates)
	return args.Get(0).(domain.RecalculationReport), args.Error(1)
}

// --- Mock RateTableSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) RateTable(ctx context.Context) (domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RateTable), args.Error(1)
}

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

// fakeTranslator is a goroutine-safe Translator driven by a function.
type fakeTranslator struct {
	mu    sync.Mutex
	calls []translateCall
	fn    func(ctx context.Context, text string, target domain.Language) (string, error)
}

type translateCall struct {
	Text   string
	Target domain.Language
}

func (f *fakeTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, translateCall{Text: text, Target: target})
	f.mu.Unlock()
	return f.fn(ctx, text, target)
}

func (f *fakeTranslator) Calls() []translateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]translateCall(nil), f.calls...)
}

// fakeTranslationCache records subjects and returns a fixed blob.
type fakeTranslationCache struct {
	mu        sync.Mutex
	canonical domain.Language
	blob      domain.TranslatableBlob
	subjects  []domain.TranslationSubject
}

func (f *fakeTranslationCache) SaveTranslations(_ context.Context, subject domain.TranslationSubject, _ []domain.Language) domain.TranslatableBlob {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return f.blob.Clone()
}

func (f *fakeTranslationCache) CanonicalLanguage() domain.Language {
	return f.canonical
}

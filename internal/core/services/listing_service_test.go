package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/core/services"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ListingServiceTestSuite struct {
	suite.Suite
	mockListingRepo *MockListingRepository
	mockRates       *MockRateSource
	mockPrecision   *MockPrecisionProvider
	translations    *fakeTranslationCache
	service         *services.ListingService
	t0              time.Time
}

func (suite *ListingServiceTestSuite) SetupTest() {
	suite.mockListingRepo = new(MockListingRepository)
	suite.mockRates = new(MockRateSource)
	suite.mockPrecision = new(MockPrecisionProvider)
	suite.mockPrecision.On("PrecisionTable", mock.Anything).Return(pricing.PrecisionTable{"LAK": 0}, nil).Maybe()
	suite.translations = &fakeTranslationCache{
		canonical: domain.LanguageEnglish,
		blob: domain.TranslatableBlob{
			domain.LanguageEnglish:    {domain.FieldTitle: "Apartment"},
			domain.LanguageVietnamese: {domain.FieldTitle: "Căn hộ"},
		},
	}
	suite.service = services.NewListingService(suite.mockListingRepo, suite.mockRates, suite.mockPrecision, suite.translations)
	suite.t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *ListingServiceTestSuite) existingListing() *domain.Listing {
	return &domain.Listing{
		ListingID:    "L1",
		Title:        "Apartment",
		PriceVersion: 4,
		Price:        domain.PriceMap{"USD": decimal.NewFromInt(100), "LAK": decimal.NewFromInt(2000000)},
		PriceHistory: []domain.PriceHistoryEntry{{
			EntryID:       "h1",
			BaseAmount:    decimal.NewFromInt(100),
			CapturedRates: domain.PriceMap{"USD": decimal.NewFromInt(100), "LAK": decimal.NewFromInt(2000000)},
			RecordedAt:    suite.t0,
		}},
	}
}

func (suite *ListingServiceTestSuite) TestChangePrice_AppendsSnapshotAndKeepsHistory() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil).Once()
	suite.mockRates.On("RateTable", ctx).Return(domain.RateTable{"LAK": decimal.NewFromInt(21000)}, nil).Once()

	var appended domain.PriceHistoryEntry
	suite.mockListingRepo.On("AppendPriceHistory", ctx, "L1", int64(4), mock.AnythingOfType("domain.PriceHistoryEntry"), mock.AnythingOfType("domain.PriceMap"), "seller").
		Run(func(args mock.Arguments) { appended = args.Get(3).(domain.PriceHistoryEntry) }).
		Return(nil).Once()

	listing, err := suite.service.ChangePrice(ctx, "L1", decimal.NewFromInt(150), "seller")

	suite.Require().NoError(err)
	suite.Require().Len(listing.PriceHistory, 2)
	suite.True(listing.PriceHistory[0].BaseAmount.Equal(decimal.NewFromInt(100)))
	suite.True(listing.PriceHistory[0].CapturedRates["LAK"].Equal(decimal.NewFromInt(2000000)), "older entries are not rewritten")
	suite.True(appended.BaseAmount.Equal(decimal.NewFromInt(150)))
	suite.True(appended.CapturedRates["LAK"].Equal(decimal.NewFromInt(3150000)))
	suite.True(appended.RecordedAt.After(suite.t0))
	suite.NotEmpty(appended.EntryID)
	suite.True(listing.Price["LAK"].Equal(decimal.NewFromInt(3150000)))
	suite.True(listing.Price["USD"].Equal(decimal.NewFromInt(150)))
	suite.NoError(listing.ValidatePriceShape())
}

func (suite *ListingServiceTestSuite) TestChangePrice_RejectsNegative() {
	listing, err := suite.service.ChangePrice(context.Background(), "L1", decimal.NewFromInt(-1), "seller")

	suite.Nil(listing)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockListingRepo.AssertNotCalled(suite.T(), "FindListingByID", mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestChangePrice_NotFound() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ChangePrice(ctx, "missing", decimal.NewFromInt(1), "seller")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ListingServiceTestSuite) TestChangePrice_RateTableUnavailable() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil).Once()
	suite.mockRates.On("RateTable", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.ChangePrice(ctx, "L1", decimal.NewFromInt(1), "seller")

	suite.ErrorIs(err, assert.AnError)
	suite.mockListingRepo.AssertNotCalled(suite.T(), "AppendPriceHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestChangePrice_EmptyRateTable() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil).Once()
	suite.mockRates.On("RateTable", ctx).Return(domain.RateTable{}, nil).Once()

	_, err := suite.service.ChangePrice(ctx, "L1", decimal.NewFromInt(1), "seller")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockListingRepo.AssertNotCalled(suite.T(), "AppendPriceHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestChangePrice_RetriesOnConcurrentChange() {
	ctx := context.Background()
	// Another writer set the price to 200 between the first read and the write.
	repriced := suite.existingListing()
	repriced.PriceVersion = 5
	repriced.Price = domain.PriceMap{"USD": decimal.NewFromInt(200), "LAK": decimal.NewFromInt(4400000)}
	repriced.PriceHistory = append(repriced.PriceHistory, domain.PriceHistoryEntry{
		EntryID:       "h2",
		BaseAmount:    decimal.NewFromInt(200),
		CapturedRates: domain.PriceMap{"USD": decimal.NewFromInt(200), "LAK": decimal.NewFromInt(4400000)},
		RecordedAt:    suite.t0.Add(time.Hour),
	})

	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil).Once()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(repriced, nil).Once()
	suite.mockRates.On("RateTable", ctx).Return(domain.RateTable{"LAK": decimal.NewFromInt(21000)}, nil).Once()
	suite.mockRates.On("RateTable", ctx).Return(domain.RateTable{"LAK": decimal.NewFromInt(22000)}, nil).Once()
	suite.mockListingRepo.On("AppendPriceHistory", ctx, "L1", int64(4), mock.Anything, mock.Anything, "seller").
		Return(apperrors.NewConflictError("price of listing L1 changed concurrently")).Once()
	suite.mockListingRepo.On("AppendPriceHistory", ctx, "L1", int64(5), mock.Anything, mock.Anything, "seller").
		Return(nil).Once()

	listing, err := suite.service.ChangePrice(ctx, "L1", decimal.NewFromInt(150), "seller")

	suite.Require().NoError(err)
	suite.Require().Len(listing.PriceHistory, 3)
	latest := listing.PriceHistory[2]
	suite.True(latest.BaseAmount.Equal(decimal.NewFromInt(150)))
	suite.True(latest.RecordedAt.After(suite.t0.Add(time.Hour)))
	suite.True(listing.Price["USD"].Equal(latest.BaseAmount))
	suite.True(listing.Price["LAK"].Equal(decimal.NewFromInt(3300000)), "retry uses the rate table read after the conflict")
	suite.Equal(int64(6), listing.PriceVersion)
	suite.mockListingRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestChangePrice_GivesUpAfterRepeatedConflicts() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil)
	suite.mockRates.On("RateTable", ctx).Return(domain.RateTable{"LAK": decimal.NewFromInt(21000)}, nil)
	suite.mockListingRepo.On("AppendPriceHistory", ctx, "L1", int64(4), mock.Anything, mock.Anything, "seller").
		Return(apperrors.NewConflictError("price of listing L1 changed concurrently"))

	_, err := suite.service.ChangePrice(ctx, "L1", decimal.NewFromInt(150), "seller")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockListingRepo.AssertNumberOfCalls(suite.T(), "AppendPriceHistory", 3)
}

func (suite *ListingServiceTestSuite) TestUpdateContent_StoresTextAndTranslations() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil).Once()
	suite.mockListingRepo.On("UpdateListingContent", ctx, mock.MatchedBy(func(l domain.Listing) bool {
		return l.Title == "Apartment" && l.Description == "Two bedrooms" && l.LastUpdatedBy == "seller"
	})).Return(nil).Once()

	listing, err := suite.service.UpdateContent(ctx, "L1", " Apartment ", "Two bedrooms", "seller")

	suite.Require().NoError(err)
	suite.Equal("Căn hộ", listing.Translations[domain.LanguageVietnamese][domain.FieldTitle])
	suite.Require().Len(suite.translations.subjects, 1)
	suite.Equal(domain.EntityRef{Type: domain.EntityListing, ID: "L1"}, suite.translations.subjects[0].Ref)
	suite.Equal("Two bedrooms", suite.translations.subjects[0].Fields[domain.FieldDescription])
}

func (suite *ListingServiceTestSuite) TestUpdateContent_RequiresTitle() {
	_, err := suite.service.UpdateContent(context.Background(), "L1", "  ", "x", "seller")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.translations.subjects)
}

func (suite *ListingServiceTestSuite) TestUpdateContent_RepoErrorSkipsTranslation() {
	ctx := context.Background()
	suite.mockListingRepo.On("FindListingByID", ctx, "L1").Return(suite.existingListing(), nil).Once()
	suite.mockListingRepo.On("UpdateListingContent", ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.UpdateContent(ctx, "L1", "Apartment", "", "seller")

	suite.ErrorIs(err, assert.AnError)
	suite.Empty(suite.translations.subjects)
}

func (suite *ListingServiceTestSuite) TestPickTranslatedContent() {
	listing := *suite.existingListing()
	listing.Translations = domain.TranslatableBlob{
		domain.LanguageEnglish:    {domain.FieldTitle: "Apartment"},
		domain.LanguageVietnamese: {domain.FieldTitle: "Căn hộ"},
	}

	tests := []struct {
		requested string
		want      string
	}{
		{"vi", "Căn hộ"},
		{"VND", "Căn hộ"},
		{"LAK", "Apartment"},
		{"lo", "Apartment"},
		{"fr", "Apartment"},
		{"", "Apartment"},
	}
	for _, tt := range tests {
		suite.Run(tt.requested, func() {
			suite.Equal(tt.want, suite.service.PickTranslatedContent(listing, tt.requested).Title)
		})
	}
}

func (suite *ListingServiceTestSuite) TestGetListing_RequiresID() {
	_, err := suite.service.GetListing(context.Background(), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestListingService(t *testing.T) {
	suite.Run(t, new(ListingServiceTestSuite))
}

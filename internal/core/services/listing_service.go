package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxPriceChangeAttempts = 3

// ListingService owns writes to a listing's canonical price and text.
type ListingService struct {
	BaseService
	*ContentService[domain.Listing]
	listingRepo portsrepo.ListingRepositoryFacade
	rates       portssvc.RateTableSource
	precision   portssvc.PrecisionProvider
}

// NewListingService creates a ListingService.
func NewListingService(
	listingRepo portsrepo.ListingRepositoryFacade,
	rates portssvc.RateTableSource,
	precision portssvc.PrecisionProvider,
	translations portssvc.TranslationCacheSvc,
) *ListingService {
	return &ListingService{
		BaseService:    newBaseService("listing_service"),
		ContentService: NewContentService[domain.Listing](translations),
		listingRepo:    listingRepo,
		rates:          rates,
		precision:      precision,
	}
}

var _ portssvc.ListingSvcFacade = (*ListingService)(nil)

// GetListing retrieves one listing with its price history.
func (s *ListingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	if strings.TrimSpace(listingID) == "" {
		return nil, fmt.Errorf("%w: listing id is required", apperrors.ErrValidation)
	}
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get listing", "listing_id", listingID)
		}
		return nil, fmt.Errorf("failed to get listing in service: %w", err)
	}
	return listing, nil
}

// ChangePrice records baseAmountUSD as the listing's new canonical price.
// A history entry is appended with a snapshot of the current rate table, and
// the current price map is rebuilt from the same snapshot. Existing history
// entries are untouched. When another writer changes the price first, the
// listing and the rate table are read again and the change is retried.
func (s *ListingService) ChangePrice(ctx context.Context, listingID string, baseAmountUSD decimal.Decimal, userID string) (*domain.Listing, error) {
	if baseAmountUSD.IsNegative() {
		return nil, fmt.Errorf("%w: base amount must not be negative, got %s", apperrors.ErrValidation, baseAmountUSD)
	}

	for attempt := 1; ; attempt++ {
		listing, err := s.tryChangePrice(ctx, listingID, baseAmountUSD, userID)
		if err == nil {
			s.LogInfo(ctx, "Listing price changed", "listing_id", listingID, "base_amount_usd", baseAmountUSD.String())
			return listing, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) || attempt == maxPriceChangeAttempts {
			return nil, err
		}
		s.LogDebug(ctx, "Listing price changed concurrently, retrying", "listing_id", listingID, "attempt", attempt)
	}
}

func (s *ListingService) tryChangePrice(ctx context.Context, listingID string, baseAmountUSD decimal.Decimal, userID string) (*domain.Listing, error) {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	rates, err := s.rates.RateTable(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rate table for price change", "listing_id", listingID)
		return nil, fmt.Errorf("failed to load rate table: %w", err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no exchange rates configured", apperrors.ErrValidation)
	}
	precision, err := s.precision.PrecisionTable(ctx)
	if err != nil {
		s.LogWarn(ctx, err, "Currency precision unavailable, using default precision")
		precision = pricing.PrecisionTable{}
	}

	now := time.Now().UTC()
	if latest, ok := listing.LatestHistoryEntry(); ok && !now.After(latest.RecordedAt) {
		now = latest.RecordedAt.Add(time.Microsecond)
	}
	price := pricing.Normalize(baseAmountUSD, rates, precision)
	entry := domain.PriceHistoryEntry{
		EntryID:       uuid.NewString(),
		BaseAmount:    baseAmountUSD,
		CapturedRates: pricing.Normalize(baseAmountUSD, rates, precision),
		RecordedAt:    now,
	}

	err = s.listingRepo.AppendPriceHistory(ctx, listing.ListingID, listing.PriceVersion, entry, price, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to append price history", "listing_id", listingID)
		}
		return nil, fmt.Errorf("failed to change listing price in service: %w", err)
	}

	listing.Price = price
	listing.PriceHistory = append(listing.PriceHistory, entry)
	listing.PriceVersion++
	listing.LastUpdatedAt = now
	listing.LastUpdatedBy = userID
	return listing, nil
}

// UpdateContent stores new canonical text and refreshes the translation blob.
// Translation problems never fail the update.
func (s *ListingService) UpdateContent(ctx context.Context, listingID, title, description, userID string) (*domain.Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	listing.Title = title
	listing.Description = strings.TrimSpace(description)
	listing.LastUpdatedAt = time.Now().UTC()
	listing.LastUpdatedBy = userID

	if err := s.listingRepo.UpdateListingContent(ctx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to update listing content", "listing_id", listingID)
		return nil, fmt.Errorf("failed to update listing content in service: %w", err)
	}

	listing.Translations = s.SaveTranslations(ctx, *listing)
	s.LogInfo(ctx, "Listing content updated", "listing_id", listingID, "languages", len(listing.Translations))
	return listing, nil
}

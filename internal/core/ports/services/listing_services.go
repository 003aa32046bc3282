package services

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListingReaderSvc defines read operations for listings
type ListingReaderSvc interface {
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
}

// ListingWriterSvc defines write operations for listings
type ListingWriterSvc interface {
	// ChangePrice appends a history entry for the new base amount with a fresh
	// snapshot of the rate table and refreshes the current price map.
	ChangePrice(ctx context.Context, listingID string, baseAmountUSD decimal.Decimal, userID string) (*domain.Listing, error)

	// UpdateContent stores new canonical text and refreshes the translations.
	UpdateContent(ctx context.Context, listingID, title, description, userID string) (*domain.Listing, error)
}

// ListingSvcFacade combines all listing-related service interfaces
type ListingSvcFacade interface {
	ListingReaderSvc
	ListingWriterSvc
	ContentSvc[domain.Listing]
}

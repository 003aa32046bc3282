package repositories

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
)

// ListingReader defines read operations for listings
type ListingReader interface {
	// FindListingByID retrieves one listing with its full price history.
	FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error)

	// FindAllWithPrice retrieves every listing that has a current price or at
	// least one history entry, each with its full history in recorded order.
	FindAllWithPrice(ctx context.Context) ([]domain.Listing, error)
}

// ListingWriter defines write operations for listings
type ListingWriter interface {
	// SaveListingBatch persists the derived price maps of every listing in one
	// transaction: the current price and each history entry's captured rates.
	// History base amounts are never written. Each written listing's
	// PriceVersion is bumped. A listing whose PriceVersion no longer matches
	// the stored one, or that no longer exists, is left untouched and its id
	// is returned in stale.
	SaveListingBatch(ctx context.Context, listings []domain.Listing) (stale []string, err error)

	// AppendPriceHistory records a new canonical price: it inserts entry,
	// replaces the listing's current price map and bumps its PriceVersion.
	// It fails with apperrors.ErrConflict when the stored PriceVersion is not
	// expectedVersion.
	AppendPriceHistory(ctx context.Context, listingID string, expectedVersion int64, entry domain.PriceHistoryEntry, price domain.PriceMap, updatedBy string) error

	// UpdateListingContent replaces the canonical-language title and description.
	UpdateListingContent(ctx context.Context, listing domain.Listing) error
}

// ListingRepositoryFacade combines all listing-related repository interfaces
type ListingRepositoryFacade interface {
	ListingReader
	ListingWriter
}

// ListingRepositoryWithTx extends ListingRepositoryFacade with transaction capabilities
type ListingRepositoryWithTx interface {
	ListingRepositoryFacade
	TransactionManager
}

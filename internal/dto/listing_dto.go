package dto

import (
	"time"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/utils"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

// ChangeListingPriceRequest sets a new canonical price in the base currency.
type ChangeListingPriceRequest struct {
	BaseAmountUSD *decimal.Decimal `json:"baseAmountUSD" binding:"required" swaggertype:"string" example:"100"`
}

// UpdateListingContentRequest replaces the canonical-language text of a listing.
type UpdateListingContentRequest struct {
	Title       string `json:"title" binding:"required,max=500"`
	Description string `json:"description" binding:"max=20000"`
}

// ListingQuery binds the read-side query parameters of a listing.
type ListingQuery struct {
	// Lang is a language code; a legacy currency code is accepted as a hint.
	Lang string `form:"lang"`
	// Currency is the legacy parameter that doubled as a language hint.
	Currency string `form:"currency"`
}

// Requested returns the language hint, preferring lang over currency.
func (q ListingQuery) Requested() string {
	if q.Lang != "" {
		return q.Lang
	}
	return q.Currency
}

// PriceHistoryEntryResponse is one history entry as served to clients.
type PriceHistoryEntryResponse struct {
	EntryID       string            `json:"entryID"`
	BaseAmount    string            `json:"baseAmount"`
	CapturedRates map[string]string `json:"capturedRates"`
	RecordedAt    time.Time         `json:"recordedAt"`
}

// ListingResponse is a listing rendered in one language.
type ListingResponse struct {
	ListingID     string                      `json:"listingID"`
	Language      domain.Language             `json:"language"`
	Title         string                      `json:"title"`
	Description   string                      `json:"description"`
	Price         map[string]string           `json:"price"`
	PriceHistory  []PriceHistoryEntryResponse `json:"priceHistory"`
	LastUpdatedAt time.Time                   `json:"lastUpdatedAt"`
	LastUpdatedBy string                      `json:"lastUpdatedBy"`
}

// ToListingResponse converts an already language-picked listing to its DTO.
// Amounts are rendered at each currency's registered precision.
func ToListingResponse(l domain.Listing, lang domain.Language, precision pricing.PrecisionTable) ListingResponse {
	history := make([]PriceHistoryEntryResponse, len(l.PriceHistory))
	for i, e := range l.PriceHistory {
		history[i] = PriceHistoryEntryResponse{
			EntryID:       e.EntryID,
			BaseAmount:    utils.FormatWithPrecision(e.BaseAmount, precision.For(domain.BaseCurrencyCode)),
			CapturedRates: utils.FormatPriceMap(e.CapturedRates, precision),
			RecordedAt:    e.RecordedAt,
		}
	}
	return ListingResponse{
		ListingID:     l.ListingID,
		Language:      lang,
		Title:         l.Title,
		Description:   l.Description,
		Price:         utils.FormatPriceMap(l.Price, precision),
		PriceHistory:  history,
		LastUpdatedAt: l.LastUpdatedAt,
		LastUpdatedBy: l.LastUpdatedBy,
	}
}

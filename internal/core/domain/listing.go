package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMalformedListing marks a listing whose price data cannot be recomputed.
var ErrMalformedListing = errors.New("malformed listing price data")

// PriceMap is a multi-currency view of one amount: {currency -> amount}.
type PriceMap map[string]decimal.Decimal

// PriceHistoryEntry is appended whenever a listing's canonical price changes.
// BaseAmount is the historical fact and is never rewritten; CapturedRates is a
// cache recomputed in bulk by the recalculation job.
type PriceHistoryEntry struct {
	EntryID       string          `json:"entryID"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	CapturedRates PriceMap        `json:"capturedRates"`
	RecordedAt    time.Time       `json:"recordedAt"`
}

// Listing is the property listing aggregate, restricted to what the
// consistency layer reads and writes.
type Listing struct {
	ListingID    string              `json:"listingID"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Price        PriceMap            `json:"price"`
	PriceHistory []PriceHistoryEntry `json:"priceHistory"`
	Translations TranslatableBlob    `json:"translations,omitempty"`
	// PriceVersion increases with every write of the current price. Writers
	// compare it to the stored one to detect a concurrent change.
	PriceVersion int64 `json:"-"`
	// DecodeIssues lists stored price data that could not be decoded when the
	// listing was loaded.
	DecodeIssues []string `json:"-"`
	AuditFields
}

// Validate checks the shape of a history entry.
func (e PriceHistoryEntry) Validate() error {
	if e.EntryID == "" {
		return fmt.Errorf("%w: history entry without id", ErrMalformedListing)
	}
	if e.BaseAmount.IsNegative() {
		return fmt.Errorf("%w: history entry %s has negative base amount %s", ErrMalformedListing, e.EntryID, e.BaseAmount)
	}
	if e.RecordedAt.IsZero() {
		return fmt.Errorf("%w: history entry %s has no timestamp", ErrMalformedListing, e.EntryID)
	}
	return nil
}

// ValidatePriceShape reports the first structural problem with the listing's price data.
func (l Listing) ValidatePriceShape() error {
	if len(l.DecodeIssues) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedListing, l.DecodeIssues[0])
	}
	if usd, ok := l.Price[BaseCurrencyCode]; ok && usd.IsNegative() {
		return fmt.Errorf("%w: negative %s price %s", ErrMalformedListing, BaseCurrencyCode, usd)
	}
	for i, entry := range l.PriceHistory {
		if err := entry.Validate(); err != nil {
			return err
		}
		if i > 0 && entry.RecordedAt.Before(l.PriceHistory[i-1].RecordedAt) {
			return fmt.Errorf("%w: history entry %s is out of order", ErrMalformedListing, entry.EntryID)
		}
	}
	return nil
}

// BaseAmountUSD returns the most recently known base-currency amount:
// the current price's USD value when present, else the latest history entry's BaseAmount.
func (l Listing) BaseAmountUSD() (decimal.Decimal, bool) {
	if usd, ok := l.Price[BaseCurrencyCode]; ok {
		return usd, true
	}
	if n := len(l.PriceHistory); n > 0 {
		return l.PriceHistory[n-1].BaseAmount, true
	}
	return decimal.Zero, false
}

// LatestHistoryEntry returns the newest history entry, if any.
func (l Listing) LatestHistoryEntry() (PriceHistoryEntry, bool) {
	if n := len(l.PriceHistory); n > 0 {
		return l.PriceHistory[n-1], true
	}
	return PriceHistoryEntry{}, false
}

func (l Listing) TranslationSubject() TranslationSubject {
	return TranslationSubject{
		Ref: EntityRef{Type: EntityListing, ID: l.ListingID},
		Fields: TranslatedFields{
			FieldTitle:       l.Title,
			FieldDescription: l.Description,
		},
	}
}

func (l Listing) TranslationBlob() TranslatableBlob { return l.Translations }

func (l Listing) WithTranslatedFields(fields TranslatedFields) Listing {
	l.Title = fields.overlay(FieldTitle, l.Title)
	l.Description = fields.overlay(FieldDescription, l.Description)
	return l
}

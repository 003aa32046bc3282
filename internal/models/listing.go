package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a row of the listings table. JSON columns are kept raw and
// decoded in the mapping layer so one bad row cannot fail a whole scan.
type Listing struct {
	ListingID    string `db:"listing_id"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	Price        []byte `db:"price"`
	Translations []byte `db:"translations"`
	PriceVersion int64  `db:"price_version"`
	AuditFields
}

// ListingVersion is the lock row read before derived prices are written.
type ListingVersion struct {
	ListingID    string `db:"listing_id"`
	PriceVersion int64  `db:"price_version"`
}

// PriceHistoryEntry is a row of the listing_price_history table.
type PriceHistoryEntry struct {
	EntryID       string              `db:"entry_id"`
	ListingID     string              `db:"listing_id"`
	BaseAmount    decimal.NullDecimal `db:"base_amount"`
	CapturedRates []byte              `db:"captured_rates"`
	RecordedAt    time.Time           `db:"recorded_at"`
}

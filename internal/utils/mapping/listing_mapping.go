package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/models"
)

// ToDomainListing assembles a listing from its row and its history rows, which
// must already be ordered by recorded_at. Stored data that cannot be decoded
// is reported in DecodeIssues; undecodable captured rates and translation
// blobs are treated as absent since both are rebuilt on the next write.
func ToDomainListing(m models.Listing, history []models.PriceHistoryEntry) domain.Listing {
	l := domain.Listing{
		ListingID:    m.ListingID,
		Title:        m.Title,
		Description:  m.Description,
		PriceVersion: m.PriceVersion,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}

	if price, err := DecodePriceMap(m.Price); err != nil {
		l.DecodeIssues = append(l.DecodeIssues, fmt.Sprintf("current price: %v", err))
	} else {
		l.Price = price
	}

	if blob, err := DecodeTranslatableBlob(m.Translations); err == nil {
		l.Translations = blob
	}

	l.PriceHistory = make([]domain.PriceHistoryEntry, 0, len(history))
	for _, h := range history {
		if !h.BaseAmount.Valid {
			l.DecodeIssues = append(l.DecodeIssues, fmt.Sprintf("history entry %s has no base amount", h.EntryID))
			continue
		}
		captured, err := DecodePriceMap(h.CapturedRates)
		if err != nil {
			captured = nil
		}
		l.PriceHistory = append(l.PriceHistory, domain.PriceHistoryEntry{
			EntryID:       h.EntryID,
			BaseAmount:    h.BaseAmount.Decimal,
			CapturedRates: captured,
			RecordedAt:    h.RecordedAt,
		})
	}
	return l
}

// GroupHistoryByListing splits history rows by listing id, keeping their order.
func GroupHistoryByListing(rows []models.PriceHistoryEntry) map[string][]models.PriceHistoryEntry {
	out := make(map[string][]models.PriceHistoryEntry)
	for _, r := range rows {
		out[r.ListingID] = append(out[r.ListingID], r)
	}
	return out
}

// EncodePriceMap serialises a price map for a jsonb column. A nil map encodes as SQL NULL.
func EncodePriceMap(p domain.PriceMap) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// DecodePriceMap parses a jsonb price map. NULL decodes to a nil map.
func DecodePriceMap(raw []byte) (domain.PriceMap, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var p domain.PriceMap
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeTranslatableBlob serialises a blob for a jsonb column.
func EncodeTranslatableBlob(b domain.TranslatableBlob) ([]byte, error) {
	if b == nil {
		b = domain.TranslatableBlob{}
	}
	return json.Marshal(b)
}

// DecodeTranslatableBlob parses a jsonb translation blob. NULL decodes to a nil blob.
func DecodeTranslatableBlob(raw []byte) (domain.TranslatableBlob, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var b domain.TranslatableBlob
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return b, nil
}

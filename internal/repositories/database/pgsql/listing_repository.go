package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_market_app/internal/models"
	"github.com/SscSPs/property_market_app/internal/utils/mapping"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	listingColumns = []string{
		"l.listing_id", "l.title", "l.description", "l.price", "l.translations", "l.price_version",
		"l.created_at", "l.created_by", "l.last_updated_at", "l.last_updated_by",
	}
	historyColumns = []string{
		"entry_id", "listing_id", "base_amount", "captured_rates", "recorded_at",
	}
)

// PgxListingRepository stores listings and their price history.
type PgxListingRepository struct {
	BaseRepository
}

func newPgxListingRepository(pool *pgxpool.Pool) portsrepo.ListingRepositoryWithTx {
	return &PgxListingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ListingRepositoryWithTx = (*PgxListingRepository)(nil)

// FindListingByID retrieves one listing with its history.
func (r *PgxListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	query, args, err := r.Builder().
		Select(listingColumns...).
		From("listings l").
		Where(squirrel.Eq{"l.listing_id": listingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build listing query: %w", err)
	}

	var m models.Listing
	if err := pgxscan.Get(ctx, r.Pool, &m, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("listing " + listingID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find listing", err)
	}

	history, err := r.loadHistory(ctx, []string{listingID})
	if err != nil {
		return nil, err
	}

	l := mapping.ToDomainListing(m, history)
	return &l, nil
}

// FindAllWithPrice retrieves every listing that carries price data.
func (r *PgxListingRepository) FindAllWithPrice(ctx context.Context) ([]domain.Listing, error) {
	query, args, err := r.Builder().
		Select(listingColumns...).
		From("listings l").
		Where(squirrel.Or{
			squirrel.NotEq{"l.price": nil},
			squirrel.Expr("EXISTS (SELECT 1 FROM listing_price_history h WHERE h.listing_id = l.listing_id)"),
		}).
		OrderBy("l.listing_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build priced listings query: %w", err)
	}

	var rows []models.Listing
	if err := pgxscan.Select(ctx, r.Pool, &rows, query, args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to load priced listings", err)
	}
	if len(rows) == 0 {
		return []domain.Listing{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ListingID
	}
	history, err := r.loadHistory(ctx, ids)
	if err != nil {
		return nil, err
	}
	byListing := mapping.GroupHistoryByListing(history)

	listings := make([]domain.Listing, len(rows))
	for i, row := range rows {
		listings[i] = mapping.ToDomainListing(row, byListing[row.ListingID])
	}
	return listings, nil
}

func (r *PgxListingRepository) loadHistory(ctx context.Context, listingIDs []string) ([]models.PriceHistoryEntry, error) {
	query, args, err := r.Builder().
		Select(historyColumns...).
		From("listing_price_history").
		Where(squirrel.Expr("listing_id = ANY(?)", listingIDs)).
		OrderBy("listing_id", "recorded_at", "entry_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build price history query: %w", err)
	}

	var rows []models.PriceHistoryEntry
	if err := pgxscan.Select(ctx, r.Pool, &rows, query, args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to load price history", err)
	}
	return rows, nil
}

// SaveListingBatch writes derived price maps in one transaction and one round
// trip. The listed rows are locked first; rows whose price version moved
// since they were read are reported as stale and not written.
func (r *PgxListingRepository) SaveListingBatch(ctx context.Context, listings []domain.Listing) ([]string, error) {
	if len(listings) == 0 {
		return nil, nil
	}

	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ListingID
	}
	lockQuery, lockArgs, err := buildPriceVersionLock(r.Builder(), ids)
	if err != nil {
		return nil, fmt.Errorf("build price version lock: %w", err)
	}

	var stale []string
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		var rows []models.ListingVersion
		if err := pgxscan.Select(ctx, tx, &rows, lockQuery, lockArgs...); err != nil {
			return apperrors.NewAppError(500, "failed to lock listings", err)
		}
		versions := make(map[string]int64, len(rows))
		for _, row := range rows {
			versions[row.ListingID] = row.PriceVersion
		}

		batch, skipped, err := planListingBatch(listings, versions)
		if err != nil {
			return err
		}
		stale = skipped
		if batch.Len() == 0 {
			return nil
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return apperrors.NewAppError(500, "failed to save listing prices", err)
			}
		}
		if err := results.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to save listing prices", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stale, nil
}

func buildPriceVersionLock(b squirrel.StatementBuilderType, ids []string) (string, []any, error) {
	return b.Select("listing_id", "price_version").
		From("listings").
		Where(squirrel.Expr("listing_id = ANY(?)", ids)).
		OrderBy("listing_id").
		Suffix("FOR UPDATE").
		ToSql()
}

// planListingBatch queues the price updates of every listing whose
// PriceVersion equals versions[ListingID] and returns the ids of the others.
func planListingBatch(listings []domain.Listing, versions map[string]int64) (*pgx.Batch, []string, error) {
	batch := &pgx.Batch{}
	var stale []string
	for _, l := range listings {
		if v, ok := versions[l.ListingID]; !ok || v != l.PriceVersion {
			stale = append(stale, l.ListingID)
			continue
		}

		price, err := mapping.EncodePriceMap(l.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("encode price of listing %s: %w", l.ListingID, err)
		}
		batch.Queue(`UPDATE listings SET price = $1, price_version = price_version + 1 WHERE listing_id = $2`, price, l.ListingID)

		for _, h := range l.PriceHistory {
			captured, err := mapping.EncodePriceMap(h.CapturedRates)
			if err != nil {
				return nil, nil, fmt.Errorf("encode captured rates of entry %s: %w", h.EntryID, err)
			}
			batch.Queue(
				`UPDATE listing_price_history SET captured_rates = $1 WHERE entry_id = $2 AND listing_id = $3`,
				captured, h.EntryID, l.ListingID,
			)
		}
	}
	return batch, stale, nil
}

// AppendPriceHistory inserts a history entry, replaces the current price and
// bumps the price version. The row is locked while its version is checked.
func (r *PgxListingRepository) AppendPriceHistory(ctx context.Context, listingID string, expectedVersion int64, entry domain.PriceHistoryEntry, price domain.PriceMap, updatedBy string) error {
	captured, err := mapping.EncodePriceMap(entry.CapturedRates)
	if err != nil {
		return fmt.Errorf("encode captured rates: %w", err)
	}
	current, err := mapping.EncodePriceMap(price)
	if err != nil {
		return fmt.Errorf("encode price: %w", err)
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		var version int64
		err := tx.QueryRow(ctx,
			`SELECT price_version FROM listings WHERE listing_id = $1 FOR UPDATE`, listingID,
		).Scan(&version)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("listing " + listingID + " not found")
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to lock listing", err)
		}
		if version != expectedVersion {
			return apperrors.NewConflictError(fmt.Sprintf("price of listing %s changed concurrently", listingID))
		}

		_, err = tx.Exec(ctx,
			`UPDATE listings
			SET price = $1, price_version = price_version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE listing_id = $4`,
			current, time.Now().UTC(), updatedBy, listingID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update listing price", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO listing_price_history (entry_id, listing_id, base_amount, captured_rates, recorded_at)
			VALUES ($1, $2, $3, $4, $5)`,
			entry.EntryID, listingID, entry.BaseAmount, captured, entry.RecordedAt,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to append price history", err)
		}
		return nil
	})
}

// UpdateListingContent replaces the canonical title and description.
func (r *PgxListingRepository) UpdateListingContent(ctx context.Context, listing domain.Listing) error {
	query, args, err := r.Builder().
		Update("listings").
		Set("title", listing.Title).
		Set("description", listing.Description).
		Set("last_updated_at", listing.LastUpdatedAt).
		Set("last_updated_by", listing.LastUpdatedBy).
		Where(squirrel.Eq{"listing_id": listing.ListingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build listing content update: %w", err)
	}

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update listing content", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("listing " + listing.ListingID + " not found")
	}
	return nil
}

package pgsql

import (
	"context"
	"fmt"

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

var exchangeRateColumns = []string{
	"currency_code", "rate", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

// PgxExchangeRateRepository stores the USD->currency rate table.
type PgxExchangeRateRepository struct {
	BaseRepository
	notifyChannel string
}

// newPgxExchangeRateRepository creates the repository. When notifyChannel is
// set, every committed upsert emits a NOTIFY carrying the currency code.
func newPgxExchangeRateRepository(pool *pgxpool.Pool, notifyChannel string) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
		notifyChannel:  notifyChannel,
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// FindExchangeRate retrieves the rate row for one currency.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	query, args, err := r.Builder().
		Select(exchangeRateColumns...).
		From("exchange_rates").
		Where(squirrel.Eq{"currency_code": currencyCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exchange rate query: %w", err)
	}

	var m models.ExchangeRate
	if err := pgxscan.Get(ctx, r.Pool, &m, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("exchange rate for " + currencyCode + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates retrieves the whole rate table ordered by currency code.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.Rate, error) {
	query, args, err := r.Builder().
		Select(exchangeRateColumns...).
		From("exchange_rates").
		OrderBy("currency_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exchange rate list query: %w", err)
	}

	var rows []models.ExchangeRate
	if err := pgxscan.Select(ctx, r.Pool, &rows, query, args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	return mapping.ToDomainExchangeRateSlice(rows), nil
}

// UpsertExchangeRate writes the row and queues the change notification in the
// same transaction, so listeners only hear about committed rates.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.Rate) error {
	m := mapping.ToModelExchangeRate(rate)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO exchange_rates (currency_code, rate, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (currency_code) DO UPDATE SET
				rate = EXCLUDED.rate,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by`,
			m.CurrencyCode, m.Rate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save exchange rate", err)
		}

		return r.notify(ctx, tx, m.CurrencyCode)
	})
}

// RemoveExchangeRate deletes the row for currencyCode and announces the
// removal the same way upserts are announced.
func (r *PgxExchangeRateRepository) RemoveExchangeRate(ctx context.Context, currencyCode string) error {
	query, args, err := r.Builder().
		Delete("exchange_rates").
		Where(squirrel.Eq{"currency_code": currencyCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build exchange rate delete: %w", err)
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return apperrors.NewAppError(500, "failed to remove exchange rate", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("exchange rate for " + currencyCode + " not found")
		}
		return r.notify(ctx, tx, currencyCode)
	})
}

func (r *PgxExchangeRateRepository) notify(ctx context.Context, tx pgx.Tx, currencyCode string) error {
	if r.notifyChannel == "" {
		return nil
	}
	if _, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", r.notifyChannel, currencyCode); err != nil {
		return apperrors.NewAppError(500, "failed to queue exchange rate notification", err)
	}
	return nil
}

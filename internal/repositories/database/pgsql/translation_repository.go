package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_market_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type translationTarget struct {
	table    string
	idColumn string
	// fields are the source columns; each is named after its TextField.
	fields map[domain.TextField]bool
}

var translationTargets = map[domain.EntityType]translationTarget{
	domain.EntityListing: {table: "listings", idColumn: "listing_id",
		fields: map[domain.TextField]bool{domain.FieldTitle: true, domain.FieldDescription: true}},
	domain.EntityBank: {table: "banks", idColumn: "bank_id",
		fields: map[domain.TextField]bool{domain.FieldName: true, domain.FieldDescription: true}},
	domain.EntityLocation: {table: "locations", idColumn: "location_id",
		fields: map[domain.TextField]bool{domain.FieldName: true}},
	domain.EntityNews: {table: "news", idColumn: "news_id",
		fields: map[domain.TextField]bool{domain.FieldTitle: true, domain.FieldSummary: true, domain.FieldContent: true}},
	domain.EntityNewsCategory: {table: "news_categories", idColumn: "category_id",
		fields: map[domain.TextField]bool{domain.FieldName: true}},
}

// PgxTranslationRepository writes translation blobs onto their owning rows.
type PgxTranslationRepository struct {
	BaseRepository
}

func newPgxTranslationRepository(pool *pgxpool.Pool) portsrepo.TranslationWriter {
	return &PgxTranslationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TranslationWriter = (*PgxTranslationRepository)(nil)

// SaveTranslations replaces the owner's translations column when its source
// columns still hold the text that was translated.
func (r *PgxTranslationRepository) SaveTranslations(ctx context.Context, subject domain.TranslationSubject, blob domain.TranslatableBlob) error {
	query, args, err := buildTranslationUpdate(r.Builder(), subject, blob)
	if err != nil {
		return err
	}

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save translations", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	existsQuery, existsArgs, err := buildOwnerExists(r.Builder(), subject.Ref)
	if err != nil {
		return err
	}
	var exists bool
	if err := r.Pool.QueryRow(ctx, existsQuery, existsArgs...).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check translation owner", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", subject.Ref.Type, subject.Ref.ID))
	}
	return apperrors.NewConflictError(fmt.Sprintf("%s %s text changed during translation", subject.Ref.Type, subject.Ref.ID))
}

func buildTranslationUpdate(b squirrel.StatementBuilderType, subject domain.TranslationSubject, blob domain.TranslatableBlob) (string, []any, error) {
	target, ok := translationTargets[subject.Ref.Type]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, subject.Ref.Type)
	}
	raw, err := mapping.EncodeTranslatableBlob(blob)
	if err != nil {
		return "", nil, fmt.Errorf("encode translations: %w", err)
	}

	update := b.Update(target.table).
		Set("translations", raw).
		Where(squirrel.Eq{target.idColumn: subject.Ref.ID})

	// Source fields are matched in a fixed order so the statement is stable.
	fields := make([]string, 0, len(subject.Fields))
	for field := range subject.Fields {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)
	for _, field := range fields {
		if !target.fields[domain.TextField(field)] {
			return "", nil, fmt.Errorf("%w: %s has no translatable field %q", apperrors.ErrValidation, subject.Ref.Type, field)
		}
		update = update.Where(squirrel.Eq{field: subject.Fields[domain.TextField(field)]})
	}
	return update.ToSql()
}

func buildOwnerExists(b squirrel.StatementBuilderType, ref domain.EntityRef) (string, []any, error) {
	target, ok := translationTargets[ref.Type]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, ref.Type)
	}
	return b.Select("1").
		Prefix("SELECT EXISTS (").
		From(target.table).
		Where(squirrel.Eq{target.idColumn: ref.ID}).
		Suffix(")").
		ToSql()
}

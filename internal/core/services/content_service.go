package services

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
)

// ContentService is the translate-on-write and pick-on-read surface for one
// translatable entity type.
type ContentService[T domain.Translatable[T]] struct {
	translations portssvc.TranslationCacheSvc
}

// NewContentService creates a ContentService for T backed by translations.
func NewContentService[T domain.Translatable[T]](translations portssvc.TranslationCacheSvc) *ContentService[T] {
	return &ContentService[T]{translations: translations}
}

var (
	_ portssvc.ContentSvc[domain.Bank]         = (*ContentService[domain.Bank])(nil)
	_ portssvc.ContentSvc[domain.Location]     = (*ContentService[domain.Location])(nil)
	_ portssvc.ContentSvc[domain.News]         = (*ContentService[domain.News])(nil)
	_ portssvc.ContentSvc[domain.NewsCategory] = (*ContentService[domain.NewsCategory])(nil)
)

// SaveTranslations translates entity into every supported language and persists the blob.
func (s *ContentService[T]) SaveTranslations(ctx context.Context, entity T) domain.TranslatableBlob {
	return s.translations.SaveTranslations(ctx, entity.TranslationSubject(), nil)
}

// PickTranslatedContent overlays the cached values for the requested language.
// requested may be a language code or a legacy currency hint; a language with
// no cached slot yields the canonical text.
func (s *ContentService[T]) PickTranslatedContent(entity T, requested string) T {
	return domain.PickTranslated(entity, domain.ResolveLanguage(requested, s.translations.CanonicalLanguage()))
}

// PickTranslatedContents applies PickTranslatedContent to each entity.
func (s *ContentService[T]) PickTranslatedContents(entities []T, requested string) []T {
	lang := domain.ResolveLanguage(requested, s.translations.CanonicalLanguage())
	out := make([]T, len(entities))
	for i, e := range entities {
		out[i] = domain.PickTranslated(e, lang)
	}
	return out
}

package services

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
)

// Translator turns canonical-language text into target. Implementations are
// external and may be slow, rate limited or down.
type Translator interface {
	Translate(ctx context.Context, text string, target domain.Language) (string, error)
}

// TranslationCacheSvc fills and persists TranslatableBlobs.
type TranslationCacheSvc interface {
	// SaveTranslations translates subject into languages (all supported ones
	// when empty), persists the blob and returns it. It never fails: any
	// (field, language) the translator could not produce holds the source text.
	SaveTranslations(ctx context.Context, subject domain.TranslationSubject, languages []domain.Language) domain.TranslatableBlob

	// CanonicalLanguage is the language source text is authored in.
	CanonicalLanguage() domain.Language
}

// ContentSvc is the translate-on-write and pick-on-read surface shared by
// every translatable entity type.
type ContentSvc[T domain.Translatable[T]] interface {
	SaveTranslations(ctx context.Context, entity T) domain.TranslatableBlob
	PickTranslatedContent(entity T, requested string) T
	PickTranslatedContents(entities []T, requested string) []T
}

package repositories

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
)

// TranslationWriter persists translation blobs.
type TranslationWriter interface {
	// SaveTranslations replaces the blob of subject.Ref wholesale, but only
	// while the owner's stored source text still equals subject.Fields. It
	// returns apperrors.ErrConflict when the text has changed since and
	// apperrors.ErrNotFound when the owner is gone.
	SaveTranslations(ctx context.Context, subject domain.TranslationSubject, blob domain.TranslatableBlob) error
}

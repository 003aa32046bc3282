package translator

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
)

// Unavailable is used when no translation backend is configured. Every call
// fails, so translation caches hold the canonical text.
type Unavailable struct{}

var _ portssvc.Translator = Unavailable{}

func (Unavailable) Translate(_ context.Context, _ string, target domain.Language) (string, error) {
	return "", fmt.Errorf("%w: no translator configured for %s", apperrors.ErrTransient, target)
}

// Package translator holds Translator implementations and decorators.
package translator

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

// GoogleTranslator calls the Cloud Translation v2 REST API.
type GoogleTranslator struct {
	svc    *translate.Service
	source domain.Language
}

var _ portssvc.Translator = (*GoogleTranslator)(nil)

// NewGoogleTranslator creates a translator authenticated with apiKey. Source
// text is declared to be in source. Extra options are appended, which lets
// tests point the client at a local endpoint.
func NewGoogleTranslator(ctx context.Context, apiKey string, source domain.Language, opts ...option.ClientOption) (*GoogleTranslator, error) {
	all := make([]option.ClientOption, 0, len(opts)+1)
	if apiKey != "" {
		all = append(all, option.WithAPIKey(apiKey))
	}
	all = append(all, opts...)

	svc, err := translate.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	return &GoogleTranslator{svc: svc, source: source}, nil
}

// Translate translates text into target as plain text.
func (g *GoogleTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	resp, err := g.svc.Translations.List([]string{text}, string(target)).
		Source(string(g.source)).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", classifyGoogleError(ctx, err)
	}
	if len(resp.Translations) == 0 || resp.Translations[0].TranslatedText == "" {
		return "", fmt.Errorf("translation to %s returned no text", target)
	}
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}

// classifyGoogleError marks quota, server and deadline failures as transient.
func classifyGoogleError(ctx context.Context, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError {
			return fmt.Errorf("%w: translation API returned %d: %v", apperrors.ErrTransient, gerr.Code, err)
		}
		return fmt.Errorf("translation API returned %d: %w", gerr.Code, err)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, ctx.Err())
	}
	return fmt.Errorf("translation request failed: %w", err)
}

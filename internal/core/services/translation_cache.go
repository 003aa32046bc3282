package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	defaultTranslatorConcurrency = 4
	defaultTranslatorTimeout     = 5 * time.Second
)

// TranslationCacheConfig configures a TranslationCache.
type TranslationCacheConfig struct {
	Canonical domain.Language
	// Languages is the default target set; the canonical language is always included.
	Languages []domain.Language
	// MaxConcurrency bounds in-flight translator calls across all saves.
	MaxConcurrency int
	CallTimeout    time.Duration
}

// TranslationCache produces a TranslatableBlob for an entity on write.
// Translator failures never propagate: the affected field holds the source text.
type TranslationCache struct {
	BaseService
	translator portssvc.Translator
	repo       portsrepo.TranslationWriter
	cfg        TranslationCacheConfig
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	// slots is held until a translator call returns, even after its caller
	// has given up on it.
	slots *semaphore.Weighted
}

// NewTranslationCache creates a cache. m may be nil.
func NewTranslationCache(translator portssvc.Translator, repo portsrepo.TranslationWriter, cfg TranslationCacheConfig, m *metrics.Metrics) *TranslationCache {
	if _, ok := domain.ParseLanguage(string(cfg.Canonical)); !ok {
		cfg.Canonical = domain.DefaultCanonicalLanguage
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = domain.SupportedLanguages
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = defaultTranslatorConcurrency
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultTranslatorTimeout
	}
	cfg.Languages = targetLanguages(cfg.Languages, cfg.Canonical)

	return &TranslationCache{
		BaseService: newBaseService("translation_cache"),
		translator:  translator,
		repo:        repo,
		cfg:         cfg,
		metrics:     m,
		tracer:      otel.Tracer(tracerName),
		slots:       semaphore.NewWeighted(int64(cfg.MaxConcurrency)),
	}
}

var _ portssvc.TranslationCacheSvc = (*TranslationCache)(nil)

// CanonicalLanguage is the language source text is authored in.
func (c *TranslationCache) CanonicalLanguage() domain.Language {
	return c.cfg.Canonical
}

// SaveTranslations translates every field of subject into languages, stores
// the resulting blob against subject.Ref and returns it. The canonical slot
// copies the source text. The blob is only stored while the owner still holds
// the translated text; a newer save wins. A persistence failure is logged and
// the blob is still returned so callers can serve it.
func (c *TranslationCache) SaveTranslations(ctx context.Context, subject domain.TranslationSubject, languages []domain.Language) domain.TranslatableBlob {
	ctx, span := c.tracer.Start(ctx, "TranslationCache.SaveTranslations", trace.WithAttributes(
		attribute.String("entity.type", string(subject.Ref.Type)),
		attribute.String("entity.id", subject.Ref.ID),
	))
	defer span.End()

	targets := c.cfg.Languages
	if len(languages) > 0 {
		targets = targetLanguages(languages, c.cfg.Canonical)
	}

	blob := make(domain.TranslatableBlob, len(targets))
	for _, lang := range targets {
		blob[lang] = make(domain.TranslatedFields, len(subject.Fields))
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(c.cfg.MaxConcurrency)
	for _, lang := range targets {
		for field, text := range subject.Fields {
			if lang == c.cfg.Canonical || strings.TrimSpace(text) == "" {
				mu.Lock()
				blob[lang][field] = text
				mu.Unlock()
				continue
			}
			lang, field, text := lang, field, text
			g.Go(func() error {
				value := c.translateField(ctx, subject.Ref, field, text, lang)
				mu.Lock()
				blob[lang][field] = value
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	err := c.repo.SaveTranslations(ctx, subject, blob)
	c.metrics.ObserveTranslationPersist(subject.Ref.Type, err)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrConflict):
		c.LogInfo(ctx, "Translations superseded by newer text",
			"entity_type", subject.Ref.Type, "entity_id", subject.Ref.ID)
	default:
		span.RecordError(err)
		c.LogError(ctx, err, "Failed to persist translations",
			"entity_type", subject.Ref.Type, "entity_id", subject.Ref.ID)
	}
	return blob
}

// translateField returns the translation of text, or text itself when the
// translator fails, returns nothing, or exceeds the per-call timeout.
func (c *TranslationCache) translateField(ctx context.Context, ref domain.EntityRef, field domain.TextField, text string, lang domain.Language) string {
	started := time.Now()
	out, err := c.callTranslator(ctx, text, lang)
	if err == nil && strings.TrimSpace(out) == "" {
		err = fmt.Errorf("translator returned empty text")
	}
	if err != nil {
		c.metrics.ObserveTranslationCall(lang, metrics.OutcomeFallback, time.Since(started))
		c.LogWarn(ctx, err, "Translation failed, keeping source text",
			"entity_type", ref.Type, "entity_id", ref.ID, "field", field, "language", lang)
		return text
	}
	c.metrics.ObserveTranslationCall(lang, metrics.OutcomeSuccess, time.Since(started))
	return out
}

type translateResult struct {
	text string
	err  error
}

// callTranslator bounds one call by the configured timeout even when the
// translator ignores its context. Waiting for a free slot counts against the
// timeout.
func (c *TranslationCache) callTranslator(ctx context.Context, text string, lang domain.Language) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	if err := c.slots.Acquire(callCtx, 1); err != nil {
		return "", fmt.Errorf("translate to %s: waiting for translator: %w", lang, err)
	}
	done := make(chan translateResult, 1)
	go func() {
		defer c.slots.Release(1)
		out, err := c.translator.Translate(callCtx, text, lang)
		done <- translateResult{text: out, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-callCtx.Done():
		return "", fmt.Errorf("translate to %s: %w", lang, callCtx.Err())
	}
}

// targetLanguages returns the supported languages of langs, deduplicated, with
// canonical always present.
func targetLanguages(langs []domain.Language, canonical domain.Language) []domain.Language {
	out := []domain.Language{canonical}
	seen := map[domain.Language]bool{canonical: true}
	for _, l := range langs {
		lang, ok := domain.ParseLanguage(string(l))
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

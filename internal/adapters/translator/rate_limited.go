package translator

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const rateLimitKey = "translator"

// RateLimited enforces an outbound call quota in front of another Translator.
// Calls over quota fail fast with apperrors.ErrTransient instead of waiting.
type RateLimited struct {
	next    portssvc.Translator
	limiter *limiter.Limiter
}

var _ portssvc.Translator = (*RateLimited)(nil)

// NewRateLimited wraps next with a quota given in limiter format, e.g. "10-S".
func NewRateLimited(next portssvc.Translator, formatted string) (*RateLimited, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid translator rate limit %q: %w", formatted, err)
	}
	return &RateLimited{
		next:    next,
		limiter: limiter.New(memory.NewStore(), rate),
	}, nil
}

func (r *RateLimited) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	quota, err := r.limiter.Get(ctx, rateLimitKey)
	if err != nil {
		return "", fmt.Errorf("%w: translator quota check failed: %v", apperrors.ErrTransient, err)
	}
	if quota.Reached {
		return "", fmt.Errorf("%w: translator quota of %d calls reached", apperrors.ErrTransient, quota.Limit)
	}
	return r.next.Translate(ctx, text, target)
}

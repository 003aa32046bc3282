package services

import (
	"context"

	"github.com/SscSPs/property_market_app/internal/core/domain"
)

// RecalculationScheduler accepts requests for a price recalculation.
// Schedule never blocks and never fails; pending requests coalesce into one run.
type RecalculationScheduler interface {
	Schedule(ctx context.Context)
}

// RecalculationRunner recomputes every listing's derived price maps against rates.
type RecalculationRunner interface {
	Run(ctx context.Context, rates domain.RateTable) (domain.RecalculationReport, error)
}

// RecalculationSvc is the trigger exposed to handlers: it schedules background
// runs and can run one synchronously.
type RecalculationSvc interface {
	RecalculationScheduler
	RunNow(ctx context.Context) (domain.RecalculationReport, error)
}

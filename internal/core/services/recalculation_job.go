package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/platform/metrics"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName           = "github.com/SscSPs/property_market_app/internal/core/services"
	defaultRecalcWorkers = 8
	maxStaleRetries      = 3

	reasonConcurrentChange = "price changed concurrently"
)

type recalcOutcome int

const (
	recalcProcessed recalcOutcome = iota
	recalcSkipped
	recalcFailed
)

type recalcResult struct {
	outcome recalcOutcome
	listing domain.Listing
	reason  string
}

// RecalculationJob rewrites every listing's derived price maps from its
// base-currency amounts and one snapshot of the rate table.
type RecalculationJob struct {
	BaseService
	listingRepo portsrepo.ListingRepositoryFacade
	precision   portssvc.PrecisionProvider
	workers     int
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// NewRecalculationJob creates a job that processes listings with at most
// workers goroutines. m may be nil.
func NewRecalculationJob(listingRepo portsrepo.ListingRepositoryFacade, precision portssvc.PrecisionProvider, workers int, m *metrics.Metrics) *RecalculationJob {
	if workers < 1 {
		workers = defaultRecalcWorkers
	}
	return &RecalculationJob{
		BaseService: newBaseService("recalculation_job"),
		listingRepo: listingRepo,
		precision:   precision,
		workers:     workers,
		metrics:     m,
		tracer:      otel.Tracer(tracerName),
	}
}

var _ portssvc.RecalculationRunner = (*RecalculationJob)(nil)

// Run recomputes the current price and every history entry's captured rates
// of each priced listing. History base amounts are read, never written.
// Listings without a base amount are skipped; listings with malformed price
// data are reported and left untouched. A listing whose price changes while
// the run is in flight is reloaded and recomputed rather than overwritten.
// The returned error covers loading and persisting only.
func (j *RecalculationJob) Run(ctx context.Context, rates domain.RateTable) (report domain.RecalculationReport, err error) {
	ctx, span := j.tracer.Start(ctx, "RecalculationJob.Run")
	report.StartedAt = time.Now().UTC()
	defer func() {
		report.Duration = time.Since(report.StartedAt)
		span.SetAttributes(
			attribute.Int("recalculation.processed", report.Processed),
			attribute.Int("recalculation.skipped", report.Skipped),
			attribute.Int("recalculation.failed", report.Failed),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		j.metrics.ObserveRecalculation(report, err)
	}()

	snapshot := rates.Clone()

	precision, perr := j.precision.PrecisionTable(ctx)
	if perr != nil {
		j.LogWarn(ctx, perr, "Currency precision unavailable, using default precision")
		precision = pricing.PrecisionTable{}
	}

	listings, err := j.listingRepo.FindAllWithPrice(ctx)
	if err != nil {
		j.LogError(ctx, err, "Failed to load listings for recalculation")
		return report, fmt.Errorf("failed to load listings for recalculation: %w", err)
	}

	results := make([]recalcResult, len(listings))
	var g errgroup.Group
	g.SetLimit(j.workers)
	for i := range listings {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = recalcResult{outcome: recalcFailed, listing: listings[i], reason: ctx.Err().Error()}
				return nil
			}
			results[i] = recalculateListing(listings[i], snapshot, precision)
			return nil
		})
	}
	_ = g.Wait()

	pending := make([]domain.Listing, 0, len(results))
	for _, r := range results {
		if l, ok := j.tally(ctx, &report, r); ok {
			pending = append(pending, l)
		}
	}

	// A listing repriced while this run was computing comes back stale; it
	// is reloaded and recomputed so the new price gets this rate snapshot too.
	for attempt := 0; len(pending) > 0; attempt++ {
		stale, serr := j.listingRepo.SaveListingBatch(ctx, pending)
		if serr != nil {
			report.Failed += len(pending)
			j.LogError(ctx, serr, "Failed to persist recalculated listings", "count", len(pending))
			return report, fmt.Errorf("failed to persist recalculated listings: %w", serr)
		}
		report.Processed += len(pending) - len(stale)
		if len(stale) == 0 {
			break
		}
		if attempt == maxStaleRetries {
			for _, id := range stale {
				report.Skipped++
				report.Issues = append(report.Issues, domain.RecalculationIssue{ListingID: id, Reason: reasonConcurrentChange})
			}
			j.LogWarn(ctx, apperrors.ErrConflict, "Listings kept changing during recalculation", "count", len(stale))
			break
		}
		pending = j.reloadStale(ctx, &report, stale, snapshot, precision)
	}

	j.LogInfo(ctx, "Price recalculation finished",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"currencies", len(snapshot))
	return report, nil
}

// tally records a non-processed result in report and returns the listing to
// persist for a processed one.
func (j *RecalculationJob) tally(ctx context.Context, report *domain.RecalculationReport, r recalcResult) (domain.Listing, bool) {
	switch r.outcome {
	case recalcProcessed:
		return r.listing, true
	case recalcSkipped:
		report.Skipped++
	case recalcFailed:
		report.Failed++
		j.LogWarn(ctx, errors.New(r.reason), "Listing excluded from recalculation", "listing_id", r.listing.ListingID)
	}
	report.Issues = append(report.Issues, domain.RecalculationIssue{ListingID: r.listing.ListingID, Reason: r.reason})
	return domain.Listing{}, false
}

// reloadStale reads each stale listing again and recomputes it.
func (j *RecalculationJob) reloadStale(ctx context.Context, report *domain.RecalculationReport, ids []string, rates domain.RateTable, precision pricing.PrecisionTable) []domain.Listing {
	out := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		fresh, err := j.listingRepo.FindListingByID(ctx, id)
		var r recalcResult
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			r = recalcResult{outcome: recalcSkipped, listing: domain.Listing{ListingID: id}, reason: "listing no longer exists"}
		case err != nil:
			r = recalcResult{outcome: recalcFailed, listing: domain.Listing{ListingID: id}, reason: err.Error()}
		default:
			r = recalculateListing(*fresh, rates, precision)
		}
		if l, ok := j.tally(ctx, report, r); ok {
			out = append(out, l)
		}
	}
	return out
}

// recalculateListing derives the new maps for one listing. It never mutates l.
func recalculateListing(l domain.Listing, rates domain.RateTable, precision pricing.PrecisionTable) recalcResult {
	if err := l.ValidatePriceShape(); err != nil {
		return recalcResult{outcome: recalcFailed, listing: l, reason: err.Error()}
	}
	base, ok := l.BaseAmountUSD()
	if !ok {
		return recalcResult{outcome: recalcSkipped, listing: l, reason: "no base currency amount"}
	}

	out := l
	out.Price = pricing.Refresh(l.Price, base, rates, precision)
	out.PriceHistory = make([]domain.PriceHistoryEntry, len(l.PriceHistory))
	for i, entry := range l.PriceHistory {
		entry.CapturedRates = pricing.Refresh(entry.CapturedRates, entry.BaseAmount, rates, precision)
		out.PriceHistory[i] = entry
	}
	return recalcResult{outcome: recalcProcessed, listing: out}
}

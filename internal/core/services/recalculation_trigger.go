package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/pkg/logger"
)

// RecalculationTrigger turns rate-change signals into recalculation runs.
// Signals arriving while a run is pending collapse into that run; at most one
// run executes at a time, and each run reads the rate table when it starts.
type RecalculationTrigger struct {
	BaseService
	rates   portssvc.RateTableSource
	runner  portssvc.RecalculationRunner
	pending chan struct{}
	runMu   sync.Mutex

	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewRecalculationTrigger creates an idle trigger. Call Start to process
// scheduled runs in the background.
func NewRecalculationTrigger(rates portssvc.RateTableSource, runner portssvc.RecalculationRunner) *RecalculationTrigger {
	return &RecalculationTrigger{
		BaseService: newBaseService("recalculation_trigger"),
		rates:       rates,
		runner:      runner,
		pending:     make(chan struct{}, 1),
	}
}

var _ portssvc.RecalculationSvc = (*RecalculationTrigger)(nil)

// SetRateSource wires the rate table source after construction; the exchange
// rate service and the trigger depend on each other.
func (t *RecalculationTrigger) SetRateSource(rates portssvc.RateTableSource) {
	t.rates = rates
}

// Schedule requests a run. It never blocks.
func (t *RecalculationTrigger) Schedule(ctx context.Context) {
	select {
	case t.pending <- struct{}{}:
		t.LogDebug(ctx, "Price recalculation scheduled")
	default:
		t.LogDebug(ctx, "Price recalculation already pending")
	}
}

// Start launches the background loop. It stops when ctx is cancelled or Stop is called.
func (t *RecalculationTrigger) Start(ctx context.Context) {
	t.lifecycleMu.Lock()
	defer t.lifecycleMu.Unlock()
	if t.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(logger.WithLogger(ctx, logger.FromContext(ctx).WithComponent("recalculation_trigger")))
	t.cancel = cancel
	t.wg.Add(1)
	go t.loop(loopCtx)
}

// Stop cancels the loop and waits for an in-flight run to return.
func (t *RecalculationTrigger) Stop() {
	t.lifecycleMu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.lifecycleMu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}

func (t *RecalculationTrigger) loop(ctx context.Context) {
	defer t.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.pending:
			if _, err := t.RunNow(ctx); err != nil {
				t.LogError(ctx, err, "Background price recalculation failed")
			}
		}
	}
}

// RunNow runs a recalculation synchronously against the current rate table.
func (t *RecalculationTrigger) RunNow(ctx context.Context) (domain.RecalculationReport, error) {
	t.runMu.Lock()
	defer t.runMu.Unlock()

	if t.rates == nil {
		return domain.RecalculationReport{}, fmt.Errorf("recalculation trigger has no rate source")
	}
	rates, err := t.rates.RateTable(ctx)
	if err != nil {
		return domain.RecalculationReport{}, fmt.Errorf("failed to load rate table: %w", err)
	}
	return t.runner.Run(ctx, rates)
}

package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/adapter/routing"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/pricing"
)

// QuoteFacade exposes the subset of application functionality required by the worker.
type QuoteFacade interface {
	PendingQuotes(ctx context.Context, limit int) ([]model.Load, error)
	QuoteLoad(ctx context.Context, load model.Load) (pricing.Quote, error)
	RecordQuote(ctx context.Context, loadID int64, price decimal.Decimal) error
}

// QuoteProcessor prices newly submitted loads in the background.
type QuoteProcessor struct {
	facade       QuoteFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Load
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	inflightMu sync.Mutex
	inflight   map[int64]struct{}
}

// NewQuoteProcessor constructs quote processor worker pool.
func NewQuoteProcessor(facade QuoteFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *QuoteProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &QuoteProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Load, batchSize*workers),
		inflight:     make(map[int64]struct{}),
	}
}

// Start launches background processing.
func (p *QuoteProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *QuoteProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *QuoteProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *QuoteProcessor) fetchAndDispatch(ctx context.Context) {
	loads, err := p.facade.PendingQuotes(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch loads for quoting failed", slog.String("error", err.Error()))
		return
	}
	for _, load := range loads {
		// a slow quote from the previous poll may still be running
		if !p.claim(load.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			p.release(load.ID)
			return
		case p.jobs <- load:
		}
	}
}

func (p *QuoteProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case load, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleLoad(ctx, load)
			p.release(load.ID)
		}
	}
}

func (p *QuoteProcessor) handleLoad(ctx context.Context, load model.Load) {
	quote, err := p.facade.QuoteLoad(ctx, load)
	if err != nil {
		var tooMany routing.TooManyRequestsError
		if errors.As(err, &tooMany) {
			p.logger.Warn("routing rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			sleep(ctx, tooMany.RetryAfter)
			return
		}
		p.logger.Error("quote load failed", slog.Int64("load_id", load.ID), slog.String("error", err.Error()))
		return
	}

	if err := p.facade.RecordQuote(ctx, load.ID, quote.SuggestedPrice); err != nil {
		p.logger.Error("record quote failed", slog.Int64("load_id", load.ID), slog.String("error", err.Error()))
		return
	}
	p.logger.Debug("load quoted",
		slog.Int64("load_id", load.ID),
		slog.String("price", quote.SuggestedPrice.String()),
		slog.String("distance_source", quote.Params.DistanceSource),
	)
}

func (p *QuoteProcessor) claim(id int64) bool {
	p.inflightMu.Lock()
	defer p.inflightMu.Unlock()
	if _, busy := p.inflight[id]; busy {
		return false
	}
	p.inflight[id] = struct{}{}
	return true
}

func (p *QuoteProcessor) release(id int64) {
	p.inflightMu.Lock()
	defer p.inflightMu.Unlock()
	delete(p.inflight, id)
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

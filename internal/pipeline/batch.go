package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/ffscope/internal/model"
)

// BatchProcessor explores several leagues concurrently.
// Each league gets a fresh pipeline from the factory so that step state
// such as the loaded league is never shared.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each league.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of leagues explored at once.
	concurrency int

	logger *slog.Logger

	// results stores completed explorations in input order.
	results []*model.Exploration
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent explorations.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.Exploration, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch explores the season of every league concurrently.
// Results keep the order of leagueIDs. A failed league still has an
// exploration carrying its error; the returned error is only set when the
// batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, leagueIDs []int, year int) ([]*model.Exploration, error) {
	bp.logger.Info("starting batch processing",
		"total_leagues", len(leagueIDs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]*model.Exploration, len(leagueIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, id := range leagueIDs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("exploring league",
				"league_id", id,
				"index", i+1,
				"total", len(leagueIDs),
			)

			exploration := model.NewExploration(id, year)
			err := bp.pipelineFactory().Execute(ctx, exploration)

			bp.mu.Lock()
			bp.results[i] = exploration
			bp.mu.Unlock()

			if err != nil {
				// Recorded in the exploration; other leagues keep going.
				bp.logger.Warn("exploration failed",
					"league_id", id,
					"error", err,
				)
				return nil
			}

			bp.logger.Info("exploration completed", "league_id", id)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_leagues", len(leagueIDs),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback explores every league and calls callback with
// each finished exploration and the index of its league. The callback runs
// on the worker goroutine and must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	leagueIDs []int,
	year int,
	callback func(exploration *model.Exploration, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_leagues", len(leagueIDs),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, id := range leagueIDs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			exploration := model.NewExploration(id, year)
			_ = bp.pipelineFactory().Execute(ctx, exploration) //nolint:errcheck // error is stored in the exploration

			callback(exploration, i)
			return nil
		})
	}

	return g.Wait()
}

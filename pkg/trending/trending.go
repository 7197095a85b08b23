// Package trending aggregates dated notes into monthly word and phrase
// tables and publishes one word cloud per month.
package trending

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/aggregate"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/ingest"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/lang"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/metrics"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/output"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/render"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/store"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// ImageSuffix is appended to the month key to name its cloud.
const ImageSuffix = "_phrase_cloud.png"

// Source yields documents one at a time.
type Source interface {
	Walk(ctx context.Context, fn func(ingest.Doc) error) error
}

// Engine is the trend facade: it owns the run's monthly aggregate.
type Engine struct {
	pipeline *ingest.Pipeline
	filter   output.Filter
	renderer render.Renderer
	store    store.Store
	metrics  *metrics.Metrics
	guard    *lang.Guard
	workers  int
	log      *slog.Logger
	inputDir string

	runID   string
	started time.Time
	agg     *aggregate.Aggregator

	documents atomic.Int64
	skipped   atomic.Int64
}

// Options configures an Engine. Pipeline is required; Renderer, Store,
// Metrics and Guard are optional.
type Options struct {
	Pipeline *ingest.Pipeline
	Filter   output.Filter
	Renderer render.Renderer
	Store    store.Store
	Metrics  *metrics.Metrics
	Guard    *lang.Guard
	Workers  int
	Logger   *slog.Logger
	InputDir string
}

// MonthResult is the outcome of publishing one month.
type MonthResult struct {
	Month string
	Terms termfreq.Table // filtered table; empty when Empty is set
	Image string
	Empty bool
}

// New creates an Engine with a fresh run ID.
func New(opts Options) *Engine {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := time.Now()
	id := ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String()

	return &Engine{
		pipeline: opts.Pipeline,
		filter:   opts.Filter,
		renderer: opts.Renderer,
		store:    opts.Store,
		metrics:  opts.Metrics,
		guard:    opts.Guard,
		workers:  workers,
		log:      log.With("run", id),
		inputDir: opts.InputDir,
		runID:    id,
		started:  now,
		agg:      aggregate.New(),
	}
}

// Close releases the store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// RunID returns the ULID of this run.
func (e *Engine) RunID() string {
	return e.runID
}

// Documents returns how many documents were merged.
func (e *Engine) Documents() int64 {
	return e.documents.Load()
}

// Skipped returns how many documents were skipped.
func (e *Engine) Skipped() int64 {
	return e.skipped.Load()
}

// Skip records a document dropped before it reached the engine, for
// example by the corpus walker.
func (e *Engine) Skip(reason string) {
	e.skipped.Add(1)
	e.metrics.Skip(reason)
}

// Ingest processes one document and merges it into its month bucket.
// Ingest must not be called concurrently with itself or Run.
func (e *Engine) Ingest(ctx context.Context, doc ingest.Doc) error {
	return e.ingestInto(ctx, e.agg, doc)
}

func (e *Engine) ingestInto(ctx context.Context, agg *aggregate.Aggregator, doc ingest.Doc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("ingest %s: %w", doc.Path, err)
	}
	if !e.guard.Accept(doc.Body) {
		e.log.Debug("skipping document in other language", "path", doc.Path, "want", e.guard.Target())
		e.Skip(metrics.ReasonLanguage)
		return nil
	}

	processed := e.pipeline.Process(doc.Body)
	agg.Add(doc.Month, processed.Terms)

	e.documents.Add(1)
	e.metrics.ObserveDocument(len(processed.Tokens), len(processed.Phrases))
	return nil
}

// Run ingests every document of src. With more than one worker, documents
// are processed by a bounded pool; each worker fills a private aggregator
// and the partials are combined once all workers finish.
func (e *Engine) Run(ctx context.Context, src Source) error {
	if e.workers <= 1 {
		return src.Walk(ctx, func(doc ingest.Doc) error {
			return e.Ingest(ctx, doc)
		})
	}

	e.log.Info("starting worker pool", "workers", e.workers)
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan ingest.Doc, e.workers)
	partials := make([]*aggregate.Aggregator, e.workers)

	for w := range partials {
		agg := aggregate.New()
		partials[w] = agg
		g.Go(func() error {
			for doc := range jobs {
				if err := e.ingestInto(gctx, agg, doc); err != nil {
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		return src.Walk(gctx, func(doc ingest.Doc) error {
			select {
			case jobs <- doc:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}
	for _, p := range partials {
		e.agg.Combine(p)
	}
	return nil
}

// Snapshot returns a copy of the current monthly tables (unfiltered).
func (e *Engine) Snapshot() map[string]termfreq.Table {
	return e.agg.Snapshot()
}

// Publish filters every month, renders the non-empty ones and persists
// them. Months with nothing left to visualize are reported with Empty set
// and are neither rendered nor stored.
func (e *Engine) Publish(ctx context.Context) ([]MonthResult, error) {
	if e.store != nil {
		run := store.Run{
			ID:        e.runID,
			StartedAt: e.started,
			InputDir:  e.inputDir,
			Documents: e.Documents(),
			Skipped:   e.Skipped(),
		}
		if err := e.store.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}

	months := e.agg.Months()
	results := make([]MonthResult, 0, len(months))
	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		table, _ := e.agg.Table(month)
		kept, ok := e.filter.Apply(table)
		if !ok {
			e.log.Info("nothing to visualize", "month", month, "docs", e.agg.Docs(month))
			e.metrics.ObserveMonth(0, false)
			results = append(results, MonthResult{Month: month, Terms: kept, Empty: true})
			continue
		}

		res := MonthResult{Month: month, Terms: kept}
		if e.renderer != nil {
			path, err := e.renderer.Render(ctx, kept, ImageName(month))
			if err != nil {
				return results, fmt.Errorf("render %s: %w", month, err)
			}
			res.Image = path
			e.log.Info("rendered month", "month", month, "terms", len(kept), "image", path)
		}
		e.metrics.ObserveMonth(len(kept), true)

		if e.store != nil {
			m := store.Month{Month: month, Image: res.Image, Terms: kept}
			if err := e.store.SaveMonth(ctx, e.runID, m); err != nil {
				return results, fmt.Errorf("save month %s: %w", month, err)
			}
		}
		results = append(results, res)
	}

	e.log.Info("run published",
		"documents", e.agg.TotalDocs(),
		"skipped", e.Skipped(),
		"months", len(months),
	)
	return results, nil
}

// ImageName returns the cloud file name for a month key.
func ImageName(month string) string {
	return month + ImageSuffix
}

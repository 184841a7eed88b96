package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/malisevdinoglu/GenAI-Chatbot/core"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage"
)

const (
	// DefaultBatchSize is the number of documents embedded per request.
	DefaultBatchSize = 50

	// DefaultMaxAttempts is how many times a failing batch is tried.
	DefaultMaxAttempts = 3

	// DefaultCooldown is the fixed wait between retries of a failing batch.
	DefaultCooldown = time.Second

	// DefaultPacing is the minimum interval between successive batches.
	DefaultPacing = time.Second
)

// ProgressFunc is called after each durably appended batch with the number of
// documents ingested so far and the total to ingest.
type ProgressFunc func(ingested, total int)

// Pipeline builds a persistent vector index from prepared documents. A
// pipeline is stateless across runs; the same pipeline can build or load any
// number of index locations.
type Pipeline struct {
	store       storage.IndexStore
	embedder    ai.Embedder
	batchSize   int
	maxAttempts int
	cooldown    time.Duration
	limiter     *rate.Limiter
	progress    ProgressFunc
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithBatchSize sets how many documents are embedded per request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithMaxAttempts sets how many times a failing batch is tried before the
// run aborts. Default is DefaultMaxAttempts.
func WithMaxAttempts(attempts int) Option {
	return func(p *Pipeline) error {
		if attempts < 1 {
			return fmt.Errorf("max attempts must be positive, got %d", attempts)
		}
		p.maxAttempts = attempts
		return nil
	}
}

// WithCooldown sets the fixed wait between retries of a failing batch.
// Default is DefaultCooldown.
func WithCooldown(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.cooldown = d
		return nil
	}
}

// WithPacing sets the minimum interval between successive batch requests.
// Zero disables pacing. Default is DefaultPacing.
func WithPacing(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d <= 0 {
			p.limiter = nil
			return nil
		}
		p.limiter = rate.NewLimiter(rate.Every(d), 1)
		return nil
	}
}

// WithProgress sets a callback invoked after each durably appended batch.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) error {
		p.progress = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(store storage.IndexStore, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrIndexStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		store:       store,
		embedder:    embedder,
		batchSize:   DefaultBatchSize,
		maxAttempts: DefaultMaxAttempts,
		cooldown:    DefaultCooldown,
		limiter:     rate.NewLimiter(rate.Every(DefaultPacing), 1),
		logger:      slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Result reports the outcome of a Run.
type Result struct {
	// Index is the sealed index, open and ready for retrieval.
	Index storage.VectorIndex

	// Ingested is the number of documents embedded and appended by this run.
	// Zero when the run skipped building.
	Ingested int

	// Skipped reports that a sealed index already existed at the location
	// and no build was performed.
	Skipped bool
}

// Run ensures a sealed index exists at location and returns it.
//
// When a sealed index already exists and rebuild is false, it is opened and
// returned untouched. Otherwise any leftover data at the location is
// discarded and the index is built from docs: batches are embedded, vectors
// unit-normalized, appended durably, and the index sealed at the end.
//
// A failed run returns an IngestionError carrying how many documents were
// durably appended before the failure; the partially built index stays
// unsealed on disk and a later run will discard and rebuild it.
func (p *Pipeline) Run(ctx context.Context, location string, docs []core.RecipeDoc, rebuild bool) (*Result, error) {
	existing, err := p.store.Open(location)
	switch {
	case err == nil:
		if !rebuild {
			count, countErr := existing.Count(ctx)
			if countErr != nil {
				existing.Close()
				return nil, countErr
			}
			p.logger.Info("index already built, skipping ingestion",
				"location", location, "doc_count", count)
			return &Result{Index: existing, Skipped: true}, nil
		}
		existing.Close()
	case errors.Is(err, storage.ErrNotFound):
		// Absent or unsealed leftover; fall through to build.
	default:
		return nil, err
	}

	if err := p.store.Discard(location); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	index, ingested, err := p.build(ctx, location, docs)
	if err != nil {
		if index != nil {
			index.Close()
		}
		return nil, &IngestionError{Ingested: ingested, Err: err}
	}

	if err := index.Seal(ctx); err != nil {
		index.Close()
		return nil, &IngestionError{Ingested: ingested, Err: err}
	}

	p.logger.Info("ingestion complete", "location", location, "doc_count", ingested)
	return &Result{Index: index, Ingested: ingested}, nil
}

// build embeds docs batch by batch and appends them to a fresh index at
// location. The index is created only once the first batch has embedded, so a
// run that never embeds anything leaves no index behind. Returns the index
// (nil if never created) and the number of documents durably appended, whether
// or not it failed.
func (p *Pipeline) build(ctx context.Context, location string, docs []core.RecipeDoc) (storage.VectorIndex, int, error) {
	var index storage.VectorIndex
	total := len(docs)
	ingested := 0

	for start := 0; start < total; start += p.batchSize {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return index, ingested, err
			}
		}

		end := start + p.batchSize
		if end > total {
			end = total
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = doc.Content
		}

		var vectors [][]float32
		err := retryTransient(ctx, p.maxAttempts, p.cooldown, func() error {
			var embedErr error
			vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
			if embedErr != nil {
				p.logger.Warn("batch embedding failed",
					"batch_start", start, "batch_size", len(batch), "err", embedErr)
			}
			return embedErr
		})
		if err != nil {
			return index, ingested, err
		}
		if len(vectors) != len(batch) {
			return index, ingested, fmt.Errorf("%w: embedder returned %d vectors for %d documents",
				ai.ErrUnavailable, len(vectors), len(batch))
		}

		for i := range vectors {
			vectors[i] = ai.NormalizeVector(vectors[i])
		}

		if index == nil {
			index, err = p.store.Create(location)
			if err != nil {
				return nil, ingested, err
			}
		}
		if err := index.Append(ctx, batch, vectors); err != nil {
			return index, ingested, err
		}
		ingested += len(batch)

		p.logger.Debug("batch ingested", "ingested", ingested, "total", total)
		if p.progress != nil {
			p.progress(ingested, total)
		}
	}

	return index, ingested, nil
}

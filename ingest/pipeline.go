package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// defaultBatchSize is the number of chunk texts sent to the embedder per call.
const defaultBatchSize = 32

// Pipeline orchestrates document ingestion: normalization, concurrent
// embedding, and a single atomic write to the store.
type Pipeline struct {
	store      storage.Store
	embedder   ai.Embedder
	normalizer *Normalizer
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many chunk texts are embedded per embedder call.
// Default is 32, with a minimum of 1.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(normalizer *Normalizer) Option {
	return func(p *Pipeline) error {
		if normalizer != nil {
			p.normalizer = normalizer
		}
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
func NewPipeline(store storage.Store, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:      store,
		embedder:   embedder,
		normalizer: NewNormalizer(),
		pool:       pool,
		batchSize:  defaultBatchSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Result reports what one ingestion run produced.
type Result struct {
	DocumentId core.ID
	ChunkIds   []core.ID
}

// IngestDocument normalizes a parsed document, embeds every chunk, and
// persists the document with its chunks in one transaction. Re-ingesting
// an external document identifier replaces the earlier version. Nothing is
// written when embedding fails.
func (p *Pipeline) IngestDocument(ctx context.Context, parsed *ParsedDocument) (*Result, error) {
	if parsed == nil {
		return nil, ErrDocumentRequired
	}

	document := &core.Document{
		ExternalID: parsed.DocumentID,
		Title:      parsed.Title,
		NumPages:   parsed.NumPages,
		StorageKey: parsed.StorageKey,
	}
	if document.Title == "" {
		document.Title = document.ExternalID
	}
	if err := core.ValidateDocument(document); err != nil {
		return nil, err
	}

	chunks := p.normalizer.NormalizeDocument(parsed)
	p.logger.Info("ingesting document",
		"document", document.ExternalID, "chunks", len(chunks))

	if len(chunks) > 0 {
		if err := p.embedChunks(ctx, chunks); err != nil {
			return nil, fmt.Errorf("document %q: %w", document.ExternalID, err)
		}
	}

	ids, err := p.store.WriteMany(ctx, document, chunks)
	if err != nil {
		return nil, err
	}

	return &Result{DocumentId: document.Id, ChunkIds: ids}, nil
}

// embedChunks generates embeddings for all chunks, batches in parallel on
// the worker pool, preserving chunk order.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []*core.Chunk) error {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors := make([][]float32, len(chunks))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		offset := start
		batch := texts[start:end]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			embeddings, err := p.embedder.EmbedTexts(ctx, batch)
			if err != nil {
				record(err)
				return
			}
			if len(embeddings) != len(batch) {
				record(fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings)))
				return
			}

			for i, embedding := range embeddings {
				vectors[offset+i] = embedding
			}
		})
		if err != nil {
			wg.Done()
			record(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("%w: %w", ErrEmbeddingFailed, firstErr)
	}

	for i, chunk := range chunks {
		chunk.Vector = vectors[i]
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

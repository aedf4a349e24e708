package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

const (
	// DefaultAlpha is the fusion weight used when the query leaves it unset.
	// Lexical and vector evidence count equally.
	DefaultAlpha = 0.5

	// DefaultLimit is the number of hits returned when the query leaves it unset.
	DefaultLimit = 10

	// MaxLimit caps the number of hits a query may request.
	MaxLimit = 50

	// Each retrieval axis is overfetched beyond the requested limit so
	// that min-max normalization sees a stable score window and chunks
	// strong on only one axis stay in contention.
	overfetchFactor = 3
	minOverfetch    = 25
)

// Query describes one hybrid search request.
type Query struct {
	// Text is the search text. Required.
	Text string

	// Alpha weights lexical evidence against vector evidence:
	// 1 is purely lexical, 0 purely vector. Nil means DefaultAlpha.
	Alpha *float64

	// Limit is the maximum number of hits. Zero means DefaultLimit;
	// values above MaxLimit are rejected.
	Limit int

	// DocumentID restricts the search to one document. Zero means all.
	DocumentID core.ID
}

// Engine provides hybrid lexical and vector search over stored chunks.
type Engine struct {
	store    storage.Store
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(store storage.Store, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search runs a hybrid search and returns ranked hits.
func (e *Engine) Search(ctx context.Context, query Query) ([]*core.Hit, error) {
	return e.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs a hybrid search with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// Both retrieval axes are overfetched, min-max normalized over their own
// retrieved windows, and fused per chunk as
//
//	alpha*lexical + (1-alpha)*vector
//
// with a missing axis contributing zero. Hits are ordered by fused score
// descending, ties broken by ascending chunk ID.
func (e *Engine) SearchWithMonitor(ctx context.Context, query Query, monitor SearchMonitor) ([]*core.Hit, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	alpha := DefaultAlpha
	if query.Alpha != nil {
		alpha = *query.Alpha
		if alpha < 0 || alpha > 1 {
			return nil, ErrAlphaOutOfRange
		}
	}

	limit := DefaultLimit
	if query.Limit != 0 {
		if query.Limit < 1 || query.Limit > MaxLimit {
			return nil, ErrLimitOutOfRange
		}
		limit = query.Limit
	}

	monitor.Start(text, alpha)

	overfetch := limit * overfetchFactor
	if overfetch < minOverfetch {
		overfetch = minOverfetch
	}

	lexical, err := e.store.LexicalTopK(ctx, text, overfetch, query.DocumentID)
	if err != nil {
		e.logger.Error("error running lexical search", "err", err)
		return nil, err
	}
	monitor.AfterLexicalSearch(lexical)

	vector, err := e.embedder.EmbedText(ctx, text)
	if err != nil {
		e.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	similar, err := e.store.VectorTopK(ctx, vector, overfetch, query.DocumentID)
	if err != nil {
		e.logger.Error("error running vector search", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(similar)

	fused := fuse(lexical, similar, alpha)
	if len(fused) > limit {
		fused = fused[:limit]
	}
	monitor.AfterFusion(fused)

	hits, err := e.hydrate(ctx, fused)
	if err != nil {
		return nil, err
	}

	monitor.Finish(hits)
	return hits, nil
}

// fuse normalizes each axis over its own retrieved window and combines
// the two into one ranking.
func fuse(lexical, similar []core.ScoredChunk, alpha float64) []core.ScoredChunk {
	lexNorm := normalizeScores(lexical)
	vecNorm := normalizeScores(similar)

	union := make(map[core.ID]bool, len(lexNorm)+len(vecNorm))
	for id := range lexNorm {
		union[id] = true
	}
	for id := range vecNorm {
		union[id] = true
	}

	fused := make([]core.ScoredChunk, 0, len(union))
	for id := range union {
		fused = append(fused, core.ScoredChunk{
			ChunkId: id,
			Score:   alpha*lexNorm[id] + (1-alpha)*vecNorm[id],
		})
	}

	slices.SortFunc(fused, func(a, b core.ScoredChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.ChunkId < b.ChunkId {
			return -1
		}
		if a.ChunkId > b.ChunkId {
			return 1
		}
		return 0
	})

	return fused
}

// normalizeScores min-max normalizes raw scores into [0, 1]. A degenerate
// window, where every score is identical, maps every chunk to 1.
func normalizeScores(scored []core.ScoredChunk) map[core.ID]float64 {
	if len(scored) == 0 {
		return nil
	}

	lowest, highest := scored[0].Score, scored[0].Score
	for _, s := range scored[1:] {
		if s.Score < lowest {
			lowest = s.Score
		}
		if s.Score > highest {
			highest = s.Score
		}
	}

	norm := make(map[core.ID]float64, len(scored))
	for _, s := range scored {
		if highest == lowest {
			norm[s.ChunkId] = 1.0
			continue
		}
		norm[s.ChunkId] = (s.Score - lowest) / (highest - lowest)
	}
	return norm
}

// hydrate resolves fused chunk references into full hits, preserving
// order. Chunks deleted between retrieval and hydration are dropped.
func (e *Engine) hydrate(ctx context.Context, fused []core.ScoredChunk) ([]*core.Hit, error) {
	if len(fused) == 0 {
		return []*core.Hit{}, nil
	}

	ids := make([]core.ID, len(fused))
	for i, s := range fused {
		ids[i] = s.ChunkId
	}

	chunks, err := e.store.GetChunks(ctx, ids...)
	if err != nil {
		e.logger.Error("error retrieving chunks", "chunkCount", len(ids), "err", err)
		return nil, err
	}

	chunkByID := make(map[core.ID]*core.Chunk, len(chunks))
	documentIDs := make([]core.ID, 0, len(chunks))
	seen := make(map[core.ID]bool)
	for _, chunk := range chunks {
		chunkByID[chunk.Id] = chunk
		if !seen[chunk.DocumentId] {
			seen[chunk.DocumentId] = true
			documentIDs = append(documentIDs, chunk.DocumentId)
		}
	}

	documents, err := e.store.GetDocuments(ctx, documentIDs...)
	if err != nil {
		e.logger.Error("error retrieving documents", "err", err)
		return nil, err
	}
	externalByID := make(map[core.ID]string, len(documents))
	for _, document := range documents {
		externalByID[document.Id] = document.ExternalID
	}

	hits := make([]*core.Hit, 0, len(fused))
	for _, s := range fused {
		chunk, ok := chunkByID[s.ChunkId]
		if !ok {
			continue
		}
		hits = append(hits, &core.Hit{
			ChunkId:    chunk.Id,
			DocumentID: externalByID[chunk.DocumentId],
			Page:       chunk.Page,
			Type:       chunk.Type,
			Text:       chunk.Text,
			BBox:       chunk.BBox,
			Score:      s.Score,
		})
	}
	return hits, nil
}

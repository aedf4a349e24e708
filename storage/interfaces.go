package storage

import (
	"context"

	"github.com/poiesic/docsearch/core"
)

// Store persists documents and chunks and provides lexical and vector
// top-K retrieval over them. Implementations must be thread-safe and
// support concurrent access.
//
// Raw lexical scores and raw vector similarities returned by the two
// top-K operations are NOT on comparable scales; reconciling them is
// the caller's job (see the search package).
type Store interface {
	// WriteMany persists one document together with all of its chunks.
	// The write is all-or-nothing: either the document row and every
	// chunk are committed, or nothing is. Chunk IDs are assigned from a
	// store sequence; DocumentId and InsertedAt are populated.
	// Re-ingesting an existing external document identifier replaces the
	// document and all of its previous chunks in the same transaction.
	// Returns the committed chunk IDs in input order.
	WriteMany(ctx context.Context, document *core.Document, chunks []*core.Chunk) ([]core.ID, error)

	// LexicalTopK returns up to k chunks ranked by term-frequency
	// relevance against the query text, highest raw score first, ties
	// broken by ascending chunk ID. Chunks sharing no term with the
	// query are not returned. A zero documentID means no document scope.
	LexicalTopK(ctx context.Context, query string, k int, documentID core.ID) ([]core.ScoredChunk, error)

	// VectorTopK returns up to k chunks ranked by cosine similarity to
	// the query vector, highest similarity first, ties broken by
	// ascending chunk ID. A zero documentID means no document scope.
	VectorTopK(ctx context.Context, vector []float32, k int, documentID core.ID) ([]core.ScoredChunk, error)

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// DeleteDocument removes a document and cascades to all of its
	// chunks and their index entries.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// Stats reports the number of documents and chunks in the store.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// Stats summarizes store contents.
type Stats struct {
	Documents int
	Chunks    int
}

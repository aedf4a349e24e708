package badger

import (
	"bytes"
	"context"
	"math"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// VectorTopK ranks chunks by cosine similarity to the query vector.
// This is a full scan over chunk records; the store's corpus sizes
// (one PDF collection) keep this well inside interactive latency.
func (s *Store) VectorTopK(ctx context.Context, vector []float32, k int, documentID core.ID) ([]core.ScoredChunk, error) {
	if k <= 0 || len(vector) == 0 {
		return nil, nil
	}

	var results []core.ScoredChunk
	prefix := []byte(chunkRecordPrefix + ":")

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil {
				continue
			}

			// Skip chunks without embeddings
			if len(chunk.Vector) == 0 {
				continue
			}

			if documentID != 0 && chunk.DocumentId != documentID {
				continue
			}

			results = append(results, core.ScoredChunk{
				ChunkId: chunk.Id,
				Score:   cosineSimilarity(vector, chunk.Vector),
			})
		}

		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortScored(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// cosineSimilarity calculates the cosine similarity of two vectors.
// Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

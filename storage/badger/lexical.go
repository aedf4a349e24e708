package badger

import (
	"bytes"
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// LexicalTopK ranks chunks by accumulated term frequency against the query.
// Chunks sharing no term with the query are not candidates, mirroring the
// behavior of a text-search engine's match operator.
func (s *Store) LexicalTopK(ctx context.Context, query string, k int, documentID core.ID) ([]core.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	terms := storage.Tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	// Query terms contribute once each, regardless of repetition.
	unique := make(map[string]bool, len(terms))
	for _, term := range terms {
		unique[term] = true
	}

	scores := make(map[core.ID]float64)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for term := range unique {
			prefix := makePartialTermPostingKey(term)

			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			iter := tx.NewIterator(opts)

			for iter.Rewind(); iter.Valid(); iter.Next() {
				key := iter.Item().Key()
				if !bytes.HasPrefix(key, prefix) {
					break
				}

				var docID core.ID
				var frequency int
				if err := iter.Item().Value(func(val []byte) error {
					docID, frequency = readPostingValue(val)
					return nil
				}); err != nil {
					iter.Close()
					return err
				}

				if documentID != 0 && docID != documentID {
					continue
				}

				scores[chunkIDFromPostingKey(key)] += float64(frequency)
			}
			iter.Close()
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	results := make([]core.ScoredChunk, 0, len(scores))
	for chunkID, score := range scores {
		results = append(results, core.ScoredChunk{ChunkId: chunkID, Score: score})
	}

	sortScored(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// sortScored orders by score descending, ties by ascending chunk ID.
func sortScored(results []core.ScoredChunk) {
	slices.SortFunc(results, func(a, b core.ScoredChunk) int {
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
}

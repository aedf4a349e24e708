package badger

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// WriteMany persists one document together with all of its chunks in a
// single transaction. Re-ingesting an existing external document identifier
// replaces the previous document and its chunks atomically.
func (s *Store) WriteMany(ctx context.Context, document *core.Document, chunks []*core.Chunk) ([]core.ID, error) {
	if err := core.ValidateDocument(document); err != nil {
		return nil, err
	}

	ids := make([]core.ID, len(chunks))
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		document.Id = core.IDFromContent(document.ExternalID)
		document.InsertedAt = time.Now().UTC()

		// Replace semantics: drop the previous version of this document,
		// chunks and index entries included, inside the same transaction.
		existing, err := readDocument(tx, makeDocumentKey(document.Id))
		if err != nil {
			return err
		}
		if existing != nil {
			if err := deleteDocumentTx(tx, existing); err != nil {
				return err
			}
		}

		if err := s.checkVectorDimensions(tx, chunks); err != nil {
			return err
		}

		if err := tx.Set(makeDocumentKey(document.Id), storage.MarshalDocument(document)); err != nil {
			return err
		}

		for i, chunk := range chunks {
			nextID, err := s.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = s.idSeq.Next()
				if err != nil {
					return err
				}
			}
			chunk.Id = core.ID(nextID)
			chunk.DocumentId = document.Id
			chunk.InsertedAt = document.InsertedAt
			if chunk.Tokens == 0 {
				chunk.Tokens = len(strings.Fields(chunk.Text))
			}

			if err := core.ValidateChunk(chunk); err != nil {
				return err
			}

			// Primary chunk record
			if err := tx.Set(makeChunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
				return err
			}

			// Document membership index
			if err := tx.Set(makeDocChunkKey(document.Id, chunk.Id), storage.MarshalID(chunk.Id)); err != nil {
				return err
			}

			// Lexical posting index
			for term, frequency := range storage.TermFrequencies(chunk.Text) {
				key := makeTermPostingKey(term, chunk.Id)
				if err := tx.Set(key, makePostingValue(document.Id, frequency)); err != nil {
					return err
				}
			}

			ids[i] = chunk.Id
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetChunks retrieves multiple chunks by their IDs.
func (s *Store) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error) {
	var result []*core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			chunk, err := readChunk(tx, makeChunkKey(id))
			if err != nil {
				return err
			}
			if chunk != nil {
				result = append(result, chunk)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteDocument removes a document and cascades to all of its chunks.
func (s *Store) DeleteDocument(ctx context.Context, id core.ID) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		document, err := readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if document == nil {
			return storage.ErrNotFound
		}
		if err := deleteDocumentTx(tx, document); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// deleteDocumentTx removes a document row, its chunks, membership index
// entries, and lexical postings within an open transaction.
func deleteDocumentTx(tx *badger.Txn, document *core.Document) error {
	prefix := makePartialDocChunkKey(document.Id)

	// Collect membership keys first; deleting while iterating the same
	// prefix is undefined in badger.
	var memberKeys [][]byte
	var chunkIDs []core.ID

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	for iter.Rewind(); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}
		memberKeys = append(memberKeys, iter.Item().KeyCopy(nil))

		var chunkID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			chunkID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			iter.Close()
			return err
		}
		chunkIDs = append(chunkIDs, chunkID)
	}
	iter.Close()

	for _, chunkID := range chunkIDs {
		chunkKey := makeChunkKey(chunkID)
		chunk, err := readChunk(tx, chunkKey)
		if err != nil {
			return err
		}
		if chunk == nil {
			return fmt.Errorf("%w: chunk %d missing during cascade delete", storage.ErrNotFound, chunkID)
		}

		// Postings are reproducible from chunk text; the tokenizer is
		// deterministic, so this finds exactly the keys WriteMany set.
		for term := range storage.TermFrequencies(chunk.Text) {
			if err := tx.Delete(makeTermPostingKey(term, chunkID)); err != nil {
				return err
			}
		}

		if err := tx.Delete(chunkKey); err != nil {
			return err
		}
	}

	for _, key := range memberKeys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}

	return tx.Delete(makeDocumentKey(document.Id))
}

// checkVectorDimensions enforces the store-wide fixed embedding
// dimensionality across writes.
func (s *Store) checkVectorDimensions(tx *badger.Txn, chunks []*core.Chunk) error {
	dim := 0
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			continue
		}
		if dim == 0 {
			dim = len(chunk.Vector)
			continue
		}
		if len(chunk.Vector) != dim {
			return fmt.Errorf("%w: %d vs %d within one write", storage.ErrDimensionMismatch, len(chunk.Vector), dim)
		}
	}
	if dim == 0 {
		return nil
	}

	item, err := tx.Get([]byte(vectorDimKey))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return tx.Set([]byte(vectorDimKey), makeVectorDimValue(dim))
		}
		return err
	}

	var stored int
	if err := item.Value(func(val []byte) error {
		stored = readVectorDimValue(val)
		return nil
	}); err != nil {
		return err
	}
	if stored != dim {
		return fmt.Errorf("%w: store holds %d-dimensional vectors, write carries %d", storage.ErrDimensionMismatch, stored, dim)
	}
	return nil
}

// readChunk reads a chunk from the transaction.
// Returns nil without error when the key does not exist.
func readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}

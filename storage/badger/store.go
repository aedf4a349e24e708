package badger

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsearch/storage"
)

// Store implements storage.Store for BadgerDB.
type Store struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.Store = (*Store)(nil)

// NewStore opens a BadgerDB-backed store at the given path.
//
// Returns storage.Store interface to enforce abstraction.
func NewStore(filePath string) (storage.Store, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return newStore(backend)
}

// newStore is an internal constructor that returns the concrete type.
// The store takes ownership of the backend and closes it on Close.
func newStore(backend *Backend) (*Store, error) {
	idSeq, err := backend.GetSequence(chunkIDSeq)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Store{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence and closes the backend.
func (s *Store) Close() error {
	if err := s.idSeq.Release(); err != nil {
		s.backend.logger.Error("error releasing chunk ID sequence", "err", err)
	}
	return s.backend.Close()
}

// Stats reports the number of documents and chunks in the store.
func (s *Store) Stats(ctx context.Context) (*storage.Stats, error) {
	stats := &storage.Stats{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		stats.Documents = countKeys(tx, []byte(docRecordPrefix+":"))
		stats.Chunks = countKeys(tx, []byte(chunkRecordPrefix+":"))
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// countKeys counts keys under a prefix without fetching values.
func countKeys(tx *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Item().Key(), prefix) {
			break
		}
		count++
	}
	return count
}

package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
)

// GetDocument retrieves a single document by ID.
func (s *Store) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDocuments retrieves multiple documents by their IDs.
func (s *Store) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error) {
	var result []*core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			document, err := readDocument(tx, makeDocumentKey(id))
			if err != nil {
				return err
			}
			if document != nil {
				result = append(result, document)
			}
		}
		return nil
	}, false)
	return result, err
}

// readDocument reads a document from the transaction.
// Returns nil without error when the key does not exist.
func readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var document *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		document, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return document, err
}

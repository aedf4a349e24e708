// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package docsearch

import (
	"log/slog"

	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/ai/openai"
	"github.com/poiesic/docsearch/ingest"
	"github.com/poiesic/docsearch/search"
	"github.com/poiesic/docsearch/storage"
	"github.com/poiesic/docsearch/storage/badger"
)

// Database bundles the chunk store and the embedder behind one handle and
// hands out ingestion pipelines and search engines wired to both.
type Database struct {
	store    storage.Store
	embedder ai.Embedder
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
}

// WithAIConfig sets the embedder endpoint configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects a pre-built embedder instead of constructing the
// OpenAI-compatible one.
func WithEmbedder(embedder ai.Embedder) DatabaseOption {
	return func(o *databaseOptions) {
		o.embedder = embedder
	}
}

// NewDatabase opens the store at filePath and wires an embedder to it.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.NewStore(filePath)
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	return &Database{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
	}, nil
}

// Close closes the underlying store.
func (db *Database) Close() error {
	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// Store exposes the underlying chunk store.
func (db *Database) Store() storage.Store {
	return db.store
}

// NewIngestionPipeline creates an ingestion pipeline bound to this database.
func (db *Database) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(db.store, db.embedder, opts...)
}

// NewSearchEngine creates a search engine bound to this database.
func (db *Database) NewSearchEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(db.store, db.embedder, opts...)
}

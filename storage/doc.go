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


// Package storage provides the storage abstraction layer for docsearch.
//
// This package defines the Store interface that decouples persistence and
// top-K retrieval from business logic. It allows for different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	store, err := badger.NewStore(path)  // returns storage.Store interface
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Capabilities
//
// A Store combines four concerns behind one transactional boundary:
//
//   - Document and chunk persistence (WriteMany is all-or-nothing per document)
//   - A lexical index derived from chunk text (LexicalTopK)
//   - Vector similarity retrieval over chunk embeddings (VectorTopK)
//   - Cascading document deletion
//
// # Thread Safety
//
// All Store implementations must be thread-safe and support concurrent
// access from multiple goroutines. Concurrent ingestion of the SAME
// document identifier is not supported; callers must serialize
// per-document writes.
//
// # Context Support
//
// All Store methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package storage

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


package ingest

import "errors"

var (
	// ErrStoreRequired indicates that a nil store was passed to the pipeline.
	ErrStoreRequired = errors.New("store is required")

	// ErrEmbedderRequired indicates that a nil embedder was passed to the pipeline.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrDocumentRequired indicates that a nil parsed document was passed for ingestion.
	ErrDocumentRequired = errors.New("document is required")

	// ErrEmbeddingFailed indicates that embedding the document's chunks failed.
	ErrEmbeddingFailed = errors.New("embedding failed")
)

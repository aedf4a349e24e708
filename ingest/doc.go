// Package ingest provides pipeline orchestration for indexing parsed documents.
//
// The Pipeline type manages the ingestion workflow for one document, including:
//   - Normalizing extracted fragments into chunks
//   - Generating embeddings for every chunk
//   - Persisting the document and its chunks atomically
//
// Embedding is performed concurrently using a worker pool. A document is
// either fully indexed or not indexed at all: any embedding or storage
// failure leaves the store unchanged.
package ingest

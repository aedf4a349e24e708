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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ExternalID must not be empty
//   - NumPages must not be negative
//
// NOT validated (populated by the store):
//   - Id (derived from ExternalID at write time)
//   - InsertedAt (set at write time)
func ValidateDocument(document *Document) error {
	if document == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if document.ExternalID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}

	if document.NumPages < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidPage)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Type must be a valid ChunkType
//   - Page must not be negative
//
// NOT validated (populated by the pipeline and store):
//   - Vector (can be empty until the embedder runs)
//   - Id (0 is valid before database sequences assign one)
//   - DocumentId (bound at write time)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if err := ValidateChunkType(chunk.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if chunk.Page < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidPage)
	}

	return nil
}

// ValidateChunkType validates that a ChunkType has a valid value.
func ValidateChunkType(chunkType ChunkType) error {
	switch chunkType {
	case ChunkTypeParagraph, ChunkTypeTable, ChunkTypeImageOCR, ChunkTypeCaption:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidChunkType, chunkType)
	}
}

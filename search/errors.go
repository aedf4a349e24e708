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


package search

import "errors"

var (
	// ErrStoreRequired is returned when a store is not provided.
	ErrStoreRequired = errors.New("store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmptyQuery is returned when the query text is empty or whitespace.
	ErrEmptyQuery = errors.New("query text is empty")

	// ErrAlphaOutOfRange is returned when the fusion weight is outside [0, 1].
	ErrAlphaOutOfRange = errors.New("alpha must be between 0 and 1")

	// ErrLimitOutOfRange is returned when the result limit is outside the allowed range.
	ErrLimitOutOfRange = errors.New("limit out of range")
)

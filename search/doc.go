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


// Package search provides hybrid lexical and vector search over indexed chunks.
//
// The Engine type combines two retrieval axes:
//   - Lexical search using term-frequency relevance
//   - Vector search using embedding cosine similarity
//
// Scores from each axis are min-max normalized over the retrieved window
// and fused with a configurable weight, so that results strong on either
// axis surface in one consistent ranking.
package search

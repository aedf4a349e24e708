// Package mock provides test doubles for the ai package interfaces.
//
// The mocks generate deterministic vectors from text hashes by default,
// so tests get stable, repeatable embeddings without an external service.
// Custom behavior can be injected via function fields.
package mock

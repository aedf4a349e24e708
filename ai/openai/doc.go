// Package openai provides an ai.Embedder implementation backed by
// OpenAI-compatible embedding APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The embedder is built on langchaingo's OpenAI client and strips newlines
// from input text before embedding, matching common embedding model
// recommendations. Vector dimensionality is checked against the configured
// store dimension on every call.
package openai

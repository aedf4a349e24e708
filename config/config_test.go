package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Embedder.Host)
	assert.Equal(t, "all-minilm", cfg.Embedder.Model)
	assert.Equal(t, 384, cfg.Embedder.Dimension)
	assert.Equal(t, 1800, cfg.Ingest.MaxChunkChars)
	require.NotNil(t, cfg.Search.Alpha)
	assert.Equal(t, 0.5, *cfg.Search.Alpha)
	assert.Equal(t, 10, cfg.Search.Limit)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "embedder:\n  model: nomic-embed-text\n  dimension: 768\nsearch:\n  alpha: 0.7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nomic-embed-text", cfg.Embedder.Model)
	assert.Equal(t, 768, cfg.Embedder.Dimension)
	require.NotNil(t, cfg.Search.Alpha)
	assert.Equal(t, 0.7, *cfg.Search.Alpha)

	// Unset fields fall back to defaults
	assert.Equal(t, "http://localhost:11434/v1", cfg.Embedder.Host)
	assert.Equal(t, 10, cfg.Search.Limit)
}

func TestLoad_ZeroAlphaIsPreserved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "search:\n  alpha: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// An explicit 0 means vector-only search, not an unset field
	require.NotNil(t, cfg.Search.Alpha)
	assert.Equal(t, 0.0, *cfg.Search.Alpha)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t bad"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Path = "/var/lib/docsearch"
	cfg.Search.Limit = 25
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/docsearch", loaded.Storage.Path)
	assert.Equal(t, 25, loaded.Search.Limit)
}

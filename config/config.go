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


// Package config loads the application configuration from YAML files.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StorageConfig configures the chunk store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// EmbedderConfig configures the OpenAI-compatible embedding endpoint.
type EmbedderConfig struct {
	Host      string `yaml:"host"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	MaxChunkChars int `yaml:"max_chunk_chars"`
	BatchSize     int `yaml:"batch_size"`
	PoolSize      int `yaml:"pool_size"`
}

// SearchConfig configures hybrid search defaults. Alpha is a pointer so
// an explicit 0 (vector-only search) is distinguishable from an unset field.
type SearchConfig struct {
	Alpha *float64 `yaml:"alpha"`
	Limit int      `yaml:"limit"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Storage  StorageConfig  `yaml:"storage"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Search   SearchConfig   `yaml:"search"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath()
	}
	if cfg.Embedder.Host == "" {
		cfg.Embedder.Host = "http://localhost:11434/v1"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "all-minilm"
	}
	if cfg.Embedder.Dimension == 0 {
		cfg.Embedder.Dimension = 384
	}
	if cfg.Ingest.MaxChunkChars == 0 {
		cfg.Ingest.MaxChunkChars = 1800
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 32
	}
	if cfg.Search.Alpha == nil {
		alpha := 0.5
		cfg.Search.Alpha = &alpha
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = 10
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsearch.db"
	}
	return filepath.Join(home, ".docsearch", "db")
}

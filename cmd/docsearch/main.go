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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/docsearch"
	"github.com/poiesic/docsearch/ai"
	"github.com/poiesic/docsearch/config"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/ingest"
	"github.com/poiesic/docsearch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env for local overrides; absence is not an error
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "docsearch",
		Usage: "Hybrid passage search over parsed PDF documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"DOCSEARCH_CONFIG"},
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config)",
				EnvVars: []string{"DOCSEARCH_DB"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Index parsed document JSON files",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
			},
			{
				Name:      "search",
				Usage:     "Run a hybrid search",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "alpha",
						Usage: "Lexical weight between 0 (vector only) and 1 (lexical only)",
						Value: search.DefaultAlpha,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Maximum number of hits",
						Value:   search.DefaultLimit,
					},
					&cli.StringFlag{
						Name:  "doc",
						Usage: "Restrict the search to one external document identifier",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print intermediate retrieval stages",
					},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a document and all of its chunks",
				ArgsUsage: "DOCUMENT_ID",
				Action:    deleteCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show document and chunk counts",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase loads configuration and opens the database honoring
// command-line overrides.
func openDatabase(c *cli.Context) (*docsearch.Database, *config.AppConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPath := cfg.Storage.Path
	if c.String("db") != "" {
		dbPath = c.String("db")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedder.Host),
		ai.WithEmbeddingModel(cfg.Embedder.Model),
		ai.WithDimension(cfg.Embedder.Dimension),
	)

	db, err := docsearch.NewDatabase(dbPath, docsearch.WithAIConfig(aiConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, cfg, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one parsed document file is required")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []ingest.Option{
		ingest.WithBatchSize(cfg.Ingest.BatchSize),
		ingest.WithNormalizer(ingest.NewNormalizer(
			ingest.WithMaxChunkChars(cfg.Ingest.MaxChunkChars))),
	}
	if cfg.Ingest.PoolSize > 0 {
		opts = append(opts, ingest.WithPoolSize(cfg.Ingest.PoolSize))
	}

	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var parsed ingest.ParsedDocument
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		result, err := pipeline.IngestDocument(ctx, &parsed)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		fmt.Printf("%s: indexed %d chunks (document %d)\n",
			parsed.DocumentID, len(result.ChunkIds), result.DocumentId)
	}

	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query text is required")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewSearchEngine()
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	query := searchQuery(c, cfg)

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = &printingMonitor{out: os.Stderr}
	}

	hits, err := engine.SearchWithMonitor(context.Background(), query, monitor)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("%d: [%0.3f] %s p.%d (%s) %s\n",
			i+1, hit.Score, hit.DocumentID, hit.Page, hit.Type, hit.Text)
	}
	return nil
}

// searchQuery builds the query from command-line flags, falling back to
// the configured search defaults when a flag is not given.
func searchQuery(c *cli.Context, cfg *config.AppConfig) search.Query {
	alpha := *cfg.Search.Alpha
	if c.IsSet("alpha") {
		alpha = c.Float64("alpha")
	}

	limit := cfg.Search.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}

	query := search.Query{
		Text:  strings.Join(c.Args().Slice(), " "),
		Alpha: &alpha,
		Limit: limit,
	}
	if doc := c.String("doc"); doc != "" {
		query.DocumentID = core.IDFromContent(doc)
	}
	return query
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document identifier is required")
	}

	db, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	externalID := c.Args().First()
	if err := db.Store().DeleteDocument(context.Background(), core.IDFromContent(externalID)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", externalID, err)
	}
	fmt.Printf("deleted %s\n", externalID)
	return nil
}

func statsCommand(c *cli.Context) error {
	db, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Store().Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("documents: %d\nchunks: %d\n", stats.Documents, stats.Chunks)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

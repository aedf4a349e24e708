package main

import (
	"flag"
	"testing"

	"github.com/poiesic/docsearch/config"
	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newSearchContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.Float64("alpha", search.DefaultAlpha, "")
	fs.Int("limit", search.DefaultLimit, "")
	fs.String("doc", "", "")
	require.NoError(t, fs.Parse(args))

	return cli.NewContext(nil, fs, nil)
}

func testConfig(alpha float64, limit int) *config.AppConfig {
	cfg := config.DefaultConfig()
	cfg.Search.Alpha = &alpha
	cfg.Search.Limit = limit
	return cfg
}

func TestSearchQuery_ConfiguredDefaults(t *testing.T) {
	c := newSearchContext(t, "turbine", "blades")

	query := searchQuery(c, testConfig(0.9, 25))

	assert.Equal(t, "turbine blades", query.Text)
	require.NotNil(t, query.Alpha)
	assert.Equal(t, 0.9, *query.Alpha)
	assert.Equal(t, 25, query.Limit)
	assert.Equal(t, core.ID(0), query.DocumentID)
}

func TestSearchQuery_FlagsOverrideConfig(t *testing.T) {
	c := newSearchContext(t, "--alpha", "0.2", "--limit", "3", "turbine")

	query := searchQuery(c, testConfig(0.9, 25))

	require.NotNil(t, query.Alpha)
	assert.Equal(t, 0.2, *query.Alpha)
	assert.Equal(t, 3, query.Limit)
}

func TestSearchQuery_ZeroAlphaFromConfig(t *testing.T) {
	c := newSearchContext(t, "turbine")

	query := searchQuery(c, testConfig(0, 10))

	// A configured alpha of 0 requests vector-only search
	require.NotNil(t, query.Alpha)
	assert.Equal(t, 0.0, *query.Alpha)
}

func TestSearchQuery_DocumentScope(t *testing.T) {
	c := newSearchContext(t, "--doc", "manual-1", "turbine")

	query := searchQuery(c, config.DefaultConfig())

	assert.Equal(t, core.IDFromContent("manual-1"), query.DocumentID)
}

package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/astromap"
	"github.com/agentstation/astromap/pkg/logging"
	"github.com/agentstation/astromap/pkg/merging"
)

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	app, err := New("1.0.0", "abc123", "2025-01-01", "test", opts...)
	require.NoError(t, err)
	return app
}

func TestNew(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2025-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestMergerSingleton(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 20
	mergers := make([]*merging.Merger, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := app.Merger()
			assert.NoError(t, err)
			mergers[i] = m
		}(i)
	}
	wg.Wait()

	for _, m := range mergers[1:] {
		assert.Same(t, mergers[0], m)
	}
	assert.Equal(t, merging.DefaultSpec(), merging.Describe(mergers[0].Root()))
}

func TestMergerFromPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: record\nfields:\n  recipes:\n    strategy: skip\n"), 0o600))

	app := newTestApp(t)
	app.Config().PolicyFile = path

	spec, err := app.PolicySpec()
	require.NoError(t, err)
	assert.Equal(t, merging.StrategyRecord, spec.Strategy)
	require.Contains(t, spec.Fields, "recipes")
	assert.Equal(t, merging.StrategySkip, spec.Fields["recipes"].Strategy)
}

func TestMergerBadPolicyFile(t *testing.T) {
	app := newTestApp(t)
	app.Config().PolicyFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := app.Merger()
	require.Error(t, err)

	_, err = app.Scraper()
	require.Error(t, err)
}

func TestWithMerger(t *testing.T) {
	m, err := merging.New(merging.WithPolicy(merging.Add()))
	require.NoError(t, err)

	app := newTestApp(t, WithMerger(m))
	got, err := app.Merger()
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func TestScraperAppliesOverrides(t *testing.T) {
	app := newTestApp(t)

	s, err := app.Scraper()
	require.NoError(t, err)
	assert.Len(t, s.Parsers(), 10)

	_, err = app.Scraper(astromap.WithConcurrency(0))
	require.Error(t, err)
}

func execute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	cmd := app.createRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return stdout.String()
}

func TestExecuteVersion(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, "astromap 1.0.0\n", execute(t, app, "version"))
}

func TestExecutePages(t *testing.T) {
	app := newTestApp(t)
	out := execute(t, app, "pages", "-o", "json", "--log-level", "error")
	assert.Contains(t, out, `"name": "Resources"`)
	assert.Equal(t, "json", app.Config().Format)
	assert.Equal(t, "error", app.Config().LogLevel)
}

func TestExecuteConfiguresDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	app := newTestApp(t)
	execute(t, app, "pages", "-o", "json", "--log-level", "error")
	assert.Equal(t, zerolog.ErrorLevel, logging.Default().GetLevel())
}

func TestExecutePolicyFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{strategy: "add"}`), 0o600))

	app := newTestApp(t)
	out := execute(t, app, "policy", "--policy", path, "-o", "yaml")
	assert.Contains(t, out, "strategy: add")
}

// Package app provides the application context and dependency management
// for the astromap CLI. Configuration, logging and the merge policy are
// loaded once here and handed to commands through appcontext.Interface.
package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/astromap"
	"github.com/agentstation/astromap/internal/appcontext"
	"github.com/agentstation/astromap/pkg/merging"
)

// App represents the astromap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Merger built from the configured policy (lazy-initialized, singleton)
	mu     sync.RWMutex
	merger *merging.Merger
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Merger returns the merger for the configured policy file, creating it
// lazily. Without a policy file the default policy tree is used.
func (a *App) Merger() (*merging.Merger, error) {
	a.mu.RLock()
	if a.merger != nil {
		m := a.merger
		a.mu.RUnlock()
		return m, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.merger != nil {
		return a.merger, nil
	}

	opts := []merging.Option{merging.WithLogger(a.logger)}
	if a.config.PolicyFile != "" {
		spec, err := merging.LoadSpec(a.config.PolicyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, merging.WithSpec(spec))
	}

	m, err := merging.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating merger: %w", err)
	}
	a.merger = m
	return m, nil
}

// PolicySpec returns the active policy tree as a spec document.
func (a *App) PolicySpec() (*merging.Spec, error) {
	m, err := a.Merger()
	if err != nil {
		return nil, err
	}
	return merging.Describe(m.Root()), nil
}

// Scraper creates a scraper from the configuration. opts are applied after
// the configured options so callers can override them.
func (a *App) Scraper(opts ...astromap.Option) (*astromap.Scraper, error) {
	m, err := a.Merger()
	if err != nil {
		return nil, err
	}

	all := []astromap.Option{
		astromap.WithInputDir(a.config.InputDir),
		astromap.WithOutputDir(a.config.OutputDir),
		astromap.WithBaseURL(a.config.BaseURL),
		astromap.WithMerger(m),
		astromap.WithWritePartials(a.config.WritePartials),
	}
	return astromap.New(append(all, opts...)...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithMerger sets a custom merger, bypassing the policy file.
func WithMerger(m *merging.Merger) Option {
	return func(a *App) error {
		a.merger = m
		return nil
	}
}

// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than the
// concrete App, so they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/astromap"
	"github.com/agentstation/astromap/pkg/merging"
)

// Interface defines the application context that commands need.
// The App struct from cmd/astromap/app implements it.
type Interface interface {
	// Scraper creates a scraper from the configuration. opts are applied
	// after the configured ones, so commands can override them.
	Scraper(opts ...astromap.Option) (*astromap.Scraper, error)

	// Merger returns the merger built from the configured policy file, or
	// the default policy tree when none is configured.
	Merger() (*merging.Merger, error)

	// PolicySpec returns the policy tree as a spec document.
	PolicySpec() (*merging.Spec, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

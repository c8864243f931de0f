package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/astromap"
	"github.com/agentstation/astromap/pkg/merging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ScraperFunc      func(...astromap.Option) (*astromap.Scraper, error)
	MergerFunc       func() (*merging.Merger, error)
	PolicySpecFunc   func() (*merging.Spec, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Scraper returns a scraper using the mock function or astromap.New.
func (m *Mock) Scraper(opts ...astromap.Option) (*astromap.Scraper, error) {
	if m.ScraperFunc != nil {
		return m.ScraperFunc(opts...)
	}
	return astromap.New(opts...)
}

// Merger returns a merger using the mock function or the default merger.
func (m *Mock) Merger() (*merging.Merger, error) {
	if m.MergerFunc != nil {
		return m.MergerFunc()
	}
	return merging.Default(), nil
}

// PolicySpec returns a spec using the mock function or the default spec.
func (m *Mock) PolicySpec() (*merging.Spec, error) {
	if m.PolicySpecFunc != nil {
		return m.PolicySpecFunc()
	}
	return merging.DefaultSpec(), nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

package astromap

import (
	"github.com/agentstation/astromap/internal/pages"
	"github.com/agentstation/astromap/internal/transport"
	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/merging"
)

// Option is a function that configures a Scraper.
type Option func(*config) error

// config holds the Scraper configuration.
type config struct {
	inputDir      string
	outputDir     string
	baseURL       string
	parsers       []pages.Parser
	merger        *merging.Merger
	fetcher       transport.Fetcher
	writePartials bool
	concurrency   int
}

func defaultConfig() *config {
	return &config{
		inputDir:    constants.DefaultInputDir,
		outputDir:   constants.DefaultOutputDir,
		baseURL:     constants.DefaultBaseURL,
		concurrency: constants.MaxConcurrentPages,
	}
}

// WithInputDir sets the directory cached wiki pages are kept in.
func WithInputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("input_dir", dir, "cannot be empty")
		}
		c.inputDir = dir
		return nil
	}
}

// WithOutputDir sets the directory the dataset is written to.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("output_dir", dir, "cannot be empty")
		}
		c.outputDir = dir
		return nil
	}
}

// WithBaseURL sets the wiki root pages are fetched from. It is ignored
// when a custom fetcher is configured.
func WithBaseURL(url string) Option {
	return func(c *config) error {
		if url != "" {
			c.baseURL = url
		}
		return nil
	}
}

// WithParsers replaces the default parsers. Their order is the merge order.
func WithParsers(parsers ...pages.Parser) Option {
	return func(c *config) error {
		if len(parsers) == 0 {
			return errors.NewValidationError("parsers", nil, "at least one parser is required")
		}
		c.parsers = parsers
		return nil
	}
}

// WithMerger sets the merger used to combine parser records.
func WithMerger(m *merging.Merger) Option {
	return func(c *config) error {
		if m == nil {
			return errors.NewValidationError("merger", nil, "cannot be nil")
		}
		c.merger = m
		return nil
	}
}

// WithFetcher replaces the cached wiki client.
func WithFetcher(f transport.Fetcher) Option {
	return func(c *config) error {
		if f == nil {
			return errors.NewValidationError("fetcher", nil, "cannot be nil")
		}
		c.fetcher = f
		return nil
	}
}

// WithWritePartials also writes each parser's record to <output>/<Page>.json.
func WithWritePartials(enabled bool) Option {
	return func(c *config) error {
		c.writePartials = enabled
		return nil
	}
}

// WithConcurrency bounds how many pages are fetched and parsed at once.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("concurrency", n, "must be at least 1")
		}
		c.concurrency = n
		return nil
	}
}

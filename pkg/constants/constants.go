// Package constants provides shared constants used throughout astromap:
// wiki locations, directory layout, timeouts, limits and file permissions.
package constants

import "time"

// Wiki locations.
const (
	// DefaultBaseURL is the wiki root that page names are appended to.
	DefaultBaseURL = "https://astroneer.wiki.gg/wiki/"

	// UserAgent is sent with every page request.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"
)

// Directory layout.
const (
	// DefaultInputDir holds cached wiki pages, one <Page>.html per parser.
	DefaultInputDir = "./input"

	// DefaultOutputDir receives per-page partial records and the merged dataset.
	DefaultOutputDir = "./output"

	// DatasetFilename is the merged dataset written into the output directory.
	DatasetFilename = "data.json"

	// PageExtension is appended to cached page files.
	PageExtension = ".html"

	// JSONIndent is used for every JSON document astromap writes.
	JSONIndent = "    "
)

// Timeouts.
const (
	// DefaultHTTPTimeout bounds a single page request.
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 10 * time.Minute
)

// Limits.
const (
	// MaxConcurrentPages bounds how many parsers run at once.
	MaxConcurrentPages = 4

	// RequestsPerSecond limits page requests against the wiki.
	RequestsPerSecond = 2

	// RequestBurst is the rate limiter burst size.
	RequestBurst = 2

	// MinMergeRecords is the minimum number of records a merge accepts.
	MinMergeRecords = 2
)

// File permissions.
const (
	// DirPermissions is used for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is used for created files (rw-r--r--).
	FilePermissions = 0644
)

// Package emoji provides symbol constants for CLI output.
package emoji

import "github.com/agentstation/astromap/internal/pages"

// Symbols used for status lines on stderr.
const (
	// Success marks a parser or run that completed.
	Success = "✓"

	// Error marks a failed parser.
	Error = "✗"

	// Warning marks a run that finished with failed parsers.
	Warning = "!"

	// Optional marks a page whose parser is not implemented yet.
	Optional = "-"
)

// ForStatus returns the symbol for a parser outcome status.
func ForStatus(status pages.Status) string {
	switch status {
	case pages.StatusSuccess:
		return Success
	case pages.StatusNotImplemented:
		return Optional
	}
	return Error
}

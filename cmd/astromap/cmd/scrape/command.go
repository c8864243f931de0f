// Package scrape provides the scrape command.
package scrape

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/astromap"
	"github.com/agentstation/astromap/internal/appcontext"
	"github.com/agentstation/astromap/internal/cmd/emoji"
	"github.com/agentstation/astromap/internal/cmd/output"
	"github.com/agentstation/astromap/internal/cmd/table"
	"github.com/agentstation/astromap/internal/pages"
	"github.com/agentstation/astromap/pkg/constants"
)

// Flags holds the scrape command flags.
type Flags struct {
	InputDir    string
	OutputDir   string
	Partials    bool
	Concurrency int
	Timeout     time.Duration
}

// Report is the json and yaml view of a scrape run.
type Report struct {
	Summary      string       `json:"summary" yaml:"summary"`
	DatasetPath  string       `json:"dataset_path,omitempty" yaml:"dataset_path,omitempty"`
	PartialPaths []string     `json:"partial_paths,omitempty" yaml:"partial_paths,omitempty"`
	Duration     string       `json:"duration" yaml:"duration"`
	Parsers      []ParserLine `json:"parsers" yaml:"parsers"`
}

// ParserLine reports one parser outcome.
type ParserLine struct {
	Parser   string `json:"parser" yaml:"parser"`
	Status   string `json:"status" yaml:"status"`
	Duration string `json:"duration" yaml:"duration"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewCommand creates the scrape command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "scrape [page...]",
		GroupID: "core",
		Short:   "Scrape wiki pages into the dataset",
		Long: `Scrape fetches every wiki page (or only the named ones), parses it into a
partial record and merges the records into <output-dir>/data.json.

Pages are cached in the input directory and only fetched when missing.
Parsers that fail are reported and do not stop the run.`,
		Example: `  astromap scrape                      # Scrape all pages
  astromap scrape Items                # Scrape only the Items page
  astromap scrape --partials -o json   # Keep per-page records, print JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			opts, err := BuildOptions(app, flags, args)
			if err != nil {
				return err
			}
			scraper, err := app.Scraper(opts...)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.Timeout)
			defer cancel()

			result, runErr := scraper.Run(ctx)
			if result == nil {
				return runErr
			}
			if err := output.Print(cmd.OutOrStdout(), format, NewReport(result), func(bool) output.Data {
				return table.OutcomesToTableData(result.Outcomes)
			}); err != nil {
				return err
			}
			if format == output.FormatTable || format == output.FormatWide {
				PrintSummary(cmd.ErrOrStderr(), result)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&flags.InputDir, "input-dir", "", "directory pages are cached in")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "directory the dataset is written to")
	cmd.Flags().BoolVar(&flags.Partials, "partials", false, "also write each page record to <output-dir>/<Page>.json")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 0, "number of pages parsed at once")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.CommandTimeout, "abort the run after this long")

	return cmd
}

// BuildOptions turns flags and page arguments into scraper options. Flags
// left at their zero value keep the configured setting.
func BuildOptions(app appcontext.Interface, flags *Flags, names []string) ([]astromap.Option, error) {
	var opts []astromap.Option

	if flags.InputDir != "" {
		opts = append(opts, astromap.WithInputDir(flags.InputDir))
	}
	if flags.OutputDir != "" {
		opts = append(opts, astromap.WithOutputDir(flags.OutputDir))
	}
	if flags.Partials {
		opts = append(opts, astromap.WithWritePartials(true))
	}
	if flags.Concurrency > 0 {
		opts = append(opts, astromap.WithConcurrency(flags.Concurrency))
	}

	if len(names) > 0 {
		merger, err := app.Merger()
		if err != nil {
			return nil, err
		}
		selected, err := pages.Select(pages.All(merger), names)
		if err != nil {
			return nil, err
		}
		opts = append(opts, astromap.WithParsers(selected...))
	}

	return opts, nil
}

// PrintSummary writes the run summary followed by one line per failed
// parser.
func PrintSummary(w io.Writer, result *astromap.Result) {
	symbol := emoji.Success
	failures := result.Failures()
	if len(failures) > 0 || result.Dataset == nil {
		symbol = emoji.Warning
	}
	fmt.Fprintf(w, "%s %s\n", symbol, result.Summary())
	for _, out := range failures {
		fmt.Fprintf(w, "  %s %s: %v\n", emoji.ForStatus(out.Status), out.Parser, out.Err)
	}
}

// NewReport builds the json and yaml view of result.
func NewReport(result *astromap.Result) Report {
	report := Report{
		Summary:      result.Summary(),
		DatasetPath:  result.DatasetPath,
		PartialPaths: result.PartialPaths,
		Duration:     result.Duration().Round(time.Millisecond).String(),
		Parsers:      make([]ParserLine, 0, len(result.Outcomes)),
	}
	for _, out := range result.Outcomes {
		line := ParserLine{
			Parser:   out.Parser,
			Status:   out.Status.String(),
			Duration: out.Duration.Round(time.Millisecond).String(),
		}
		if out.Err != nil {
			line.Error = out.Err.Error()
		}
		report.Parsers = append(report.Parsers, line)
	}
	return report
}

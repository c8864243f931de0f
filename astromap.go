// Package astromap scrapes the Astroneer wiki into one JSON dataset of
// items and recipes.
//
// Every wiki page has a parser that produces a partial record. A Scraper
// runs the parsers concurrently, reports each one's outcome, and merges the
// successful records with a merge policy tree, in parser order:
//
//	s, err := astromap.New(astromap.WithOutputDir("./output"))
//	if err != nil {
//	    return err
//	}
//	result, err := s.Run(ctx)
//	if err != nil {
//	    return err // a *errors.DatasetError when merging failed
//	}
//	fmt.Println(result.Summary())
package astromap

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/utc"

	"github.com/agentstation/astromap/internal/pages"
	"github.com/agentstation/astromap/internal/transport"
	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

// Scraper runs page parsers and merges their records into a dataset.
type Scraper struct {
	config *config
}

// New creates a Scraper with the given options.
func New(opts ...Option) (*Scraper, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	if cfg.merger == nil {
		cfg.merger = merging.Default()
	}
	if cfg.parsers == nil {
		cfg.parsers = pages.All(cfg.merger)
	}
	if cfg.fetcher == nil {
		cfg.fetcher = transport.NewCache(cfg.inputDir, transport.New(transport.WithBaseURL(cfg.baseURL)))
	}

	return &Scraper{config: cfg}, nil
}

// Parsers returns the configured parsers in merge order.
func (s *Scraper) Parsers() []pages.Parser {
	return s.config.parsers
}

// Run parses every page and writes the merged dataset to
// <output>/data.json. Parser failures do not stop the run; they are
// reported on the Result. A failed merge returns the Result together with
// a *errors.DatasetError.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	result := &Result{StartedAt: utc.Now()}
	defer func() { result.FinishedAt = utc.Now() }()

	result.Outcomes = s.parse(ctx)
	result.Stats = countOutcomes(result.Outcomes)
	report(ctx, result.Outcomes)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if s.config.writePartials {
		for _, out := range result.Outcomes {
			if !out.OK() {
				continue
			}
			path, err := writeJSON(s.config.outputDir, out.Parser+".json", out.Record)
			if err != nil {
				return result, err
			}
			result.PartialPaths = append(result.PartialPaths, path)
		}
	}

	dataset, err := s.merge(result.Outcomes)
	if err != nil {
		logger.Error().Err(err).Msg("Dataset merge failed")
		return result, &errors.DatasetError{Err: err}
	}
	result.Dataset = dataset
	result.Stats.Items, result.Stats.Recipes = countDataset(dataset)

	path, err := writeJSON(s.config.outputDir, constants.DatasetFilename, dataset)
	if err != nil {
		return result, err
	}
	result.DatasetPath = path

	logger.Info().
		Str("file", path).
		Int("items", result.Stats.Items).
		Int("recipes", result.Stats.Recipes).
		Msg("Wrote dataset")
	return result, nil
}

// parse runs the parsers concurrently. Outcomes keep the parser order.
func (s *Scraper) parse(ctx context.Context) []pages.Outcome {
	outcomes := make([]pages.Outcome, len(s.config.parsers))
	sem := make(chan struct{}, s.config.concurrency)

	var wg sync.WaitGroup
	for i, p := range s.config.parsers {
		wg.Add(1)
		go func(i int, p pages.Parser) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				outcomes[i] = pages.Failed(p.Name(), ctx.Err())
				return
			}
			outcomes[i] = pages.Run(ctx, p, s.config.fetcher)
		}(i, p)
	}
	wg.Wait()

	return outcomes
}

// merge reduces the successful records left to right, starting from an
// empty dataset so the output always has items and recipes.
func (s *Scraper) merge(outcomes []pages.Outcome) (any, error) {
	records := []any{emptyDataset()}
	for _, out := range outcomes {
		if out.OK() {
			records = append(records, out.Record)
		}
	}
	if len(records) == 1 {
		return nil, &errors.ArgumentCountError{Got: 0, Min: constants.MinMergeRecords}
	}
	return s.config.merger.Merge(records...)
}

func emptyDataset() *record.Map {
	return record.MapOf("items", record.NewMap(), "recipes", []any{})
}

// report logs one line per parser, mirroring the per-page progress output.
func report(ctx context.Context, outcomes []pages.Outcome) {
	logger := logging.FromContext(ctx)
	for _, out := range outcomes {
		switch out.Status {
		case pages.StatusSuccess:
			logger.Info().Str("parser", out.Parser).Dur("elapsed", out.Duration).Msg("Parser is done")
		case pages.StatusNotImplemented:
			logger.Warn().Str("parser", out.Parser).Msg("Parser is not implemented")
		default:
			logger.Error().Err(out.Err).Str("parser", out.Parser).Msg("Parser failed")
		}
	}
}

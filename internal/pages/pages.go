// Package pages turns wiki pages into partial dataset records.
//
// Each Parser handles one wiki page and returns a record shaped like the
// dataset, {items: {name: item}, recipes: [recipe]}, or a subset of it.
// Run fetches the page and reports an Outcome instead of failing, so a
// caller can collect every parser's result before merging.
package pages

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/astromap/internal/transport"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

// Parser extracts a partial record from one wiki page.
type Parser interface {
	// Name is the wiki page name. It also names the cached page and the
	// partial output file.
	Name() string
	Parse(ctx context.Context, doc *goquery.Document) (*record.Map, error)
}

// Status is the kind of an Outcome.
type Status int

const (
	// StatusSuccess means the parser produced a record.
	StatusSuccess Status = iota
	// StatusNotImplemented means the page has no parser yet.
	StatusNotImplemented
	// StatusFailed means fetching or parsing the page failed.
	StatusFailed
)

// String returns the status as shown in logs and tables.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotImplemented:
		return "not implemented"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the result of running one parser.
type Outcome struct {
	Parser   string
	Status   Status
	Record   *record.Map // set on StatusSuccess
	Err      error       // set on StatusFailed
	Duration time.Duration
}

// Success returns a successful Outcome.
func Success(parser string, rec *record.Map) Outcome {
	return Outcome{Parser: parser, Status: StatusSuccess, Record: rec}
}

// NotImplemented returns the Outcome of a parser that does not exist yet.
func NotImplemented(parser string) Outcome {
	return Outcome{Parser: parser, Status: StatusNotImplemented}
}

// Failed returns the Outcome of a parser that could not finish.
func Failed(parser string, err error) Outcome {
	return Outcome{Parser: parser, Status: StatusFailed, Err: err}
}

// OK reports whether the outcome carries a record.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// Run fetches the parser's page and parses it. The page is fetched even for
// parsers that are not implemented, so it is cached for later work.
func Run(ctx context.Context, p Parser, fetcher transport.Fetcher) Outcome {
	ctx = logging.WithParser(ctx, p.Name())
	start := time.Now()
	out := run(ctx, p, fetcher)
	out.Duration = time.Since(start)
	return out
}

func run(ctx context.Context, p Parser, fetcher transport.Fetcher) Outcome {
	data, err := fetcher.Fetch(ctx, p.Name())
	if err != nil {
		return Failed(p.Name(), err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Failed(p.Name(), errors.WrapParse("html", p.Name(), err))
	}

	rec, err := p.Parse(ctx, doc)
	switch {
	case errors.IsNotImplemented(err):
		return NotImplemented(p.Name())
	case err != nil:
		return Failed(p.Name(), err)
	}
	return Success(p.Name(), rec)
}

// All returns every known parser in merge order. Resources come before
// items because items reference resources by name. m merges the partial
// results inside a page; nil uses the default policy tree.
func All(m *merging.Merger) []Parser {
	return []Parser{
		NewResources(m),
		NewItems(),
		NewUnimplemented("Soil_Centrifuge"),
		NewUnimplemented("Scrap"),
		NewUnimplemented("Trade_Platform"),
		NewUnimplemented("Bytes"),
		NewUnimplemented("Power"),
		NewUnimplemented("Planets"),
		NewUnimplemented("Widgets"),
		NewUnimplemented("Platforms"),
	}
}

// Names returns the page names of parsers.
func Names(parsers []Parser) []string {
	names := make([]string, len(parsers))
	for i, p := range parsers {
		names[i] = p.Name()
	}
	return names
}

// Select returns the parsers named in names, keeping the order of parsers.
// An unknown name is a *errors.NotFoundError.
func Select(parsers []Parser, names []string) ([]Parser, error) {
	if len(names) == 0 {
		return parsers, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var selected []Parser
	for _, p := range parsers {
		if wanted[p.Name()] {
			selected = append(selected, p)
			delete(wanted, p.Name())
		}
	}
	for _, name := range names {
		if wanted[name] {
			return nil, errors.NewNotFoundError("parser", name)
		}
	}
	return selected, nil
}

// Unimplemented is a placeholder for a page that has no parser yet.
type Unimplemented struct {
	name string
}

// NewUnimplemented returns a placeholder parser for the page name.
func NewUnimplemented(name string) *Unimplemented {
	return &Unimplemented{name: name}
}

// Name implements Parser.
func (u *Unimplemented) Name() string { return u.name }

// Parse always reports errors.ErrNotImplemented.
func (u *Unimplemented) Parse(_ context.Context, _ *goquery.Document) (*record.Map, error) {
	return nil, fmt.Errorf("%s parser: %w", u.name, errors.ErrNotImplemented)
}

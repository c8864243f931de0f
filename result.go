package astromap

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/astromap/internal/pages"
	"github.com/agentstation/astromap/pkg/record"
)

// Result describes one scraper run.
type Result struct {
	Outcomes     []pages.Outcome // one per parser, in parser order
	Dataset      any             // merged dataset, nil when the merge failed
	DatasetPath  string
	PartialPaths []string

	StartedAt  utc.Time
	FinishedAt utc.Time

	Stats Stats
}

// Stats summarizes a run.
type Stats struct {
	Parsers        int
	Succeeded      int
	NotImplemented int
	Failed         int
	Items          int
	Recipes        int
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt.Time)
}

// Failures returns the outcomes of parsers that failed.
func (r *Result) Failures() []pages.Outcome {
	var failed []pages.Outcome
	for _, out := range r.Outcomes {
		if out.Status == pages.StatusFailed {
			failed = append(failed, out)
		}
	}
	return failed
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	parts := []string{fmt.Sprintf("%d/%d parsers succeeded", r.Stats.Succeeded, r.Stats.Parsers)}
	if r.Stats.NotImplemented > 0 {
		parts = append(parts, fmt.Sprintf("%d not implemented", r.Stats.NotImplemented))
	}
	if r.Stats.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Stats.Failed))
	}
	if r.Dataset != nil {
		parts = append(parts, fmt.Sprintf("%d items, %d recipes", r.Stats.Items, r.Stats.Recipes))
	}
	return strings.Join(parts, ", ")
}

func countOutcomes(outcomes []pages.Outcome) Stats {
	stats := Stats{Parsers: len(outcomes)}
	for _, out := range outcomes {
		switch out.Status {
		case pages.StatusSuccess:
			stats.Succeeded++
		case pages.StatusNotImplemented:
			stats.NotImplemented++
		default:
			stats.Failed++
		}
	}
	return stats
}

// countDataset counts the entries of the items mapping and recipes list.
func countDataset(dataset any) (items, recipes int) {
	m, ok := dataset.(*record.Map)
	if !ok {
		return 0, 0
	}
	if v, ok := m.Get("items"); ok {
		if itemMap, ok := v.(*record.Map); ok {
			items = itemMap.Len()
		}
	}
	if v, ok := m.Get("recipes"); ok {
		if list, ok := record.AsSlice(v); ok {
			recipes = len(list)
		}
	}
	return items, recipes
}

package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

// checkMark marks a planet column in the planet-specific resources table.
const checkMark = "✔"

// Resources parses the Resources page: natural resources, where they are
// found, and what they refine into.
type Resources struct {
	merger *merging.Merger
}

// NewResources returns the Resources page parser. m merges the page's
// partial item tables; nil uses the default policy tree.
func NewResources(m *merging.Merger) *Resources {
	if m == nil {
		m = merging.Default()
	}
	return &Resources{merger: m}
}

// Name implements Parser.
func (p *Resources) Name() string { return "Resources" }

// Parse reads the universal resource list, the planet-specific table and
// the refined resources table, and merges their items.
func (p *Resources) Parse(ctx context.Context, doc *goquery.Document) (*record.Map, error) {
	universal := p.universal(doc)

	tables := doc.Find(".darktable")
	if tables.Length() < 2 {
		return nil, errors.NewParseError("html", p.Name(),
			fmt.Sprintf("want 2 darktables, got %d", tables.Length()), nil)
	}

	planetSpecific, err := p.planetSpecific(tables.Eq(0))
	if err != nil {
		return nil, err
	}
	refined, recipes, err := p.refined(tables.Eq(1))
	if err != nil {
		return nil, err
	}

	items, err := p.merger.MergeAt(merging.ParsePath("items"), universal, planetSpecific, refined)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Int("universal", universal.Len()).
		Int("planet_specific", planetSpecific.Len()).
		Int("refined", refined.Len()).
		Msg("Parsed resources page")

	return record.MapOf("items", items, "recipes", recipes), nil
}

// universal reads resources found on every planet, listed as dd entries.
func (p *Resources) universal(doc *goquery.Document) *record.Map {
	items := record.NewMap()
	doc.Find("dd").Each(func(_ int, dd *goquery.Selection) {
		item := resourceItem(dd)
		item.Set("tags", []any{"Natural"})
		item.Set("found_on", "All")
		items.Set(Text(dd), item)
	})
	return items
}

// planetSpecific reads the table whose header names one planet per column
// between the resource column and a trailing notes column.
func (p *Resources) planetSpecific(table *goquery.Selection) (*record.Map, error) {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, errors.NewParseError("html", p.Name(), "planet table has no rows", nil)
	}

	headers := rows.Eq(0).Find("th")
	var planets []string
	for i := 1; i < headers.Length()-1; i++ {
		planets = append(planets, Text(headers.Eq(i)))
	}

	items := record.NewMap()
	for i := 1; i < rows.Length(); i++ {
		cells := rows.Eq(i).Find("td")
		if cells.Length() < 2 {
			return nil, errors.NewParseError("html", p.Name(),
				fmt.Sprintf("planet table row %d: want at least 2 cells, got %d", i, cells.Length()), nil)
		}

		foundOn := []any{}
		for c := 1; c < cells.Length()-1; c++ {
			if c-1 < len(planets) && isChecked(Text(cells.Eq(c))) {
				foundOn = append(foundOn, planets[c-1])
			}
		}

		resource := cells.Eq(0)
		item := resourceItem(resource)
		item.Set("tags", []any{"Natural"})
		item.Set("found_on", foundOn)
		items.Set(Text(resource), item)
	}
	return items, nil
}

// refined reads the table pairing each refined resource with its raw
// resource, and emits one refining recipe per row.
func (p *Resources) refined(table *goquery.Selection) (*record.Map, []any, error) {
	rows := table.Find("tr")
	items := record.NewMap()
	recipes := []any{}

	for i := 1; i < rows.Length(); i++ {
		cells := rows.Eq(i).Find("td")
		if cells.Length() != 2 {
			return nil, nil, errors.NewParseError("html", p.Name(),
				fmt.Sprintf("refined table row %d: want 2 cells, got %d", i, cells.Length()), nil)
		}

		refined := resourceItem(cells.Eq(0))
		refined.Set("tags", []any{"Refined"})
		name := Text(cells.Eq(0))
		items.Set(name, refined)

		raw := Text(cells.Eq(1))
		items.Set(raw, record.MapOf("tags", []any{"Raw"}))

		recipes = append(recipes, record.MapOf(
			"result", name,
			"type", "refining",
			"materials", []any{raw},
		))
	}
	return items, recipes, nil
}

// resourceItem returns the common fields of a resource cell.
func resourceItem(sel *goquery.Selection) *record.Map {
	item := record.MapOf("name", Text(sel))
	if img, ok := icon(sel); ok {
		item.Set("icon", img)
	}
	item.Set("tier", "Small")
	return item
}

// isChecked accepts the check mark with or without the emoji variation
// selector.
func isChecked(cell string) bool {
	return strings.TrimSuffix(cell, "\ufe0f") == checkMark
}

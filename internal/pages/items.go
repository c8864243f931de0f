package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
	"github.com/agentstation/astromap/pkg/record"
)

// printers lists the crafting stations in the order their tables appear on
// the Items page.
var printers = []string{"Backpack", "Small Printer", "Medium Printer", "Large Printer"}

// Items parses the Items page: printed items and their printing recipes.
type Items struct{}

// NewItems returns the Items page parser.
func NewItems() *Items {
	return &Items{}
}

// Name implements Parser.
func (p *Items) Name() string { return "Items" }

// Parse reads one darktable per printer. The last darktable on the page
// lists other objects and is ignored, as are each table's header and
// total rows.
func (p *Items) Parse(ctx context.Context, doc *goquery.Document) (*record.Map, error) {
	logger := logging.FromContext(ctx)
	tables := doc.Find("table.darktable")

	items := record.NewMap()
	recipes := []any{}

	count := min(tables.Length()-1, len(printers))
	for i := 0; i < count; i++ {
		station := printers[i]
		rows := tables.Eq(i).Find("tr")

		for j := 1; j < rows.Length()-1; j++ {
			item, recipe, err := p.row(rows.Eq(j))
			if err != nil {
				return nil, errors.NewParseError("html", p.Name(),
					fmt.Sprintf("%s table, row %d: %v", station, j, err), err)
			}
			name, _ := item.Get("name")
			items.Set(name.(string), item)

			if recipe != nil {
				recipe.Set("station", station)
				recipes = append(recipes, recipe)
			}
		}
	}

	logger.Debug().
		Int("items", items.Len()).
		Int("recipes", len(recipes)).
		Msg("Parsed items page")

	return record.MapOf("items", items, "recipes", recipes), nil
}

// row returns the item described by a table row, and its printing recipe
// when the row lists materials.
func (p *Items) row(row *goquery.Selection) (*record.Map, *record.Map, error) {
	cells := row.Find("td")
	if cells.Length() != 4 {
		return nil, nil, fmt.Errorf("want 4 cells, got %d", cells.Length())
	}
	result, size, craft, byteCost := cells.Eq(0), cells.Eq(1), cells.Eq(2), cells.Eq(3)

	name := Text(result)
	item := record.NewMap()
	if img, ok := icon(result); ok {
		item.Set("icon", img)
	}
	item.Set("name", name)
	item.Set("tier", Text(size))
	item.Set("unlock", Unlock(Text(byteCost)))

	materials, err := Materials(craft)
	if err != nil {
		return nil, nil, err
	}
	if len(materials) == 0 {
		return item, nil, nil
	}

	recipe := record.MapOf(
		"type", "printing",
		"result", name,
		"materials", materials,
	)
	return item, recipe, nil
}

// Unlock describes how an item is unlocked from the byte cost column:
// {bytes: n} for a cost, {bytes: 0} for starting items, {mission: text}
// for mission rewards and nil when the item cannot be unlocked.
func Unlock(byteCost string) any {
	cost := strings.ReplaceAll(byteCost, ",", "")
	if n, err := strconv.Atoi(cost); err == nil {
		return record.MapOf("bytes", n)
	}
	switch cost {
	case "Unlocked":
		return record.MapOf("bytes", 0)
	case "N/A":
		return nil
	}
	return record.MapOf("mission", cost)
}

// Materials lists the materials of a craft cell, repeating a material as
// often as its count says. A cell holds either a single material followed
// by a separator, or "<count> <material> <separator>" triples. Items that
// cannot be printed yield no materials.
func Materials(craft *goquery.Selection) ([]any, error) {
	text := craft.Text()
	if strings.Contains(text, "N/A") || strings.Contains(text, "Missions") {
		return nil, nil
	}

	nodes := contents(craft)
	switch {
	case len(nodes) == 2:
		return []any{Text(nodes[0])}, nil

	case len(nodes)%3 == 0:
		materials := []any{}
		for i := 0; i < len(nodes); i += 3 {
			countText := Text(nodes[i])
			n, ok := leadingInt(countText)
			if !ok {
				return nil, fmt.Errorf("bad material count %q", countText)
			}
			material := Text(nodes[i+1])
			for range n {
				materials = append(materials, material)
			}
		}
		return materials, nil
	}

	logging.Warn().Str("cell", strings.TrimSpace(text)).Msg("Skipping craft cell with unexpected layout")
	return nil, nil
}

// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/astromap/internal/pages"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// OutcomesToTableData converts parser outcomes to table format.
func OutcomesToTableData(outcomes []pages.Outcome) Data {
	rows := make([][]string, 0, len(outcomes))
	for _, out := range outcomes {
		errText := ""
		if out.Err != nil {
			errText = out.Err.Error()
		}
		rows = append(rows, []string{
			out.Parser,
			out.Status.String(),
			out.Duration.Round(time.Millisecond).String(),
			errText,
		})
	}
	return Data{
		Headers:         []string{"Parser", "Status", "Duration", "Error"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// ItemsToTableData converts the items mapping of a dataset to table format.
// With showDetails the unlock and found-on columns are added.
func ItemsToTableData(dataset any, showDetails bool) Data {
	headers := []string{"Name", "Tier", "Tags"}
	if showDetails {
		headers = append(headers, "Unlock", "Found On")
	}

	var rows [][]string
	items := mapField(dataset, "items")
	items.Range(func(name string, v any) bool {
		item, _ := v.(*record.Map)
		row := []string{name, cell(item, "tier"), cell(item, "tags")}
		if showDetails {
			row = append(row, unlockText(item), cell(item, "found_on"))
		}
		rows = append(rows, row)
		return true
	})

	return Data{Headers: headers, Rows: rows}
}

// RecipesToTableData converts the recipes list of a dataset to table format.
func RecipesToTableData(dataset any) Data {
	var rows [][]string
	if m, ok := dataset.(*record.Map); ok {
		v, _ := m.Get("recipes")
		list, _ := record.AsSlice(v)
		for _, r := range list {
			recipe, _ := r.(*record.Map)
			rows = append(rows, []string{
				cell(recipe, "result"),
				cell(recipe, "type"),
				cell(recipe, "station"),
				cell(recipe, "materials"),
			})
		}
	}
	return Data{
		Headers: []string{"Result", "Type", "Station", "Materials"},
		Rows:    rows,
	}
}

// PolicyToTableData flattens a policy tree into one row per node. A
// collection's shared child is shown under the path segment "*".
func PolicyToTableData(spec *merging.Spec) Data {
	var rows [][]string
	var walk func(path string, s *merging.Spec)
	walk = func(path string, s *merging.Spec) {
		if s == nil {
			return
		}
		display := path
		if display == "" {
			display = "<root>"
		}
		rows = append(rows, []string{display, s.Strategy.String(), s.Key})

		names := make([]string, 0, len(s.Fields))
		for name := range s.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			walk(join(path, name), s.Fields[name])
		}
		if s.Each != nil {
			walk(join(path, "*"), s.Each)
		}
	}
	walk("", spec)

	return Data{
		Headers: []string{"Path", "Strategy", "Key"},
		Rows:    rows,
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func mapField(v any, key string) *record.Map {
	m, ok := v.(*record.Map)
	if !ok {
		return nil
	}
	field, _ := m.Get(key)
	inner, _ := field.(*record.Map)
	return inner
}

// cell renders a record field for a table cell: sequences are joined with
// commas and absent fields are empty.
func cell(m *record.Map, key string) string {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return ""
	}
	if list, ok := record.AsSlice(v); ok {
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func unlockText(item *record.Map) string {
	v, ok := item.Get("unlock")
	if !ok {
		return ""
	}
	unlock, ok := v.(*record.Map)
	if !ok {
		return "N/A"
	}
	if mission, ok := unlock.Get("mission"); ok {
		return fmt.Sprint(mission)
	}
	if bytes, ok := unlock.Get("bytes"); ok {
		return fmt.Sprintf("%v bytes", bytes)
	}
	return ""
}

// Package output renders command results as tables, JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/astromap/internal/cmd/table"
	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/record"
)

// Format names an output format.
type Format string

const (
	// FormatTable renders rows with the default columns.
	FormatTable Format = "table"
	// FormatJSON renders the raw value as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the raw value as YAML.
	FormatYAML Format = "yaml"
	// FormatWide renders rows with every column.
	FormatWide Format = "wide"
)

// Data represents data formatted for table output.
type Data = table.Data

// Formatter writes a value in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter returns the formatter for format. Unknown formats render
// as a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: constants.JSONIndent}
	case FormatYAML:
		return &YAMLFormatter{}
	}
	return &TableFormatter{Wide: format == FormatWide}
}

// DetectFormat returns the explicit format, or table on a terminal and
// JSON when stdout is piped.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a format name. The empty string is accepted and
// means "detect".
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	}
	return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide")
}

// JSONFormatter writes JSON. Records keep their key order.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter writes YAML with two-space indentation.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter writes Data as a table. Records and lists of records are
// turned into rows first; anything else is written as JSON.
type TableFormatter struct {
	Wide bool
}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return render(w, v)
	case *Data:
		return render(w, *v)
	case *record.Map:
		return render(w, mapRows(v))
	case []any:
		if rows, ok := listRows(v); ok {
			return render(w, rows)
		}
	}
	return (&JSONFormatter{Indent: constants.JSONIndent}).Format(w, data)
}

func render(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			align[i] = twAlign(a)
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		t.Header(cellsOf(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := t.Append(cellsOf(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func twAlign(a table.Align) tw.Align {
	switch a {
	case table.AlignLeft:
		return tw.AlignLeft
	case table.AlignCenter:
		return tw.AlignCenter
	case table.AlignRight:
		return tw.AlignRight
	}
	return tw.Skip
}

func cellsOf(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// mapRows lists a record as key/value rows.
func mapRows(m *record.Map) Data {
	data := Data{Headers: []string{"Key", "Value"}}
	m.Range(func(key string, value any) bool {
		data.Rows = append(data.Rows, []string{key, compact(value)})
		return true
	})
	return data
}

// listRows turns a list of records into one row per record, with a column
// per key in first-seen order. It fails when an element is not a record.
func listRows(list []any) (Data, bool) {
	if len(list) == 0 {
		return Data{}, false
	}

	var keys []string
	seen := map[string]bool{}
	for _, item := range list {
		m, ok := item.(*record.Map)
		if !ok {
			return Data{}, false
		}
		for _, key := range m.Keys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	caser := cases.Title(language.English)
	data := Data{Headers: make([]string, len(keys))}
	for i, key := range keys {
		data.Headers[i] = caser.String(strings.ReplaceAll(key, "_", " "))
	}
	for _, item := range list {
		m := item.(*record.Map)
		row := make([]string, len(keys))
		for i, key := range keys {
			if v, ok := m.Get(key); ok {
				row[i] = compact(v)
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data, true
}

// compact renders a cell value: strings as is, everything else as
// single-line JSON.
func compact(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

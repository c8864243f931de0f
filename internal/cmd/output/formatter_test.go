package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/astromap/internal/cmd/table"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatterKeepsRecordOrder(t *testing.T) {
	var buf bytes.Buffer
	m := record.MapOf("zeta", 1, "alpha", []any{"a"})

	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, m))
	assert.Equal(t, "{\n    \"zeta\": 1,\n    \"alpha\": [\n        \"a\"\n    ]\n}\n", buf.String())
}

func TestYAMLFormatterKeepsRecordOrder(t *testing.T) {
	var buf bytes.Buffer
	m := record.MapOf("zeta", 1, "alpha", 2)

	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, m))
	out := buf.String()
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := Data{
		Headers: []string{"Path", "Strategy"},
		Rows:    [][]string{{"items", "collection"}},
	}

	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "collection")
	assert.Contains(t, strings.ToUpper(out), "STRATEGY")
}

func TestTableFormatterRecordList(t *testing.T) {
	recipes := []any{
		record.MapOf("result", "Copper", "materials", []any{"Malachite"}),
		record.MapOf("result", "Tether", "station", "Backpack"),
	}

	rows, ok := listRows(recipes)
	require.True(t, ok)
	assert.Equal(t, []string{"Result", "Materials", "Station"}, rows.Headers)
	assert.Equal(t, [][]string{
		{"Copper", `["Malachite"]`, ""},
		{"Tether", "", "Backpack"},
	}, rows.Rows)

	_, ok = listRows([]any{"Raw"})
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, recipes))
	assert.Contains(t, buf.String(), "Tether")
}

func TestTableFormatterRecord(t *testing.T) {
	rows := mapRows(record.MapOf("name", "Resin", "tags", []any{"Natural"}))
	assert.Equal(t, [][]string{{"name", "Resin"}, {"tags", `["Natural"]`}}, rows.Rows)
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, 42))
	assert.Equal(t, "42\n", buf.String())
}

func TestPrint(t *testing.T) {
	spec := merging.DefaultSpec()
	toTable := func(bool) Data { return table.PolicyToTableData(spec) }

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatTable, spec, toTable))
	assert.Contains(t, buf.String(), "items.*.tags")

	buf.Reset()
	require.NoError(t, Print(&buf, FormatJSON, spec, toTable))
	assert.Contains(t, buf.String(), `"strategy": "record"`)
}

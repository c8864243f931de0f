package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/astromap/internal/pages"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

func dataset() *record.Map {
	return record.MapOf(
		"items", record.MapOf(
			"Tether", record.MapOf("name", "Tether", "tier", "Small", "unlock", record.MapOf("bytes", 0)),
			"Copper", record.MapOf("name", "Copper", "tier", "Small", "tags", []any{"Refined"}, "found_on", "All"),
			"Beacon", record.MapOf("name", "Beacon", "tier", "Small", "unlock", nil),
		),
		"recipes", []any{
			record.MapOf("type", "printing", "result", "Tether", "materials", []any{"Compound"}, "station", "Backpack"),
		},
	)
}

func TestItemsToTableData(t *testing.T) {
	data := ItemsToTableData(dataset(), false)
	assert.Equal(t, []string{"Name", "Tier", "Tags"}, data.Headers)
	assert.Equal(t, [][]string{
		{"Tether", "Small", ""},
		{"Copper", "Small", "Refined"},
		{"Beacon", "Small", ""},
	}, data.Rows)

	wide := ItemsToTableData(dataset(), true)
	assert.Equal(t, []string{"Tether", "Small", "", "0 bytes", ""}, wide.Rows[0])
	assert.Equal(t, "All", wide.Rows[1][4])
	assert.Equal(t, "N/A", wide.Rows[2][3])
}

func TestItemsToTableDataWithoutItems(t *testing.T) {
	assert.Empty(t, ItemsToTableData(nil, false).Rows)
	assert.Empty(t, ItemsToTableData(record.NewMap(), false).Rows)
}

func TestRecipesToTableData(t *testing.T) {
	data := RecipesToTableData(dataset())
	assert.Equal(t, [][]string{{"Tether", "printing", "Backpack", "Compound"}}, data.Rows)
}

func TestOutcomesToTableData(t *testing.T) {
	ok := pages.Success("Items", record.NewMap())
	ok.Duration = 1500 * time.Microsecond
	data := OutcomesToTableData([]pages.Outcome{
		ok,
		pages.NotImplemented("Scrap"),
		pages.Failed("Power", errors.ErrFetchFailed),
	})

	assert.Equal(t, []string{"Items", "success", "2ms", ""}, data.Rows[0])
	assert.Equal(t, "not implemented", data.Rows[1][1])
	assert.Equal(t, "fetch failed", data.Rows[2][3])
}

func TestPolicyToTableData(t *testing.T) {
	data := PolicyToTableData(merging.DefaultSpec())
	var paths []string
	for _, row := range data.Rows {
		paths = append(paths, row[0])
	}
	assert.Equal(t, []string{
		"<root>", "items", "items.*", "items.*.name", "items.*.power", "items.*.power.*",
		"items.*.slots", "items.*.slots.*", "items.*.tags", "recipes",
	}, paths)
}

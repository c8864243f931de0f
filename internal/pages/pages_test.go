package pages

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/record"
)

// dirFetcher serves pages from testdata.
type dirFetcher struct {
	dir string
}

func (f dirFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, name+".html"))
	if os.IsNotExist(err) {
		return nil, &errors.FetchError{URL: name, StatusCode: 404}
	}
	return data, err
}

func loadDoc(t *testing.T, name string) *goquery.Document {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func htmlFragment(t *testing.T, fragment string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tr>" + fragment + "</tr></table>"))
	require.NoError(t, err)
	return doc.Find("td").First()
}

func assertRecord(t *testing.T, want, got any) {
	t.Helper()
	assert.Truef(t, record.Equal(want, got), "want %v\ngot  %v", want, got)
}

func TestItemsParse(t *testing.T) {
	rec, err := NewItems().Parse(context.Background(), loadDoc(t, "Items.html"))
	require.NoError(t, err)
	assert.Equal(t, []string{"items", "recipes"}, rec.Keys())

	items, _ := rec.Get("items")
	assert.Equal(t,
		[]string{"Tether", "Oxygen Filters", "Small Battery", "Beacon", "Medium Storage"},
		items.(*record.Map).Keys())

	tether, _ := items.(*record.Map).Get("Tether")
	assertRecord(t, record.MapOf(
		"icon", "Tether.png",
		"name", "Tether",
		"tier", "Small",
		"unlock", record.MapOf("bytes", 0),
	), tether)
	assert.Equal(t, []string{"icon", "name", "tier", "unlock"}, tether.(*record.Map).Keys())

	beacon, _ := items.(*record.Map).Get("Beacon")
	unlock, ok := beacon.(*record.Map).Get("unlock")
	assert.True(t, ok)
	assert.Nil(t, unlock)

	battery, _ := items.(*record.Map).Get("Small Battery")
	unlock, _ = battery.(*record.Map).Get("unlock")
	assertRecord(t, record.MapOf("mission", `Complete the mission "Power Up"`), unlock)

	recipes, _ := rec.Get("recipes")
	assertRecord(t, []any{
		record.MapOf("type", "printing", "result", "Tether", "materials", []any{"Compound"}, "station", "Backpack"),
		record.MapOf("type", "printing", "result", "Oxygen Filters", "materials", []any{"Resin", "Compound", "Compound"}, "station", "Backpack"),
		record.MapOf("type", "printing", "result", "Small Battery", "materials", []any{"Lithium"}, "station", "Small Printer"),
	}, recipes)
}

func TestItemsIgnoresLastTable(t *testing.T) {
	rec, err := NewItems().Parse(context.Background(), loadDoc(t, "Items.html"))
	require.NoError(t, err)
	items, _ := rec.Get("items")
	assert.False(t, items.(*record.Map).Has("Probe"))
}

func TestItemsBadRow(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<table class="darktable">
  <tr><th>Item</th></tr>
  <tr><td>Only</td><td>two</td></tr>
  <tr><td>Total</td></tr>
</table>
<table class="darktable"></table>`))
	require.NoError(t, err)

	_, err = NewItems().Parse(context.Background(), doc)
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "Backpack table, row 1")
}

func TestUnlock(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"1,000", record.MapOf("bytes", 1000)},
		{"375", record.MapOf("bytes", 375)},
		{"Unlocked", record.MapOf("bytes", 0)},
		{"N/A", nil},
		{"Mission: Habitat", record.MapOf("mission", "Mission: Habitat")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Unlock(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assertRecord(t, tt.want, got)
		})
	}
}

func TestMaterials(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []any
	}{
		{"not craftable", `<td>N/A</td>`, nil},
		{"mission reward", `<td>Missions</td>`, nil},
		{"single", `<td><a>Compound</a><br></td>`, []any{"Compound"}},
		{"triples", `<td>1x <a>Resin</a><br>3x <a>Glass</a><br></td>`, []any{"Resin", "Glass", "Glass", "Glass"}},
		{"indented triples", "<td>\n  2x <a>Iron</a> <br>\n</td>", []any{"Iron", "Iron"}},
		{"empty", `<td></td>`, []any{}},
		{"unexpected layout", `<td><a>A</a><a>B</a><a>C</a><a>D</a></td>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Materials(htmlFragment(t, tt.cell))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaterialsBadCount(t *testing.T) {
	_, err := Materials(htmlFragment(t, `<td>many <a>Resin</a><br></td>`))
	assert.Error(t, err)
}

func TestResourcesParse(t *testing.T) {
	rec, err := NewResources(nil).Parse(context.Background(), loadDoc(t, "Resources.html"))
	require.NoError(t, err)

	items, _ := rec.Get("items")
	assert.Equal(t,
		[]string{"Compound", "Resin", "Malachite", "Laterite", "Copper", "Aluminum"},
		items.(*record.Map).Keys())

	compound, _ := items.(*record.Map).Get("Compound")
	assertRecord(t, record.MapOf(
		"name", "Compound",
		"icon", "Compound.png",
		"tier", "Small",
		"tags", []any{"Natural"},
		"found_on", "All",
	), compound)

	malachite, _ := items.(*record.Map).Get("Malachite")
	assertRecord(t, record.MapOf(
		"name", "Malachite",
		"icon", "Malachite.png",
		"tier", "Small",
		"tags", []any{"Natural", "Raw"},
		"found_on", []any{"Sylva", "Calidor"},
	), malachite)

	laterite, _ := items.(*record.Map).Get("Laterite")
	foundOn, _ := laterite.(*record.Map).Get("found_on")
	assertRecord(t, []any{"Sylva", "Desolo", "Calidor"}, foundOn)

	copper, _ := items.(*record.Map).Get("Copper")
	assertRecord(t, record.MapOf(
		"name", "Copper",
		"icon", "Copper.png",
		"tier", "Small",
		"tags", []any{"Refined"},
	), copper)

	recipes, _ := rec.Get("recipes")
	assertRecord(t, []any{
		record.MapOf("result", "Copper", "type", "refining", "materials", []any{"Malachite"}),
		record.MapOf("result", "Aluminum", "type", "refining", "materials", []any{"Laterite"}),
	}, recipes)
}

func TestResourcesMissingTables(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<dl><dd>Compound</dd></dl>`))
	require.NoError(t, err)

	_, err = NewResources(nil).Parse(context.Background(), doc)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestImageName(t *testing.T) {
	name, ok := ImageName("/images/thumb/0/0a/Tether.png/32px-Tether.png?abc")
	assert.True(t, ok)
	assert.Equal(t, "Tether.png", name)

	_, ok = ImageName("/images/Tether.png")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune.
	cell := htmlFragment(t, "<td>  Cafe\u0301 \n</td>")
	assert.Equal(t, "Caf\u00e9", Text(cell))
}

func TestRun(t *testing.T) {
	fetcher := dirFetcher{dir: "testdata"}
	ctx := context.Background()

	out := Run(ctx, NewItems(), fetcher)
	require.Equal(t, StatusSuccess, out.Status, "%v", out.Err)
	assert.True(t, out.OK())
	assert.Equal(t, "Items", out.Parser)
	assert.NotNil(t, out.Record)

	out = Run(ctx, NewUnimplemented("Items"), fetcher)
	assert.Equal(t, StatusNotImplemented, out.Status)
	assert.Nil(t, out.Record)
	assert.NoError(t, out.Err)

	out = Run(ctx, NewUnimplemented("Scrap"), fetcher)
	assert.Equal(t, StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, errors.ErrFetchFailed)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "not implemented", StatusNotImplemented.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestAllAndSelect(t *testing.T) {
	all := All(nil)
	assert.Equal(t, []string{
		"Resources", "Items", "Soil_Centrifuge", "Scrap", "Trade_Platform",
		"Bytes", "Power", "Planets", "Widgets", "Platforms",
	}, Names(all))

	selected, err := Select(all, []string{"Items", "Resources"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Resources", "Items"}, Names(selected))

	selected, err = Select(all, nil)
	require.NoError(t, err)
	assert.Len(t, selected, len(all))

	_, err = Select(all, []string{"Nope"})
	assert.True(t, errors.IsNotFound(err))
}

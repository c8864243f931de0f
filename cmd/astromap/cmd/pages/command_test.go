package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/astromap/internal/appcontext"
)

func TestList(t *testing.T) {
	list, err := List(&appcontext.Mock{})
	require.NoError(t, err)
	require.Len(t, list, 10)

	assert.Equal(t, Page{Order: 1, Name: "Resources", Implemented: true}, list[0])
	assert.Equal(t, Page{Order: 2, Name: "Items", Implemented: true}, list[1])
	for _, p := range list[2:] {
		assert.False(t, p.Implemented, p.Name)
	}
}

func TestPagesCommandJSON(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var list []Page
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &list))
	assert.Len(t, list, 10)
	assert.Equal(t, "Platforms", list[9].Name)
}

func TestToTableData(t *testing.T) {
	data := toTableData([]Page{{Order: 1, Name: "Items", Implemented: true}, {Order: 2, Name: "Scrap"}})
	assert.Equal(t, []string{"#", "Page", "Implemented"}, data.Headers)
	assert.Equal(t, [][]string{{"1", "Items", "✓"}, {"2", "Scrap", "-"}}, data.Rows)
}

package policy

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/astromap/internal/appcontext"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/merging"
)

func TestShowDefaultTree(t *testing.T) {
	spec, err := Show(&appcontext.Mock{}, "")
	require.NoError(t, err)
	assert.Equal(t, merging.DefaultSpec(), spec)
}

func TestShowResolvesPath(t *testing.T) {
	spec, err := Show(&appcontext.Mock{}, "items.Copper.tags")
	require.NoError(t, err)
	assert.Equal(t, merging.StrategyUnion, spec.Strategy)

	spec, err = Show(&appcontext.Mock{}, "items.Copper.name")
	require.NoError(t, err)
	assert.Equal(t, merging.StrategyMatch, spec.Strategy)
}

func TestShowUnknownPath(t *testing.T) {
	_, err := Show(&appcontext.Mock{}, "recipes.first")
	require.Error(t, err)
	assert.True(t, errors.IsNoPolicy(err))

	// merging falls back to replace for unlisted fields, resolving does not
	_, err = Show(&appcontext.Mock{}, "items.Copper.tier")
	assert.True(t, errors.IsNoPolicy(err))
}

func TestPolicyCommandYAML(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "yaml" }}

	cmd := NewCommand(app)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	spec, err := merging.ParseSpec(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, merging.DefaultSpec(), spec)
}

func TestPolicyCommandTable(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "table" }}

	cmd := NewCommand(app)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--resolve", "items"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "collection")
}

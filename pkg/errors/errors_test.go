package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/agentstation/astromap/pkg/errors"
)

func TestMergeConflictError(t *testing.T) {
	err := &pkgerrors.MergeConflictError{Path: "items.Iron.name", Left: "Iron", Right: "Copper"}
	assert.Equal(t, `values do not match at items.Iron.name: "Iron" != "Copper"`, err.Error())
	assert.True(t, pkgerrors.IsMergeConflict(err))
	assert.True(t, pkgerrors.IsMergeError(err))
	assert.False(t, pkgerrors.IsNoPolicy(err))
}

func TestNoPolicyError(t *testing.T) {
	err := &pkgerrors.NoPolicyError{Path: "nonexistent.path"}
	assert.Equal(t, "merge policy not found: nonexistent.path", err.Error())
	assert.True(t, pkgerrors.IsNoPolicy(err))
}

func TestBothMissingError(t *testing.T) {
	t.Run("root", func(t *testing.T) {
		err := &pkgerrors.BothMissingError{}
		assert.Equal(t, "can't merge two missing values at <root>", err.Error())
		assert.True(t, pkgerrors.IsBothMissing(err))
	})

	t.Run("nested", func(t *testing.T) {
		err := &pkgerrors.BothMissingError{Path: "items.Iron"}
		assert.Contains(t, err.Error(), "items.Iron")
	})
}

func TestArgumentCountError(t *testing.T) {
	err := &pkgerrors.ArgumentCountError{Got: 1, Min: 2}
	assert.Equal(t, "need at least 2 records to merge, got 1", err.Error())
	assert.True(t, pkgerrors.IsArgumentCount(err))
}

func TestOperandError(t *testing.T) {
	err := &pkgerrors.OperandError{Op: "add", Path: "count", Left: "a", Right: 1}
	assert.Equal(t, "unsupported operands for add at count: string and int", err.Error())
	assert.True(t, errors.Is(err, pkgerrors.ErrUnsupportedOperands))
	assert.True(t, pkgerrors.IsMergeError(err))
}

func TestDatasetError(t *testing.T) {
	inner := &pkgerrors.NoPolicyError{Path: "x"}
	err := &pkgerrors.DatasetError{Err: inner}

	assert.Equal(t, "dataset merge failed: merge policy not found: x", err.Error())
	assert.True(t, pkgerrors.IsNoPolicy(err))

	var target *pkgerrors.NoPolicyError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "x", target.Path)
}

func TestFetchError(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		err := &pkgerrors.FetchError{URL: "https://example.test/wiki/Items", StatusCode: 404}
		assert.Equal(t, "error fetching https://example.test/wiki/Items: status 404", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrFetchFailed))
		assert.False(t, pkgerrors.IsMergeError(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.FetchError{URL: "u", Err: base}
		assert.ErrorIs(t, err, base)
	})
}

func TestNotImplemented(t *testing.T) {
	err := fmt.Errorf("parser Scrap: %w", pkgerrors.ErrNotImplemented)
	assert.True(t, pkgerrors.IsNotImplemented(err))
	assert.False(t, pkgerrors.IsMergeError(err))
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("parser", "Widgets")
	assert.Equal(t, "parser Widgets not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(errors.Join(errors.New("lookup"), err)))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("strategy", "explode", "unknown strategy")
	assert.Equal(t, "validation failed for field strategy: unknown strategy", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	err = &pkgerrors.ValidationError{Message: "empty"}
	assert.Equal(t, "validation failed: empty", err.Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))

	base := errors.New("boom")
	ioErr := pkgerrors.WrapIO("read", "policy.yaml", base)
	assert.Equal(t, "IO error during read of policy.yaml: boom", ioErr.Error())
	assert.ErrorIs(t, ioErr, base)

	parseErr := pkgerrors.WrapParse("yaml", "policy.yaml", base)
	assert.Equal(t, "parse error in yaml file policy.yaml: boom", parseErr.Error())
	assert.ErrorIs(t, parseErr, base)

	cfgErr := pkgerrors.NewConfigError("policy", "bad file", base)
	assert.Equal(t, "configuration error in policy: bad file", cfgErr.Error())
	assert.ErrorIs(t, cfgErr, base)
}

package merging

import (
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/record"
)

// combine merges two present values according to the policy's strategy.
func (p *Policy) combine(path Path, left, right any) (any, error) {
	if p.strategy.IsContainer() {
		return p.mergeMaps(path, left, right)
	}
	switch p.strategy {
	case StrategyReplace:
		return right, nil
	case StrategySkip:
		return left, nil
	case StrategyMatch:
		if !record.Equal(left, right) {
			return nil, &errors.MergeConflictError{Path: path.String(), Left: left, Right: right}
		}
		return left, nil
	case StrategyAdd:
		sum, ok := record.Add(left, right)
		if !ok {
			return nil, &errors.OperandError{Op: "add", Path: path.String(), Left: left, Right: right}
		}
		return sum, nil
	case StrategyUnion:
		return p.union(path, left, right)
	}
	return nil, errors.NewValidationError("strategy", p.strategy, "unknown merge strategy "+p.strategy.String())
}

// mergeMaps merges two mappings key by key. Keys keep the order of left,
// followed by keys only right has. A key on one side only passes through.
func (p *Policy) mergeMaps(path Path, left, right any) (any, error) {
	lm, lok := asMap(left)
	rm, rok := asMap(right)
	if !lok || !rok {
		return nil, &errors.OperandError{Op: p.strategy.String() + " merge", Path: path.String(), Left: left, Right: right}
	}

	out := record.NewMap()
	for _, key := range unionKeys(lm, rm) {
		merged, err := p.child(key).merge(path.Append(key), field(lm, key), field(rm, key))
		if err != nil {
			return nil, err
		}
		out.Set(key, merged)
	}
	return out, nil
}

// union keeps every element of left, then appends elements of right whose
// key has not been seen yet.
func (p *Policy) union(path Path, left, right any) (any, error) {
	ls, lok := record.AsSlice(left)
	rs, rok := record.AsSlice(right)
	if !lok || !rok {
		return nil, &errors.OperandError{Op: "union", Path: path.String(), Left: left, Right: right}
	}

	out := make([]any, 0, len(ls)+len(rs))
	out = append(out, ls...)
	seen := make([]any, 0, len(ls)+len(rs))
	for _, item := range ls {
		seen = append(seen, p.key(item))
	}

	for _, item := range rs {
		key := p.key(item)
		if containsEqual(seen, key) {
			continue
		}
		out = append(out, item)
		seen = append(seen, key)
	}
	return out, nil
}

func asMap(v any) (*record.Map, bool) {
	switch m := v.(type) {
	case *record.Map:
		return m, m != nil
	case map[string]any:
		return record.Normalize(m).(*record.Map), true
	}
	return nil, false
}

// field returns the value stored under key. A stored Value, including
// Missing, is returned as is.
func field(m *record.Map, key string) Value {
	if v, ok := m.Get(key); ok {
		return Of(v)
	}
	return Missing
}

func unionKeys(left, right *record.Map) []string {
	keys := left.Keys()
	for _, key := range right.Keys() {
		if !left.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// containsEqual checks membership with record.Equal, so keys may be any
// Record including mappings and sequences.
func containsEqual(items []any, target any) bool {
	for _, item := range items {
		if record.Equal(item, target) {
			return true
		}
	}
	return false
}

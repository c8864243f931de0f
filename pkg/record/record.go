// Package record defines the untyped nested values exchanged between page
// parsers and the merge engine.
//
// A Record is one of:
//   - *Map, a string-keyed mapping that remembers insertion order
//   - []any, an ordered sequence of Records
//   - a primitive: string, bool, int, int64, float64 or nil
//
// Key order of a Map is kept so merged output is written in a stable order,
// but it is ignored by Equal.
package record

import (
	"reflect"
	"sort"

	"github.com/google/go-cmp/cmp"
)

// Equal reports whether two Records are structurally equal.
// Maps compare without regard to key order. Numbers compare by value, so
// int(5) and float64(5) are equal, which keeps decoded JSON 5.0 matching 5.
func Equal(a, b any) bool {
	if x, ok := asFloat64(a); ok {
		return equalNumbers(a, x, b)
	}
	if xs, ok := a.([]any); ok {
		ys, ok := b.([]any)
		if !ok || len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !Equal(xs[i], ys[i]) {
				return false
			}
		}
		return true
	}
	return cmp.Equal(a, b)
}

func equalNumbers(a any, x float64, b any) bool {
	if i, ok := asInt64(a); ok {
		if j, ok := asInt64(b); ok {
			return i == j
		}
	}
	y, ok := asFloat64(b)
	return ok && x == y
}

// Add combines two Records the way a "+" would: numbers are summed,
// sequences and strings are concatenated. The boolean is false when the
// operands cannot be added.
func Add(a, b any) (any, bool) {
	if sum, ok := addNumbers(a, b); ok {
		return sum, true
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, true
		}
		return nil, false
	}
	left, ok := AsSlice(a)
	if !ok {
		return nil, false
	}
	right, ok := AsSlice(b)
	if !ok {
		return nil, false
	}
	out := make([]any, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...), true
}

func addNumbers(a, b any) (any, bool) {
	if x, ok := a.(int); ok {
		if y, ok := b.(int); ok {
			return x + y, true
		}
	}
	if x, ok := asInt64(a); ok {
		if y, ok := asInt64(b); ok {
			return x + y, true
		}
	}
	x, ok := asFloat64(a)
	if !ok {
		return nil, false
	}
	y, ok := asFloat64(b)
	if !ok {
		return nil, false
	}
	return x + y, true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	if n, ok := asInt64(v); ok {
		return float64(n), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// AsSlice returns v as a []any. Typed slices such as []string are copied
// into a new []any; anything that is not a slice reports false.
func AsSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Normalize converts plain Go containers into Records: map[string]any
// becomes a *Map with keys in sorted order and typed slices become []any.
// Existing *Map values are normalized in place of their values.
func Normalize(v any) any {
	switch val := v.(type) {
	case *Map:
		if val == nil {
			return nil
		}
		out := NewMap()
		for _, key := range val.keys {
			out.Set(key, Normalize(val.values[key]))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := NewMap()
		for _, key := range keys {
			out.Set(key, Normalize(val[key]))
		}
		return out
	case string, bool, nil:
		return val
	}
	if items, ok := AsSlice(v); ok {
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Normalize(item)
		}
		return out
	}
	return v
}

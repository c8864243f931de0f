package record

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Map is a string-keyed Record that remembers the order keys were first set.
// The zero value is not usable; create maps with NewMap or MapOf.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a Map from alternating keys and values. It panics when a key
// is not a string or a value is missing, so it is meant for literals.
func MapOf(pairs ...any) *Map {
	if len(pairs)%2 != 0 {
		panic("record.MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("record.MapOf: key %v is %T, not string", pairs[i], pairs[i]))
		}
		m.Set(key, pairs[i+1])
	}
	return m
}

// Set stores value under key. A new key is appended to the key order;
// an existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each key in order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}

// Clone returns a shallow copy of m.
func (m *Map) Clone() *Map {
	out := NewMap()
	m.Range(func(key string, value any) bool {
		out.Set(key, value)
		return true
	})
	return out
}

// Equal reports whether m and other hold equal values under the same keys.
// Key order is ignored.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Range(func(key string, value any) bool {
		ov, ok := other.Get(key)
		equal = ok && Equal(value, ov)
		return equal
	})
	return equal
}

// MarshalJSON writes the map as a JSON object in key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping its key order.
func (m *Map) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	decoded, ok := v.(*Map)
	if !ok {
		return fmt.Errorf("record: expected JSON object, got %T", v)
	}
	*m = *decoded
	return nil
}

// MarshalYAML writes the map as an ordered YAML mapping.
func (m *Map) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, m.Len())
	m.Range(func(key string, value any) bool {
		out = append(out, yaml.MapItem{Key: key, Value: value})
		return true
	})
	return out, nil
}

// String renders the map as compact JSON.
func (m *Map) String() string {
	data, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<map: %v>", err)
	}
	return string(data)
}

// GoString makes %#v print the same compact JSON as String.
func (m *Map) GoString() string {
	return m.String()
}

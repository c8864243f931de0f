package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/agentstation/astromap/pkg/constants"
)

// Decode parses a JSON document into a Record. Objects become *Map in
// document order, whole numbers become int and other numbers float64.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("record: unexpected data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("record: object key %v is not a string", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			items := []any{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		}
		return nil, fmt.Errorf("record: unexpected delimiter %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}

// Marshal renders a Record as compact JSON. Like json.dump, it leaves
// <, > and & unescaped.
func Marshal(v any) ([]byte, error) {
	data, err := encode(v, "")
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(data, []byte("\n")), nil
}

// MarshalIndent renders a Record as indented JSON with a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	return encode(v, constants.JSONIndent)
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

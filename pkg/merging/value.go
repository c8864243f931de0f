package merging

import (
	"fmt"

	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/record"
)

// missingText is how an absent value renders in debug output.
const missingText = "<missing>"

// Value is an optional Record: either present (possibly nil, empty or zero)
// or Missing. Merge strategies only ever see present values.
type Value struct {
	record  any
	present bool
}

// Missing is the absent Value.
var Missing = Value{}

// Some wraps a present Record, including nil.
func Some(record any) Value {
	return Value{record: record, present: true}
}

// Of returns v unchanged when it already is a Value and Some(v) otherwise,
// so Missing can be passed wherever plain Records are accepted.
func Of(v any) Value {
	if val, ok := v.(Value); ok {
		return val
	}
	return Some(v)
}

// Get returns the wrapped Record and whether it is present.
func (v Value) Get() (any, bool) {
	return v.record, v.present
}

// IsMissing reports whether v is absent.
func (v Value) IsMissing() bool {
	return !v.present
}

// OrElse returns the wrapped Record, or fallback when v is Missing.
func (v Value) OrElse(fallback any) any {
	if !v.present {
		return fallback
	}
	return v.record
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.present {
		return missingText
	}
	return fmt.Sprint(v.record)
}

// GoString keeps %#v from printing the struct fields of Missing.
func (v Value) GoString() string {
	if !v.present {
		return missingText
	}
	return fmt.Sprintf("%#v", v.record)
}

// Equal reports whether both values are Missing, or both are present with
// equal Records.
func (v Value) Equal(other Value) bool {
	if v.present != other.present {
		return false
	}
	return !v.present || record.Equal(v.record, other.record)
}

// MarshalJSON writes the wrapped Record. Missing has no JSON form and fails,
// so it is never written out as if it were data.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return nil, fmt.Errorf("encoding %s: %w", missingText, errors.ErrInvalidInput)
	}
	return record.Marshal(v.record)
}

// MarshalYAML returns the wrapped Record and fails for Missing.
func (v Value) MarshalYAML() (any, error) {
	if !v.present {
		return nil, fmt.Errorf("encoding %s: %w", missingText, errors.ErrInvalidInput)
	}
	return v.record, nil
}

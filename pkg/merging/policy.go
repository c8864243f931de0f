package merging

import (
	"strings"

	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/record"
)

// Strategy names the way a policy combines two present values.
type Strategy string

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// Name returns the strategy name title-cased for display.
func (s Strategy) Name() string {
	str := s.String()
	if str == "" {
		return str
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// IsContainer reports whether the strategy merges mappings key by key.
func (s Strategy) IsContainer() bool {
	switch s {
	case StrategyDict, StrategyRecord, StrategyCollection:
		return true
	}
	return false
}

const (
	// StrategyReplace keeps the second value.
	StrategyReplace Strategy = "replace"
	// StrategySkip keeps the first value.
	StrategySkip Strategy = "skip"
	// StrategyMatch requires both values to be equal.
	StrategyMatch Strategy = "match"
	// StrategyAdd sums numbers and concatenates sequences.
	StrategyAdd Strategy = "add"
	// StrategyUnion concatenates sequences, dropping elements whose key was already seen.
	StrategyUnion Strategy = "union"
	// StrategyDict merges mappings key by key, replacing every field.
	StrategyDict Strategy = "dict"
	// StrategyRecord merges mappings with a named policy per field.
	StrategyRecord Strategy = "record"
	// StrategyCollection merges mappings with one shared policy for every field.
	StrategyCollection Strategy = "collection"
)

// Strategies lists every strategy in display order.
var Strategies = []Strategy{
	StrategyReplace, StrategySkip, StrategyMatch, StrategyAdd, StrategyUnion,
	StrategyDict, StrategyRecord, StrategyCollection,
}

// KeyFunc extracts the identity of a sequence element for union merges.
type KeyFunc func(item any) any

// Policy is one node of a merge policy tree. Leaf policies combine two
// values directly; container policies (dict, record, collection) merge
// mappings and hand each field to a child policy.
//
// Policies are immutable once built and safe to share.
type Policy struct {
	strategy Strategy
	fields   map[string]*Policy
	shared   *Policy
	key      KeyFunc
	keyField string
}

var replacePolicy = &Policy{strategy: StrategyReplace}

// Replace returns a policy where the second value wins.
func Replace() *Policy { return replacePolicy }

// Skip returns a policy where the first value wins.
func Skip() *Policy { return &Policy{strategy: StrategySkip} }

// Match returns a policy that fails unless both values are equal.
func Match() *Policy { return &Policy{strategy: StrategyMatch} }

// Add returns a policy that sums numbers and concatenates sequences.
func Add() *Policy { return &Policy{strategy: StrategyAdd} }

// Dict returns a policy that merges mappings, replacing every field.
func Dict() *Policy { return &Policy{strategy: StrategyDict} }

// Union returns a policy that unions sequences by element identity.
func Union() *Policy {
	return &Policy{strategy: StrategyUnion, key: identity}
}

// UnionBy returns a policy that unions sequences by the key fn extracts.
func UnionBy(fn KeyFunc) *Policy {
	if fn == nil {
		fn = identity
	}
	return &Policy{strategy: StrategyUnion, key: fn}
}

// UnionByField returns a policy that unions sequences of mappings by the
// value of one field. Elements that are not mappings use their own identity.
func UnionByField(field string) *Policy {
	if field == "" {
		return Union()
	}
	return &Policy{strategy: StrategyUnion, key: fieldKey(field), keyField: field}
}

// Record returns a policy that merges mappings using the named child policy
// for each field; fields without a policy are replaced.
func Record(fields map[string]*Policy) *Policy {
	copied := make(map[string]*Policy, len(fields))
	for name, child := range fields {
		if child == nil {
			child = Replace()
		}
		copied[name] = child
	}
	return &Policy{strategy: StrategyRecord, fields: copied}
}

// Collection returns a policy that merges mappings using shared for every field.
func Collection(shared *Policy) *Policy {
	if shared == nil {
		shared = Replace()
	}
	return &Policy{strategy: StrategyCollection, shared: shared}
}

// Strategy returns the policy's strategy.
func (p *Policy) Strategy() Strategy {
	return p.strategy
}

// WithField returns a copy of a record policy with child registered for name.
// Any other policy is returned unchanged.
func (p *Policy) WithField(name string, child *Policy) *Policy {
	if p.strategy != StrategyRecord {
		return p
	}
	fields := make(map[string]*Policy, len(p.fields)+1)
	for k, v := range p.fields {
		fields[k] = v
	}
	fields[name] = child
	return Record(fields)
}

// Lookup returns the dedicated child policy for key. The answer depends
// only on the policy: a collection always answers with its shared child,
// a record only for registered fields, and every other policy never.
func (p *Policy) Lookup(key string) (*Policy, bool) {
	switch p.strategy {
	case StrategyRecord:
		child, ok := p.fields[key]
		return child, ok
	case StrategyCollection:
		return p.shared, true
	}
	return nil, false
}

// child is the policy used to merge the field key: the dedicated child, or
// Replace when there is none.
func (p *Policy) child(key string) *Policy {
	if child, ok := p.Lookup(key); ok {
		return child
	}
	return Replace()
}

// Resolve walks path from p. Every segment must have a dedicated child
// policy; a missing one is a configuration error, never a Replace fallback.
func (p *Policy) Resolve(path Path) (*Policy, error) {
	current := p
	for i, key := range path {
		child, ok := current.Lookup(key)
		if !ok {
			return nil, &errors.NoPolicyError{Path: path[:i+1].String()}
		}
		current = child
	}
	return current, nil
}

// Merge combines two values under p. When one side is Missing the other is
// returned as is; when both are Missing the merge fails.
func (p *Policy) Merge(left, right Value) (any, error) {
	return p.merge(nil, left, right)
}

func (p *Policy) merge(path Path, left, right Value) (any, error) {
	l, lok := left.Get()
	r, rok := right.Get()

	switch {
	case !lok && !rok:
		return nil, &errors.BothMissingError{Path: path.String()}
	case !lok:
		return r, nil
	case !rok:
		return l, nil
	}
	return p.combine(path, l, r)
}

func identity(item any) any {
	return item
}

func fieldKey(field string) KeyFunc {
	return func(item any) any {
		if m, ok := item.(*record.Map); ok {
			v, _ := m.Get(field)
			return v
		}
		return item
	}
}

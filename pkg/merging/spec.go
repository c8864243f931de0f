package merging

import (
	"fmt"
	"slices"

	"github.com/agentstation/astromap/pkg/errors"
)

// Spec is the declarative form of a policy tree, as read from policy files:
//
//	strategy: record
//	fields:
//	  items:
//	    strategy: collection
//	    each:
//	      strategy: record
//	      fields:
//	        name: {strategy: match}
//	        tags: {strategy: union}
//	  recipes:
//	    strategy: add
type Spec struct {
	Strategy Strategy         `yaml:"strategy" json:"strategy"`
	Key      string           `yaml:"key,omitempty" json:"key,omitempty"`
	Fields   map[string]*Spec `yaml:"fields,omitempty" json:"fields,omitempty"`
	Each     *Spec            `yaml:"each,omitempty" json:"each,omitempty"`
}

// Build validates the spec and constructs the policy tree it describes.
func (s *Spec) Build() (*Policy, error) {
	return s.build(nil)
}

func (s *Spec) build(path Path) (*Policy, error) {
	if s == nil {
		return nil, errors.NewValidationError(specField(path), nil, "policy spec is empty")
	}
	if !slices.Contains(Strategies, s.Strategy) {
		return nil, errors.NewValidationError(specField(path), s.Strategy,
			fmt.Sprintf("unknown strategy %q", s.Strategy))
	}
	if s.Key != "" && s.Strategy != StrategyUnion {
		return nil, errors.NewValidationError(specField(path), s.Key, "key is only valid for the union strategy")
	}
	if len(s.Fields) > 0 && s.Strategy != StrategyRecord {
		return nil, errors.NewValidationError(specField(path), s.Strategy, "fields are only valid for the record strategy")
	}
	if s.Each != nil && s.Strategy != StrategyCollection {
		return nil, errors.NewValidationError(specField(path), s.Strategy, "each is only valid for the collection strategy")
	}

	switch s.Strategy {
	case StrategyReplace:
		return Replace(), nil
	case StrategySkip:
		return Skip(), nil
	case StrategyMatch:
		return Match(), nil
	case StrategyAdd:
		return Add(), nil
	case StrategyDict:
		return Dict(), nil
	case StrategyUnion:
		return UnionByField(s.Key), nil
	case StrategyRecord:
		fields := make(map[string]*Policy, len(s.Fields))
		for name, child := range s.Fields {
			built, err := child.build(path.Append(name))
			if err != nil {
				return nil, err
			}
			fields[name] = built
		}
		return Record(fields), nil
	default: // StrategyCollection
		if s.Each == nil {
			return Collection(nil), nil
		}
		shared, err := s.Each.build(path.Append("*"))
		if err != nil {
			return nil, err
		}
		return Collection(shared), nil
	}
}

func specField(path Path) string {
	if len(path) == 0 {
		return "<root>"
	}
	return path.String()
}

// Describe returns the spec for a policy tree. A union built with UnionBy
// has no declarative key and is described as a plain union.
func Describe(p *Policy) *Spec {
	if p == nil {
		return nil
	}
	s := &Spec{Strategy: p.strategy}
	switch p.strategy {
	case StrategyUnion:
		s.Key = p.keyField
	case StrategyRecord:
		if len(p.fields) > 0 {
			s.Fields = make(map[string]*Spec, len(p.fields))
			for name, child := range p.fields {
				s.Fields[name] = Describe(child)
			}
		}
	case StrategyCollection:
		s.Each = Describe(p.shared)
	}
	return s
}

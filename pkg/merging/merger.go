// Package merging combines partial records produced by independent page
// parsers into one dataset.
//
// A merge is driven by a policy tree that mirrors the shape of the records.
// Each node is a strategy: replace, skip, match, add, union, or one of the
// mapping strategies (dict, record, collection) that recurse into fields.
// Records are reduced pairwise from left to right, so for strategies that
// are not commutative the order of the inputs decides the result.
//
// Example usage:
//
//	merged, err := merging.Merge(resources, items)
//	if err != nil {
//	    return err
//	}
//
//	// merge only the items mapping of several partial records
//	items, err := merging.MergeAt(merging.ParsePath("items"), universal, planetSpecific, refined)
package merging

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
)

// Merger reduces records with a policy tree.
type Merger struct {
	root   *Policy
	logger *zerolog.Logger
}

type options struct {
	root   *Policy
	logger *zerolog.Logger
}

// Option configures a Merger.
type Option func(*options) error

// WithPolicy sets the root of the policy tree.
func WithPolicy(root *Policy) Option {
	return func(o *options) error {
		if root == nil {
			return &errors.ValidationError{Field: "policy", Message: "cannot be nil"}
		}
		o.root = root
		return nil
	}
}

// WithSpec builds the policy tree from a declarative spec.
func WithSpec(spec *Spec) Option {
	return func(o *options) error {
		root, err := spec.Build()
		if err != nil {
			return err
		}
		o.root = root
		return nil
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// New creates a Merger. Without options it uses the default policy tree.
func New(opts ...Option) (*Merger, error) {
	o := &options{logger: logging.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.root == nil {
		o.root = DefaultPolicy()
	}
	if o.logger == nil {
		o.logger = &logging.Nop
	}
	return &Merger{root: o.root, logger: o.logger}, nil
}

// Root returns the root of the policy tree.
func (m *Merger) Root() *Policy {
	return m.root
}

// Resolve returns the policy at path.
func (m *Merger) Resolve(path Path) (*Policy, error) {
	return m.root.Resolve(path)
}

// Merge reduces records with the root policy. See MergeAt.
func (m *Merger) Merge(records ...any) (any, error) {
	return m.MergeAt(nil, records...)
}

// MergeAt reduces records left to right with the policy found at path:
// MergeAt(p, a, b, c) equals MergeAt(p, MergeAt(p, a, b), c).
// At least two records are required. A record may be Missing, or a Value.
func (m *Merger) MergeAt(path Path, records ...any) (any, error) {
	if len(records) < constants.MinMergeRecords {
		return nil, &errors.ArgumentCountError{Got: len(records), Min: constants.MinMergeRecords}
	}

	policy, err := m.root.Resolve(path)
	if err != nil {
		return nil, err
	}

	m.logger.Debug().
		Str("path", path.String()).
		Str("strategy", policy.Strategy().String()).
		Int("records", len(records)).
		Msg("Merging records")

	acc := Of(records[0])
	for _, next := range records[1:] {
		merged, err := policy.merge(path, acc, Of(next))
		if err != nil {
			return nil, err
		}
		acc = Some(merged)
	}
	return acc.OrElse(nil), nil
}

var (
	defaultOnce   sync.Once
	defaultMerger *Merger
)

// Default returns a Merger using the default policy tree.
func Default() *Merger {
	defaultOnce.Do(func() {
		defaultMerger = &Merger{root: DefaultPolicy(), logger: &logging.Nop}
	})
	return defaultMerger
}

// Merge reduces records with the default policy tree.
func Merge(records ...any) (any, error) {
	return Default().Merge(records...)
}

// MergeAt reduces records with the policy at path in the default policy tree.
func MergeAt(path Path, records ...any) (any, error) {
	return Default().MergeAt(path, records...)
}

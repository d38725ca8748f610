// Package index is the master index: the consumer that folds every delivered
// implementor set into one trait-keyed table the viewer can query.
package index

import (
	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/logging"
	"github.com/arthur-debert/implx/pkg/registry"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/rs/zerolog"
)

// Index accumulates implementors per trait. It is safe for concurrent use.
type Index struct {
	traits      registry.Registry[types.Implementors]
	skipLibrary string
	logger      zerolog.Logger
}

var _ handoff.Consumer = (*Index)(nil)

// Option configures an Index
type Option func(*Index)

// WithSkipLibrary drops the named library from every delivery. A viewer
// rendering that library's own pages already lists its implementors.
func WithSkipLibrary(name string) Option {
	return func(ix *Index) { ix.skipLibrary = name }
}

// WithLogger replaces the default component logger
func WithLogger(l zerolog.Logger) Option {
	return func(ix *Index) { ix.logger = l }
}

// New creates an empty index
func New(opts ...Option) *Index {
	ix := &Index{
		traits: registry.New[types.Implementors](),
		logger: logging.GetLogger("index"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Register folds one delivery into the index. Entries for a library the
// trait already has are appended after the existing ones; nothing is
// deduplicated. An empty delivery still creates the trait's entry, and the
// trait is stored as given, even when it is "".
func (ix *Index) Register(trait types.TraitPath, impls types.Implementors) {
	ix.traits.Update(string(trait), func(current types.Implementors, exists bool) types.Implementors {
		if !exists {
			current = types.Implementors{}
		}
		for lib, entries := range impls {
			if lib == ix.skipLibrary && lib != "" {
				continue
			}
			merged := make([]types.Implementor, 0, len(current[lib])+len(entries))
			merged = append(merged, current[lib]...)
			merged = append(merged, entries...)
			current[lib] = merged
		}
		return current
	})
	ix.logger.Debug().
		Str("trait", trait.String()).
		Int("libraries", len(impls)).
		Msg("Indexed implementors")
}

// Traits returns the indexed traits in first-delivery order
func (ix *Index) Traits() []types.TraitPath {
	names := ix.traits.Ordered()
	out := make([]types.TraitPath, len(names))
	for i, n := range names {
		out[i] = types.TraitPath(n)
	}
	return out
}

// Get returns a copy of the implementors indexed for trait
func (ix *Index) Get(trait types.TraitPath) (types.Implementors, error) {
	impls, err := ix.traits.Get(string(trait))
	if err != nil {
		return nil, errors.Newf(errors.ErrNotFound, "trait %s is not indexed", trait).
			WithDetail("trait", trait.String())
	}
	return impls.Clone(), nil
}

// Libraries returns the sorted library names that implement trait
func (ix *Index) Libraries(trait types.TraitPath) ([]string, error) {
	impls, err := ix.Get(trait)
	if err != nil {
		return nil, err
	}
	return impls.Libraries(), nil
}

// Implementor is one entry of a WhoImplements answer
type Implementor struct {
	Library string
	Entry   types.Implementor
}

// WhoImplements flattens trait's implementors: libraries in sorted order,
// entries in discovery order within each library.
func (ix *Index) WhoImplements(trait types.TraitPath) ([]Implementor, error) {
	impls, err := ix.Get(trait)
	if err != nil {
		return nil, err
	}
	var out []Implementor
	for _, lib := range impls.Libraries() {
		for _, e := range impls[lib] {
			out = append(out, Implementor{Library: lib, Entry: e})
		}
	}
	return out, nil
}

// Len returns the number of indexed traits
func (ix *Index) Len() int {
	return ix.traits.Count()
}

// Snapshot returns a deep copy of the whole index, in first-delivery order
func (ix *Index) Snapshot() []types.Delivery {
	traits := ix.Traits()
	out := make([]types.Delivery, 0, len(traits))
	for _, trait := range traits {
		impls, err := ix.Get(trait)
		if err != nil {
			continue
		}
		out = append(out, types.Delivery{Trait: trait, Implementors: impls})
	}
	return out
}

package fragment

import (
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/types"
)

// Fragment is the implementor data for one trait
type Fragment struct {
	Trait        types.TraitPath
	Implementors types.Implementors

	// Source is the path the fragment was loaded from, if any
	Source string
}

// New creates a fragment from literal data
func New(trait types.TraitPath, impls types.Implementors) *Fragment {
	return &Fragment{Trait: trait, Implementors: impls}
}

// Delivery returns the fragment's payload
func (f *Fragment) Delivery() types.Delivery {
	return types.Delivery{Trait: f.Trait, Implementors: f.Implementors}
}

// Run executes the fragment as a producer: it delivers to h's consumer if
// one is installed and parks the data on h otherwise.
func (f *Fragment) Run(h *handoff.Handoff) {
	h.Produce(f.Delivery())
}

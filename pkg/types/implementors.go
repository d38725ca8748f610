package types

import (
	"sort"
	"strings"
)

// TraitPath is the canonical path of an interface, e.g. "core::ops::BitXor".
type TraitPath string

// String returns the path as a plain string
func (t TraitPath) String() string { return string(t) }

// Name returns the last path segment ("BitXor" for "core::ops::BitXor")
func (t TraitPath) Name() string {
	s := string(t)
	if i := strings.LastIndex(s, "::"); i >= 0 {
		return s[i+2:]
	}
	return s
}

// Implementor describes one concrete type implementing a trait. The content
// is opaque to the registration protocol; it is rendered by the viewer.
type Implementor string

// Implementors maps a library name to the implementors it defines, in
// discovery order.
type Implementors map[string][]Implementor

// Clone returns a deep copy. A nil receiver clones to an empty, non-nil map.
func (im Implementors) Clone() Implementors {
	out := make(Implementors, len(im))
	for lib, entries := range im {
		cp := make([]Implementor, len(entries))
		copy(cp, entries)
		out[lib] = cp
	}
	return out
}

// Libraries returns the library names in sorted order
func (im Implementors) Libraries() []string {
	libs := make([]string, 0, len(im))
	for lib := range im {
		libs = append(libs, lib)
	}
	sort.Strings(libs)
	return libs
}

// Count returns the total number of entries across all libraries
func (im Implementors) Count() int {
	n := 0
	for _, entries := range im {
		n += len(entries)
	}
	return n
}

// Delivery is the payload of one fragment: every implementor of a single
// trait, keyed by library.
type Delivery struct {
	Trait        TraitPath
	Implementors Implementors
}

// Clone returns a copy of the delivery whose implementors share no memory
// with the original.
func (d Delivery) Clone() Delivery {
	return Delivery{Trait: d.Trait, Implementors: d.Implementors.Clone()}
}

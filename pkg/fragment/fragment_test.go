package fragment

import (
	"testing"

	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/index"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeliversWhenInstalled(t *testing.T) {
	h := handoff.New(handoff.WithLogger(zerolog.Nop()))
	ix := index.New(index.WithLogger(zerolog.Nop()))
	require.NoError(t, h.Install(ix))

	New("core::ops::BitXor", types.Implementors{"crateA": {"entry1", "entry2"}}).Run(h)

	got, err := ix.Get("core::ops::BitXor")
	require.NoError(t, err)
	assert.Equal(t, types.Implementors{"crateA": {"entry1", "entry2"}}, got)
}

func TestRunParksWhenNotInstalled(t *testing.T) {
	h := handoff.New(handoff.WithLogger(zerolog.Nop()))

	New("a::A", types.Implementors{"crateA": {"x"}}).Run(h)
	New("b::B", types.Implementors{"crateB": {"y"}}).Run(h)

	pending := h.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, types.TraitPath("b::B"), pending[0].Trait)
}

func TestDelivery(t *testing.T) {
	f := New("a::A", types.Implementors{"lib": {"x"}})
	d := f.Delivery()
	assert.Equal(t, types.TraitPath("a::A"), d.Trait)
	assert.Equal(t, f.Implementors, d.Implementors)
}

func TestTraitFromPath(t *testing.T) {
	tests := []struct {
		path string
		want types.TraitPath
		ok   bool
	}{
		{"implementors/core/ops/trait.BitXor.js", "core::ops::BitXor", true},
		{"/doc/implementors/std/io/trait.Read.json", "std::io::Read", true},
		{"out/implementors/a/implementors/b/trait.T.toml", "b::T", true},
		{"implementors/core/ops/struct.Int.js", "", false},
		{"core/ops/trait.BitXor.js", "", false},
		{"implementors/trait.Bare.js", "", false},
		{"implementors/core/trait..js", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := TraitFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

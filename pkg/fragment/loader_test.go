package fragment

import (
	"testing"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/filesystem"
	"github.com/arthur-debert/implx/pkg/testutil"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFormats(t *testing.T) {
	want := types.Implementors{"ramp": {"impl Add for Int"}, "libc": {}}

	tests := []struct {
		name string
		path string
		data string
	}{
		{"json", "frag.json", `{"trait": "core::ops::Add", "implementors": {"ramp": ["impl Add for Int"], "libc": []}}`},
		{"yaml", "frag.yaml", "trait: core::ops::Add\nimplementors:\n  ramp: [\"impl Add for Int\"]\n  libc: []\n"},
		{"yml", "frag.YML", "trait: core::ops::Add\nimplementors:\n  ramp: [\"impl Add for Int\"]\n  libc: []\n"},
		{"toml", "frag.toml", "trait = \"core::ops::Add\"\n[implementors]\nramp = [\"impl Add for Int\"]\nlibc = []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := Decode(tt.path, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, types.TraitPath("core::ops::Add"), frag.Trait)
			assert.Equal(t, want, frag.Implementors)
			assert.Equal(t, tt.path, frag.Source)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		path string
		data string
	}{
		{"frag.json", `{"trait": "a::A", "implementors": {}, "extra": 1}`},
		{"frag.yaml", "trait: a::A\nimplementors: {}\nextra: 1\n"},
		{"frag.toml", "trait = \"a::A\"\nextra = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Decode(tt.path, []byte(tt.data))
			assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentParse), "got %v", err)
		})
	}
}

func TestDecodeTraitFallsBackToPath(t *testing.T) {
	frag, err := Decode("implementors/core/ops/trait.Sub.json", []byte(`{"implementors": {"ramp": ["x"]}}`))
	require.NoError(t, err)
	assert.Equal(t, types.TraitPath("core::ops::Sub"), frag.Trait)

	_, err = Decode("loose.json", []byte(`{"implementors": {}}`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentParse))
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode("frag.xml", []byte(`<x/>`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedFormat))
	assert.False(t, Supported("frag.xml"))
	assert.True(t, Supported("a/trait.X.JS"))
	assert.Equal(t, []string{".js", ".json", ".toml", ".yaml", ".yml"}, Formats())
}

func TestDecodeScriptNeedsTraitPath(t *testing.T) {
	_, err := Decode("somewhere/file.js", []byte(`implementors['a'] = [];`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentParse))
}

func TestLoaderTestdata(t *testing.T) {
	loader := NewLoader(filesystem.NewOS())

	frags, err := loader.LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, frags, 3)

	assert.Equal(t, types.TraitPath("core::cmp::PartialEq"), frags[0].Trait)
	assert.Equal(t, types.TraitPath("core::ops::Add"), frags[1].Trait)
	assert.Equal(t, types.TraitPath("core::ops::BitXor"), frags[2].Trait)

	bitxor := frags[2].Implementors
	assert.Equal(t, []string{"float", "libc", "ramp"}, bitxor.Libraries())
	assert.Len(t, bitxor["ramp"], 18)
	assert.Len(t, bitxor["float"], 1)
	assert.Empty(t, bitxor["libc"])
	assert.Contains(t, string(bitxor["float"][0]), "float::Sign")
}

func TestLoaderLoad(t *testing.T) {
	fsys := testutil.MemoryFS(t, map[string]string{
		"/doc/implementors/core/ops/trait.Not.js": `implementors['ramp'] = ["impl Not for Int"];`,
	})
	loader := NewLoader(fsys)

	frag, err := loader.Load("/doc/implementors/core/ops/trait.Not.js")
	require.NoError(t, err)
	assert.Equal(t, types.TraitPath("core::ops::Not"), frag.Trait)
	assert.Equal(t, "/doc/implementors/core/ops/trait.Not.js", frag.Source)

	_, err = loader.Load("/doc/missing.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentRead))
}

func TestLoaderLoadPaths(t *testing.T) {
	fsys := testutil.MemoryFS(t, map[string]string{
		"/a/implementors/x/trait.B.json": `{"implementors": {}}`,
		"/a/implementors/x/trait.A.json": `{"implementors": {}}`,
		"/a/notes.md":                    `ignored`,
		"/single/trait.json":             `{"trait": "s::Single", "implementors": {}}`,
	})
	loader := NewLoader(fsys)

	frags, err := loader.LoadPaths([]string{"/single/trait.json", "/a"})
	require.NoError(t, err)

	var traits []types.TraitPath
	for _, f := range frags {
		traits = append(traits, f.Trait)
	}
	assert.Equal(t, []types.TraitPath{"s::Single", "x::A", "x::B"}, traits)

	_, err = loader.LoadPaths([]string{"/nope"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentRead))
}

func TestLoaderLoadDirStopsOnBadFragment(t *testing.T) {
	fsys := testutil.MemoryFS(t, map[string]string{
		"/d/implementors/x/trait.Good.json": `{"implementors": {}}`,
		"/d/implementors/x/trait.Bad.json":  `{not json`,
	})

	_, err := NewLoader(fsys).LoadDir("/d")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentParse))

	_, err = NewLoader(fsys).LoadDir("/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentRead))
}

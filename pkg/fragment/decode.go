package fragment

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/registry"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decoder turns the bytes of one fragment file into a Fragment. path is
// used to derive the trait when the data does not name it.
type Decoder func(path string, data []byte) (*Fragment, error)

// document is the structured fragment layout shared by JSON, YAML and TOML
type document struct {
	Trait        string              `json:"trait" yaml:"trait" toml:"trait"`
	Implementors map[string][]string `json:"implementors" yaml:"implementors" toml:"implementors"`
}

var decoders = registry.New[Decoder]()

func init() {
	registry.MustRegister(decoders, ".json", decodeJSON)
	registry.MustRegister(decoders, ".yaml", decodeYAML)
	registry.MustRegister(decoders, ".yml", decodeYAML)
	registry.MustRegister(decoders, ".toml", decodeTOML)
	registry.MustRegister(decoders, ".js", decodeScript)
}

// Formats returns the supported file extensions, sorted
func Formats() []string {
	return decoders.List()
}

// Supported reports whether path has a decodable extension
func Supported(path string) bool {
	return decoders.Has(strings.ToLower(filepath.Ext(path)))
}

// Decode picks a decoder by the extension of path
func Decode(path string, data []byte) (*Fragment, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, err := decoders.Get(ext)
	if err != nil {
		return nil, errors.Newf(errors.ErrUnsupportedFormat, "no fragment decoder for %q", ext).
			WithDetail("path", path).
			WithDetail("supported", Formats())
	}
	frag, err := dec(path, data)
	if err != nil {
		return nil, err
	}
	frag.Source = path
	return frag, nil
}

func decodeJSON(path string, data []byte) (*Fragment, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError(err, path, "json")
	}
	return doc.fragment(path)
}

func decodeYAML(path string, data []byte) (*Fragment, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError(err, path, "yaml")
	}
	return doc.fragment(path)
}

func decodeTOML(path string, data []byte) (*Fragment, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError(err, path, "toml")
	}
	return doc.fragment(path)
}

func decodeScript(path string, data []byte) (*Fragment, error) {
	trait, ok := TraitFromPath(path)
	if !ok {
		return nil, errors.Newf(errors.ErrFragmentParse, "cannot derive trait from script path %s", path).
			WithDetail("path", path)
	}
	impls, err := parseScript(string(data))
	if err != nil {
		return nil, parseError(err, path, "js")
	}
	return &Fragment{Trait: trait, Implementors: impls}, nil
}

func (d document) fragment(path string) (*Fragment, error) {
	trait := types.TraitPath(d.Trait)
	if trait == "" {
		derived, ok := TraitFromPath(path)
		if !ok {
			return nil, errors.Newf(errors.ErrFragmentParse, "fragment %s names no trait", path).
				WithDetail("path", path)
		}
		trait = derived
	}

	impls := make(types.Implementors, len(d.Implementors))
	for lib, entries := range d.Implementors {
		bucket := make([]types.Implementor, len(entries))
		for i, e := range entries {
			bucket[i] = types.Implementor(e)
		}
		impls[lib] = bucket
	}
	return &Fragment{Trait: trait, Implementors: impls}, nil
}

func parseError(err error, path, format string) error {
	return errors.Wrapf(err, errors.ErrFragmentParse, "invalid %s fragment %s", format, path).
		WithDetail("path", path)
}

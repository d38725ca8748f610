package output

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type jsonFormatter struct{}

func newJSON(Options) Formatter { return jsonFormatter{} }

func (jsonFormatter) Format(w io.Writer, v *View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return renderError(err, "json")
	}
	return nil
}

type yamlFormatter struct{}

func newYAML(Options) Formatter { return yamlFormatter{} }

func (yamlFormatter) Format(w io.Writer, v *View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return renderError(err, "yaml")
	}
	if err := enc.Close(); err != nil {
		return renderError(err, "yaml")
	}
	return nil
}

type tomlFormatter struct{}

func newTOML(Options) Formatter { return tomlFormatter{} }

func (tomlFormatter) Format(w io.Writer, v *View) error {
	if err := toml.NewEncoder(w).Encode(v); err != nil {
		return renderError(err, "toml")
	}
	return nil
}

// Package styles holds the lipgloss styles used by the text formatter.
//
// Styles are declared in styles.yaml with semantic names and adaptive
// colors, so they read well on light and dark terminals alike:
//
//	Trait     the trait path heading
//	Library   a library bucket under a trait
//	Entry     one implementor line
//	Lost      a delivery overwritten before the index was installed
package styles

import (
	_ "embed"
	"fmt"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color in styles.yaml
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is one named style in styles.yaml
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
}

// Config is the parsed styles.yaml
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Sheet maps style names to lipgloss styles bound to one renderer
type Sheet struct {
	styles map[string]lipgloss.Style
}

// Default builds the embedded style sheet for r
func Default(r *lipgloss.Renderer) *Sheet {
	sheet, err := Parse(defaultStyles, r)
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded styles: %v", err))
	}
	return sheet
}

// Parse builds a sheet from YAML style definitions
func Parse(data []byte, r *lipgloss.Renderer) (*Sheet, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	sheet := &Sheet{styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		sheet.styles[name] = build(r, def, colors)
	}
	return sheet, nil
}

func build(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if c, ok := colors[def.Foreground]; ok {
		style = style.Foreground(c)
	}
	if c, ok := colors[def.Background]; ok {
		style = style.Background(c)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	return style
}

// Has reports whether the sheet defines name
func (s *Sheet) Has(name string) bool {
	_, ok := s.styles[name]
	return ok
}

// Get returns the named style, or a blank one if it is not defined
func (s *Sheet) Get(name string) lipgloss.Style {
	if style, ok := s.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text
func (s *Sheet) Render(name, text string) string {
	return s.Get(name).Render(text)
}

package config

import (
	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/output"
	"github.com/arthur-debert/implx/pkg/session"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the complete implx configuration
type Config struct {
	Handoff   Handoff   `koanf:"handoff" toml:"handoff"`
	Index     Index     `koanf:"index" toml:"index"`
	Session   Session   `koanf:"session" toml:"session"`
	Fragments Fragments `koanf:"fragments" toml:"fragments"`
	Output    Output    `koanf:"output" toml:"output"`
	Metrics   Metrics   `koanf:"metrics" toml:"metrics"`

	// Sources lists the files that were loaded, lowest priority first
	Sources []string `koanf:"-" toml:"-"`
}

// Handoff configures the registration handoff
type Handoff struct {
	Mode string `koanf:"mode" toml:"mode"`
}

// Index configures the index consumer
type Index struct {
	SkipLibrary string `koanf:"skip_library" toml:"skip_library"`
}

// Session configures page playback
type Session struct {
	InstallAfter int  `koanf:"install_after" toml:"install_after"`
	Drain        bool `koanf:"drain" toml:"drain"`
}

// Fragments configures where fragments are read from
type Fragments struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// Output configures rendering
type Output struct {
	Format string `koanf:"format" toml:"format"`
	Style  string `koanf:"style" toml:"style"`
	Width  int    `koanf:"width" toml:"width"`
}

// Metrics configures the prometheus observer
type Metrics struct {
	Enabled bool `koanf:"enabled" toml:"enabled"`
}

// HandoffMode returns the parsed handoff mode
func (c *Config) HandoffMode() handoff.Mode {
	mode, err := handoff.ParseMode(c.Handoff.Mode)
	if err != nil {
		return handoff.ModeSlot
	}
	return mode
}

// SessionOptions converts the configuration into playback options
func (c *Config) SessionOptions() session.Options {
	installAfter := c.Session.InstallAfter
	if installAfter < 0 {
		installAfter = session.Never
	}
	return session.Options{
		Mode:         c.HandoffMode(),
		InstallAfter: installAfter,
		NoDrain:      !c.Session.Drain,
		SkipLibrary:  c.Index.SkipLibrary,
	}
}

// OutputOptions converts the configuration into formatter options
func (c *Config) OutputOptions(noColor bool) output.Options {
	return output.Options{
		NoColor: noColor,
		Style:   c.Output.Style,
		Width:   c.Output.Width,
	}
}

// Validate checks values that the type system can not
func (c *Config) Validate() error {
	if _, err := handoff.ParseMode(c.Handoff.Mode); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid handoff.mode").
			WithDetail("value", c.Handoff.Mode)
	}
	if _, err := output.New(c.Output.Format, output.Options{}); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.format").
			WithDetail("value", c.Output.Format).
			WithDetail("formats", output.Names())
	}
	if c.Output.Width < 0 {
		return errors.Newf(errors.ErrConfigValid, "output.width must not be negative, got %d", c.Output.Width)
	}
	if c.Fragments.Dir == "" {
		return errors.New(errors.ErrConfigValid, "fragments.dir must not be empty")
	}
	return nil
}

// TOML renders the effective configuration in the layout of the defaults
// file, so the output can be saved as an implx.toml.
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}

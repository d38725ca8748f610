package output

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/registry"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Options are shared by all formatters; each uses what applies to it
type Options struct {
	// NoColor strips styling from terminal formats
	NoColor bool
	// Style is the glamour style for markdown: "auto", "raw" (unrendered),
	// a standard style name or a path to a style file
	Style string
	// Width wraps rendered markdown; 0 leaves the renderer's default
	Width int
}

// Formatter writes a View in one format
type Formatter interface {
	Format(w io.Writer, v *View) error
}

// Factory builds a formatter for the given options
type Factory func(opts Options) Formatter

var formatters = registry.New[Factory]()

func init() {
	registry.MustRegister(formatters, "text", newText)
	registry.MustRegister(formatters, "markdown", newMarkdown)
	registry.MustRegister(formatters, "json", newJSON)
	registry.MustRegister(formatters, "yaml", newYAML)
	registry.MustRegister(formatters, "toml", newTOML)
}

// Names returns the registered format names, sorted
func Names() []string {
	return formatters.List()
}

// New returns the formatter registered under name
func New(name string, opts Options) (Formatter, error) {
	factory, err := formatters.Get(strings.ToLower(name))
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", name).
			WithDetail("formats", Names())
	}
	return factory(opts), nil
}

// Write formats v as name in one call
func Write(w io.Writer, name string, v *View, opts Options) error {
	f, err := New(name, opts)
	if err != nil {
		return err
	}
	return f.Format(w, v)
}

// DetectNoColor reports whether output to f should be left unstyled:
// NO_COLOR is set, f is not a terminal, or the terminal has no colours.
func DetectNoColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return true
	}
	return termenv.ColorProfile() == termenv.Ascii
}

func renderError(err error, format string) error {
	return errors.Wrapf(err, errors.ErrRender, "failed to render %s output", format)
}

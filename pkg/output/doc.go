// Package output renders the implementor index for people and for tools.
//
// Rendering is two steps. The index (and optionally a session report) is
// first flattened into a View, a plain data structure with entries already
// reduced to text. A Formatter then writes the View in one format:
//
//	text      styled terminal listing (lipgloss, pterm tables)
//	markdown  markdown rendered for the terminal by glamour
//	json      indented JSON
//	yaml      YAML documents
//	toml      TOML documents
//
// Formatters are looked up by name in a registry, so callers pick one from
// configuration or a --format flag:
//
//	f, err := output.New("text", output.Options{NoColor: output.DetectNoColor(os.Stdout)})
//	err = f.Format(os.Stdout, output.FromIndex(ix))
//
// Colour is only emitted when the writer is a terminal that supports it
// and NO_COLOR is unset; see DetectNoColor.
package output

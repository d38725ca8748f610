package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

type markdownFormatter struct {
	opts Options
}

func newMarkdown(opts Options) Formatter {
	return &markdownFormatter{opts: opts}
}

func (f *markdownFormatter) Format(w io.Writer, v *View) error {
	md := Markdown(v)
	if f.opts.Style == "raw" {
		_, err := io.WriteString(w, md)
		if err != nil {
			return renderError(err, "markdown")
		}
		return nil
	}

	var options []glamour.TermRendererOption
	switch {
	case f.opts.NoColor:
		options = append(options, glamour.WithStandardStyle("notty"))
	case f.opts.Style != "" && f.opts.Style != "auto":
		options = append(options, glamour.WithStylePath(f.opts.Style))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	if f.opts.Width > 0 {
		options = append(options, glamour.WithWordWrap(f.opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return renderError(err, "markdown")
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return renderError(err, "markdown")
	}
	if _, err := io.WriteString(w, rendered); err != nil {
		return renderError(err, "markdown")
	}
	return nil
}

// Markdown returns v as a markdown document
func Markdown(v *View) string {
	var b strings.Builder
	b.WriteString("# Implementors\n")
	if len(v.Traits) == 0 {
		b.WriteString("\n_No implementors indexed._\n")
	}
	for _, t := range v.Traits {
		fmt.Fprintf(&b, "\n## %s\n", codeSpan(t.Trait))
		if len(t.Libraries) == 0 {
			b.WriteString("\n_No implementors._\n")
		}
		for _, lib := range t.Libraries {
			fmt.Fprintf(&b, "\n### %s\n\n", lib.Name)
			for _, e := range lib.Entries {
				fmt.Fprintf(&b, "- %s\n", codeSpan(e.Text))
			}
		}
	}

	if rep := v.Report; rep != nil {
		installed := "never"
		if rep.InstalledAt >= 0 {
			installed = fmt.Sprintf("after %d fragments", rep.InstalledAt)
		}
		b.WriteString("\n## Session\n\n")
		b.WriteString("| fragments | index installed | delivered | parked | overwritten | drained |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %d |\n",
			rep.Fragments, installed, rep.Delivered, rep.Parked, rep.Overwritten, rep.Drained)
		for _, lost := range rep.Lost {
			fmt.Fprintf(&b, "\n- lost: %s", codeSpan(lost))
		}
		for _, stranded := range rep.Stranded {
			fmt.Fprintf(&b, "\n- pending: %s", codeSpan(stranded))
		}
		if len(rep.Lost)+len(rep.Stranded) > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// codeSpan wraps s in enough backticks that none inside it closes the span
func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if len(fence) > 1 {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/implx/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

type textFormatter struct {
	opts Options
}

func newText(opts Options) Formatter {
	return &textFormatter{opts: opts}
}

func (f *textFormatter) Format(w io.Writer, v *View) error {
	r := lipgloss.NewRenderer(w)
	if f.opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	sheet := styles.Default(r)

	var b strings.Builder
	if len(v.Traits) == 0 {
		b.WriteString(sheet.Render("Muted", "No implementors indexed."))
		b.WriteString("\n")
	}
	for _, t := range v.Traits {
		b.WriteString(sheet.Render("Trait", t.Trait))
		b.WriteString("\n")
		if len(t.Libraries) == 0 {
			b.WriteString(sheet.Render("Entry", sheet.Render("Muted", "(no implementors)")))
			b.WriteString("\n")
		}
		for _, lib := range t.Libraries {
			b.WriteString(sheet.Render("Library", lib.Name))
			b.WriteString(sheet.Render("Muted", fmt.Sprintf(" (%d)", len(lib.Entries))))
			b.WriteString("\n")
			for _, e := range lib.Entries {
				b.WriteString(sheet.Render("Entry", e.Text))
				b.WriteString("\n")
			}
		}
	}

	if v.Report != nil {
		table, err := f.reportTable(v.Report)
		if err != nil {
			return renderError(err, "text")
		}
		b.WriteString("\n")
		b.WriteString(sheet.Render("Header", "Session"))
		b.WriteString("\n")
		b.WriteString(table)
		for _, lost := range v.Report.Lost {
			b.WriteString(sheet.Render("Lost", "lost: "+lost))
			b.WriteString("\n")
		}
		for _, stranded := range v.Report.Stranded {
			b.WriteString(sheet.Render("Stranded", "pending: "+stranded))
			b.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return renderError(err, "text")
	}
	return nil
}

func (f *textFormatter) reportTable(rep *ReportView) (string, error) {
	installed := "never"
	if rep.InstalledAt >= 0 {
		installed = strconv.Itoa(rep.InstalledAt)
	}
	data := pterm.TableData{
		{"fragments", "installed after", "delivered", "parked", "overwritten", "drained"},
		{
			strconv.Itoa(rep.Fragments),
			installed,
			strconv.Itoa(rep.Delivered),
			strconv.Itoa(rep.Parked),
			strconv.Itoa(rep.Overwritten),
			strconv.Itoa(rep.Drained),
		},
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	if f.opts.NoColor {
		table = pterm.RemoveColorFromString(table)
	}
	return table + "\n", nil
}

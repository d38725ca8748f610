package output

import (
	"github.com/arthur-debert/implx/pkg/implementor"
	"github.com/arthur-debert/implx/pkg/index"
	"github.com/arthur-debert/implx/pkg/session"
	"github.com/arthur-debert/implx/pkg/types"
)

// View is the format-neutral form of what gets rendered
type View struct {
	Traits []TraitView  `json:"traits" yaml:"traits" toml:"traits"`
	Report *ReportView `json:"report,omitempty" yaml:"report,omitempty" toml:"report,omitempty"`
}

// TraitView is one trait and its implementors, libraries sorted by name
type TraitView struct {
	Trait     string        `json:"trait" yaml:"trait" toml:"trait"`
	Libraries []LibraryView `json:"libraries" yaml:"libraries" toml:"libraries"`
}

// LibraryView is one library bucket
type LibraryView struct {
	Name    string      `json:"name" yaml:"name" toml:"name"`
	Entries []EntryView `json:"entries" yaml:"entries" toml:"entries"`
}

// EntryView is one implementor entry
type EntryView struct {
	Text string `json:"text" yaml:"text" toml:"text"`
	For  string `json:"for,omitempty" yaml:"for,omitempty" toml:"for,omitempty"`
	Raw  string `json:"raw" yaml:"raw" toml:"raw"`
}

// ReportView mirrors session.Report
type ReportView struct {
	Fragments   int      `json:"fragments" yaml:"fragments" toml:"fragments"`
	InstalledAt int      `json:"installed_at" yaml:"installed_at" toml:"installed_at"`
	Delivered   int      `json:"delivered" yaml:"delivered" toml:"delivered"`
	Parked      int      `json:"parked" yaml:"parked" toml:"parked"`
	Overwritten int      `json:"overwritten" yaml:"overwritten" toml:"overwritten"`
	Drained     int      `json:"drained" yaml:"drained" toml:"drained"`
	Lost        []string `json:"lost,omitempty" yaml:"lost,omitempty" toml:"lost,omitempty"`
	Stranded    []string `json:"stranded,omitempty" yaml:"stranded,omitempty" toml:"stranded,omitempty"`
}

// FromIndex builds a view of every trait in ix, in first-delivery order
func FromIndex(ix *index.Index) *View {
	return FromDeliveries(ix.Snapshot())
}

// FromDeliveries builds a view from deliveries, one trait per delivery
func FromDeliveries(ds []types.Delivery) *View {
	v := &View{Traits: make([]TraitView, 0, len(ds))}
	for _, d := range ds {
		v.Traits = append(v.Traits, traitView(d))
	}
	return v
}

// WithReport attaches a session report to the view
func (v *View) WithReport(r session.Report) *View {
	v.Report = &ReportView{
		Fragments:   r.Fragments,
		InstalledAt: r.InstalledAt,
		Delivered:   r.Delivered,
		Parked:      r.Parked,
		Overwritten: r.Overwritten,
		Drained:     r.Drained,
		Lost:        traitNames(r.Lost),
		Stranded:    traitNames(r.Stranded),
	}
	return v
}

func traitView(d types.Delivery) TraitView {
	tv := TraitView{Trait: d.Trait.String(), Libraries: []LibraryView{}}
	for _, lib := range d.Implementors.Libraries() {
		lv := LibraryView{Name: lib, Entries: []EntryView{}}
		for _, e := range d.Implementors[lib] {
			lv.Entries = append(lv.Entries, entryView(e))
		}
		tv.Libraries = append(tv.Libraries, lv)
	}
	return tv
}

func entryView(e types.Implementor) EntryView {
	d, err := implementor.Parse(e)
	if err != nil {
		return EntryView{Text: string(e), Raw: string(e)}
	}
	return EntryView{Text: d.Text, For: d.For, Raw: string(e)}
}

func traitNames(ts []types.TraitPath) []string {
	if len(ts) == 0 {
		return nil
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

// Package implementor reads the markup of an implementor entry so the viewer
// can show it as plain text and follow its links. Registration never looks
// inside entries; only display and queries do.
package implementor

import (
	"strings"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/beevik/etree"
)

// Link is one hyperlink inside an entry
type Link struct {
	// Kind is the link's class attribute: trait, struct, enum, primitive, type, ...
	Kind  string
	Href  string
	Title string
	Text  string
}

// Description is the parsed form of one implementor entry
type Description struct {
	// Text is the entry with markup removed and entities decoded
	Text string
	// Generics is the impl's own parameter list, e.g. "<'a, 'b>", or ""
	Generics string
	// TraitText is the implemented trait as written, e.g. "BitXor<&'a Int>"
	TraitText string
	// For is the implementing type as written, e.g. "&'b Int"
	For string
	// Trait is the first link of kind "trait", if any
	Trait *Link
	Links []Link
}

// htmlEntities are the named entities rustdoc emits beyond the XML five
var htmlEntities = map[string]string{
	"nbsp":  "\u00a0",
	"mdash": "—",
	"ndash": "–",
}

// Parse parses one entry
func Parse(entry types.Implementor) (*Description, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = htmlEntities
	if err := doc.ReadFromString("<code>" + string(entry) + "</code>"); err != nil {
		return nil, errors.Wrap(err, errors.ErrEntryParse, "invalid implementor markup").
			WithDetail("entry", string(entry))
	}

	d := &Description{}
	var text strings.Builder
	walk(doc.Root(), &text, d)
	d.Text = strings.Join(strings.Fields(text.String()), " ")

	for i := range d.Links {
		if d.Links[i].Kind == "trait" {
			d.Trait = &d.Links[i]
			break
		}
	}
	d.Generics, d.TraitText, d.For = split(d.Text)
	return d, nil
}

// MustText returns the entry's plain text, or the raw entry if it cannot be
// parsed.
func MustText(entry types.Implementor) string {
	d, err := Parse(entry)
	if err != nil {
		return string(entry)
	}
	return d.Text
}

func walk(el *etree.Element, text *strings.Builder, d *Description) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			text.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == "a" {
				var inner strings.Builder
				walk(t, &inner, &Description{})
				d.Links = append(d.Links, Link{
					Kind:  t.SelectAttrValue("class", ""),
					Href:  t.SelectAttrValue("href", ""),
					Title: t.SelectAttrValue("title", ""),
					Text:  inner.String(),
				})
				text.WriteString(inner.String())
				continue
			}
			walk(t, text, d)
		}
	}
}

// split breaks "impl<G> Trait for Type" into its three parts
func split(text string) (generics, trait, forType string) {
	rest, ok := strings.CutPrefix(text, "impl")
	if !ok {
		return "", "", ""
	}
	if strings.HasPrefix(rest, "<") {
		depth := 0
		for i, r := range rest {
			switch r {
			case '<':
				depth++
			case '>':
				depth--
			}
			if depth == 0 {
				generics = rest[:i+1]
				rest = rest[i+1:]
				break
			}
		}
	}
	rest = strings.TrimSpace(rest)

	if i := strings.LastIndex(rest, " for "); i >= 0 {
		trait = strings.TrimSpace(rest[:i])
		forType = strings.TrimSpace(rest[i+len(" for "):])
		if w := strings.Index(forType, " where "); w >= 0 {
			forType = forType[:w]
		}
		return generics, trait, forType
	}
	return generics, rest, ""
}

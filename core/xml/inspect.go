package xml

import (
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text"`
}

var (
	headingsExpr = xpath.MustCompile(`//*[self::h1 or self::h2 or self::h3 or self::h4 or self::h5 or self::h6]`)
	anchorsExpr  = xpath.MustCompile(`//*[@id]`)
	linksExpr    = xpath.MustCompile(`//a[starts-with(@href, '#')]`)
)

// Outline returns the headings of the document in document order.
func (d *Document) Outline() []Heading {
	var out []Heading
	for _, n := range xmlquery.QuerySelectorAll(d.root, headingsExpr) {
		out = append(out, Heading{
			Level: int(n.Data[1] - '0'),
			ID:    n.SelectAttr("id"),
			Text:  strings.Join(strings.Fields(n.InnerText()), " "),
		})
	}
	return out
}

// Anchors counts the elements carrying each id.
func (d *Document) Anchors() map[string]int {
	ids := make(map[string]int)
	for _, n := range xmlquery.QuerySelectorAll(d.root, anchorsExpr) {
		ids[n.SelectAttr("id")]++
	}
	return ids
}

// Links returns the targets of in-document links, in document order.
func (d *Document) Links() []string {
	var out []string
	for _, n := range xmlquery.QuerySelectorAll(d.root, linksExpr) {
		if target := strings.TrimPrefix(n.SelectAttr("href"), "#"); target != "" {
			out = append(out, target)
		}
	}
	return out
}

// LinkReport is the result of CheckLinks.
type LinkReport struct {
	// Links is the number of in-document links checked.
	Links int `json:"links"`
	// Dead lists link targets no element carries, sorted.
	Dead []string `json:"dead,omitempty"`
	// Duplicates lists ids carried by more than one element, sorted.
	Duplicates []string `json:"duplicates,omitempty"`
}

// OK reports whether no dead link or duplicate id was found.
func (r LinkReport) OK() bool {
	return len(r.Dead) == 0 && len(r.Duplicates) == 0
}

// CheckLinks verifies that every in-document link resolves to exactly one
// element.
func (d *Document) CheckLinks() LinkReport {
	anchors := d.Anchors()
	links := d.Links()
	report := LinkReport{Links: len(links)}
	for _, target := range links {
		if anchors[target] == 0 {
			report.Dead = append(report.Dead, target)
		}
	}
	for id, n := range anchors {
		if n > 1 {
			report.Duplicates = append(report.Duplicates, id)
		}
	}
	slices.Sort(report.Dead)
	report.Dead = slices.Compact(report.Dead)
	slices.Sort(report.Duplicates)
	return report
}

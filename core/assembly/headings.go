package assembly

import (
	"regexp"
)

// HeadingContext names where re-embedded content lands in the document.
type HeadingContext int

const (
	// BookIntro is a notes or commentary book introduction.
	BookIntro HeadingContext = iota
	// ChapterIntro is a notes chapter introduction.
	ChapterIntro
	// Commentary is commentary text, book or chapter level.
	Commentary
)

// shiftTables map an authored heading level to its embedded level.
// Levels absent from a table are kept.
var shiftTables = map[HeadingContext]map[byte]byte{
	BookIntro:    {'1': '2', '2': '3', '3': '4', '4': '5'},
	ChapterIntro: {'1': '3', '2': '4', '3': '5', '4': '6'},
	Commentary:   {'1': '3', '2': '4', '3': '5', '4': '6', '5': '6'},
}

var headingTag = regexp.MustCompile(`(?i)<(/?)h([1-6])([\s>/])`)

// ShiftHeadings re-levels the headings of html for ctx in a single pass,
// so a rewritten tag is never rewritten again. It is not idempotent:
// interleavers shift each intro or commentary fragment exactly once, as
// they emit it.
func ShiftHeadings(html string, ctx HeadingContext) string {
	table := shiftTables[ctx]
	return headingTag.ReplaceAllStringFunc(html, func(tag string) string {
		m := headingTag.FindStringSubmatch(tag)
		level := m[2][0]
		if to, ok := table[level]; ok {
			level = to
		}
		// Keep the original "h"/"H" spelling.
		h := tag[1+len(m[1])]
		return "<" + m[1] + string(h) + string(level) + m[3]
	})
}

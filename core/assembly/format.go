package assembly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/JuniperDocgen/core/bible"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

// Anchors. Book numbers come from the canonical book table, chapters are
// padded to three digits and every numeric part of a verse key ("3-4") is
// padded the same way.

// PadVerse zero-pads every numeric component of a verse key.
func PadVerse(verse string) string {
	parts := strings.Split(verse, "-")
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil && n >= 0 {
			parts[i] = fmt.Sprintf("%03d", n)
		}
	}
	return strings.Join(parts, "-")
}

// BookAnchor returns "{lang}-{booknum}".
func BookAnchor(lang, book string) string {
	return lang + "-" + bible.Number(book)
}

// ChapterAnchor returns "{lang}-{booknum}-ch-{chapter}".
func ChapterAnchor(lang, book string, chapter int) string {
	return fmt.Sprintf("%s-ch-%03d", BookAnchor(lang, book), chapter)
}

// VerseAnchor returns "{lang}-{booknum}-ch-{chapter}-v-{verse}".
func VerseAnchor(lang, book string, chapter int, verse string) string {
	return ChapterAnchor(lang, book, chapter) + "-v-" + PadVerse(verse)
}

// helpsAnchor returns the anchor of a verse-level helps fragment, e.g.
// "en-52-tn-ch-001-v-002".
func helpsAnchor(lang, book, resource string, chapter int, verse string) string {
	return fmt.Sprintf("%s-%s-ch-%03d-v-%s", BookAnchor(lang, book), resource, chapter, PadVerse(verse))
}

// WordAnchor returns the glossary anchor of a word, "{lang}-{word}".
func WordAnchor(lang, word string) string {
	return lang + "-" + word
}

// GlossaryAnchor returns the anchor of a glossary section.
func GlossaryAnchor(lang, book string) string {
	return lang + "-tw-" + book
}

// bookName returns the localized name of the first unit carrying one, else
// the canonical English name.
func bookName(book string, units ...content.Unit) string {
	for _, u := range units {
		if u != nil && u.BookName() != "" {
			return u.BookName()
		}
	}
	return bible.Name(book)
}

// formatter renders fragments from templates.
type formatter struct {
	t Templates
}

func (f formatter) rowBegin() string    { return f.t.RowBegin }
func (f formatter) rowEnd() string      { return f.t.RowEnd }
func (f formatter) columnBegin() string { return f.t.ColumnBegin }
func (f formatter) columnEnd() string   { return f.t.ColumnEnd }

func (f formatter) directionBegin(dir Direction, lang string) string {
	return fmt.Sprintf(f.t.DirectionBegin, string(dir), lang)
}

func (f formatter) directionEnd() string { return f.t.DirectionEnd }

// wrapDirection wraps one fragment in a direction container. Empty
// fragments stay empty.
func (f formatter) wrapDirection(dir Direction, lang, html string) string {
	if html == "" {
		return ""
	}
	return f.directionBegin(dir, lang) + html + f.directionEnd()
}

func (f formatter) bookHeading(lang, book, name string) string {
	return fmt.Sprintf(f.t.BookHeading, BookAnchor(lang, book), name)
}

func (f formatter) chapterHeading(lang, book, name string, chapter int) string {
	return fmt.Sprintf(f.t.ChapterHeading, ChapterAnchor(lang, book, chapter), name, chapter)
}

func (f formatter) scriptureVerse(s *content.ScriptureBook, chapter int, verse, html string, secondary bool) string {
	anchor := VerseAnchor(s.LangCode(), s.BookCode(), chapter, verse)
	if secondary {
		anchor += "-" + s.ResourceType()
	}
	return fmt.Sprintf(f.t.Verse, anchor, html)
}

func (f formatter) note(n *content.NotesBook, chapter int, verse, html string) string {
	return fmt.Sprintf(f.t.Note, helpsAnchor(n.LangCode(), n.BookCode(), "tn", chapter, verse), html)
}

func (f formatter) question(q *content.QuestionsBook, chapter int, verse, html string) string {
	return fmt.Sprintf(f.t.Question, helpsAnchor(q.LangCode(), q.BookCode(), "tq", chapter, verse), html)
}

// wordLinks renders the links list of the matched words. No words renders
// nothing, not even the list wrapper.
func (f formatter) wordLinks(lang string, words []string) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range words {
		fmt.Fprintf(&b, f.t.WordLinkItem, WordAnchor(lang, w), w)
	}
	return fmt.Sprintf(f.t.WordLinks, b.String())
}

func (f formatter) glossaryHeading(w *content.WordsBook) string {
	name := w.LangName()
	if name == "" {
		name = w.LangCode()
	}
	return fmt.Sprintf(f.t.GlossaryHeading, GlossaryAnchor(w.LangCode(), w.BookCode()), name)
}

// uses renders a "Uses" list. No uses renders nothing. By-chapter
// documents carry no verse ids, so their items link to the chapter.
func (f formatter) uses(uses []content.Use, chunk ChunkSize) string {
	if len(uses) == 0 {
		return ""
	}
	var b strings.Builder
	for _, u := range uses {
		anchor := VerseAnchor(u.LangCode, u.BookCode, u.Chapter, u.Verse)
		if chunk == ChunkChapter {
			anchor = ChapterAnchor(u.LangCode, u.BookCode, u.Chapter)
		}
		fmt.Fprintf(&b, f.t.UseItem, anchor, u.BookName, u.Chapter, u.Verse)
	}
	return fmt.Sprintf(f.t.Uses, b.String())
}

func (f formatter) footnotes(html string) string {
	if html == "" {
		return ""
	}
	return fmt.Sprintf(f.t.Footnotes, html)
}

package assembly

import (
	"strings"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

// Lang-then-book interleaving. One group is one language and one book; the
// whole group is wrapped in a single direction container.

func langBookByVerse(p *pass, g *LangBookGroup, layout Layout, em *emitter) {
	p.langBook(g, layout, em, p.langBookVerses)
}

func langBookByChapter(p *pass, g *LangBookGroup, layout Layout, em *emitter) {
	p.langBook(g, layout, em, p.langBookChapterBody)
}

type langBookBody func(g *LangBookGroup, layout Layout, chapter int, em *emitter)

// langBook emits the book intro, then for every chapter of the pump its
// head and body, then the glossary.
func (p *pass) langBook(g *LangBookGroup, layout Layout, em *emitter, body langBookBody) {
	em.emit(p.f.directionBegin(p.dirs.Direction(g.LangCode), g.LangCode))
	name := bookName(g.BookCode, g.units()...)

	if g.Scripture == nil {
		em.emit(p.f.bookHeading(g.LangCode, g.BookCode, name))
	}
	if g.Notes != nil {
		em.emit(ShiftHeadings(g.Notes.Intro, BookIntro))
	}
	if g.Commentary != nil {
		em.emit(ShiftHeadings(g.Commentary.Intro, Commentary))
	}

	if pump := g.pump(); pump != nil {
		for _, ch := range pump.ChapterNumbers() {
			p.langBookChapterHead(g, name, ch, em)
			body(g, layout, ch, em)
			if em.stopped {
				return
			}
		}
	}

	if g.Words != nil {
		p.glossary(g.Words, !layout.Compact(), em)
	}
	em.emit(p.f.directionEnd())
}

// langBookChapterHead emits the chapter heading, the notes chapter intro
// and the chapter commentary.
func (p *pass) langBookChapterHead(g *LangBookGroup, name string, chapter int, em *emitter) {
	if g.Scripture != nil {
		if ch, ok := g.Scripture.Chapters.Get(chapter); ok && ch != nil {
			em.emit(ch.Heading())
		}
	} else {
		em.emit(p.f.chapterHeading(g.LangCode, g.BookCode, name, chapter))
	}

	if g.Notes != nil {
		if ch, ok := g.Notes.Chapters.Get(chapter); ok && ch != nil {
			em.emit(ShiftHeadings(ch.Intro, ChapterIntro))
		} else {
			p.missing(g.Notes, chapter, "")
		}
	}
	if g.Commentary != nil {
		if ch, ok := g.Commentary.Chapters.Get(chapter); ok && ch != nil {
			em.emit(ShiftHeadings(ch.Commentary, Commentary))
		} else {
			p.missing(g.Commentary, chapter, "")
		}
	}
}

// langBookVerses walks the verses of the pump in source order.
func (p *pass) langBookVerses(g *LangBookGroup, layout Layout, chapter int, em *emitter) {
	for _, verse := range g.pump().VerseNumbers(chapter) {
		p.langBookVerse(g, layout, chapter, verse, em)
		if em.stopped {
			return
		}
	}
	em.emit(p.footnotes(g.Scripture, chapter))
	em.emit(p.footnotes(g.Secondary, chapter))
}

// langBookVerse emits one verse: primary scripture, secondary scripture,
// then the helps, arranged for the layout.
func (p *pass) langBookVerse(g *LangBookGroup, layout Layout, chapter int, verse string, em *emitter) {
	var primary, primaryHTML, secondary string
	if g.Scripture != nil {
		if html, ok := g.Scripture.Verse(chapter, verse); ok {
			primaryHTML = html
			primary = p.f.scriptureVerse(g.Scripture, chapter, verse, html, false)
		} else {
			p.missing(g.Scripture, chapter, verse)
		}
	}
	if g.Secondary != nil {
		if html, ok := g.Secondary.Verse(chapter, verse); ok {
			secondary = p.f.scriptureVerse(g.Secondary, chapter, verse, html, true)
		} else {
			p.missing(g.Secondary, chapter, verse)
		}
	}

	var helps []string
	if g.Notes != nil {
		if html, ok := g.Notes.Verse(chapter, verse); ok {
			helps = append(helps, p.f.note(g.Notes, chapter, verse, html))
		} else {
			p.missing(g.Notes, chapter, verse)
		}
	}
	if g.Questions != nil {
		if html, ok := g.Questions.Verse(chapter, verse); ok {
			helps = append(helps, p.f.question(g.Questions, chapter, verse, html))
		} else {
			p.missing(g.Questions, chapter, verse)
		}
	}
	if g.Words != nil && primary != "" && !layout.Compact() {
		helps = append(helps, p.wordLinks(g.Words, g.Scripture, chapter, verse, primaryHTML))
	}

	switch layout {
	case TwoColumnScriptureHelps, TwoColumnScriptureHelpsCompact:
		p.row(em, []string{primary, secondary}, helps)
	case TwoColumnScriptureScripture, TwoColumnScriptureScriptureCompact:
		p.row(em, []string{primary}, []string{secondary})
		em.emitAll(helps)
	default:
		em.emit(primary)
		em.emit(secondary)
		em.emitAll(helps)
	}
}

// langBookChapterBody emits whole chapters: scripture body and footnotes,
// then all notes, questions and word links of the chapter, then the
// secondary scripture.
func (p *pass) langBookChapterBody(g *LangBookGroup, layout Layout, chapter int, em *emitter) {
	primary := p.scriptureChapter(g.Scripture, chapter, true)
	secondary := p.scriptureChapter(g.Secondary, chapter, false)

	var helps []string
	if g.Notes != nil {
		helps = append(helps, p.notesChapter(g.Notes, chapter)...)
	}
	if g.Questions != nil {
		helps = append(helps, p.questionsChapter(g.Questions, chapter)...)
	}
	if g.Words != nil && g.Scripture != nil && !layout.Compact() {
		helps = append(helps, p.chapterWordLinks(g.Words, g.Scripture, chapter))
	}

	switch layout {
	case TwoColumnScriptureHelps, TwoColumnScriptureHelpsCompact:
		p.row(em, primary, helps)
		em.emitAll(secondary)
	case TwoColumnScriptureScripture, TwoColumnScriptureScriptureCompact:
		p.row(em, primary, secondary)
		em.emitAll(helps)
	default:
		em.emitAll(primary)
		em.emitAll(helps)
		em.emitAll(secondary)
	}
}

// scriptureChapter returns the chapter body after its heading, followed by
// the footnotes. The body of a primary unit opens with its chapter anchor,
// the target of glossary uses, unless the heading already carries it. A nil
// unit or a missing chapter yields nothing.
func (p *pass) scriptureChapter(s *content.ScriptureBook, chapter int, primary bool) []string {
	if s == nil {
		return nil
	}
	ch, ok := s.Chapters.Get(chapter)
	if !ok || ch == nil {
		p.missing(s, chapter, "")
		return nil
	}
	var out []string
	if primary {
		id := ChapterAnchor(s.LangCode(), s.BookCode(), chapter)
		if !strings.Contains(ch.Heading(), `id="`+id+`"`) {
			out = append(out, `<a id="`+id+`"></a>`)
		}
	}
	if len(ch.Content) > 1 {
		out = append(out, ch.Content[1:]...)
	}
	if fn := p.f.footnotes(ch.Footnotes); fn != "" {
		out = append(out, fn)
	}
	return out
}

// notesChapter returns every verse note of a chapter in source order.
func (p *pass) notesChapter(n *content.NotesBook, chapter int) []string {
	ch, ok := n.Chapters.Get(chapter)
	if !ok || ch == nil {
		p.missing(n, chapter, "")
		return nil
	}
	var out []string
	for verse, html := range ch.Verses.All() {
		out = append(out, p.f.note(n, chapter, verse, html))
	}
	return out
}

// questionsChapter returns every verse question of a chapter in source
// order.
func (p *pass) questionsChapter(q *content.QuestionsBook, chapter int) []string {
	ch, ok := q.Chapters.Get(chapter)
	if !ok || ch == nil {
		p.missing(q, chapter, "")
		return nil
	}
	var out []string
	for verse, html := range ch.Verses.All() {
		out = append(out, p.f.question(q, chapter, verse, html))
	}
	return out
}

// footnotes renders the footnotes of a scripture chapter, or nothing.
func (p *pass) footnotes(s *content.ScriptureBook, chapter int) string {
	if s == nil {
		return ""
	}
	ch, ok := s.Chapters.Get(chapter)
	if !ok || ch == nil {
		return ""
	}
	return p.f.footnotes(ch.Footnotes)
}

// row emits a two-column row.
func (p *pass) row(em *emitter, left, right []string) {
	p.columns(em, left, right)
}

// columns emits one row holding cols in order. Every column is emitted,
// even when empty, so the columns of consecutive rows line up.
func (p *pass) columns(em *emitter, cols ...[]string) {
	em.emit(p.f.rowBegin())
	for _, c := range cols {
		em.emit(p.f.columnBegin())
		em.emitAll(c)
		em.emit(p.f.columnEnd())
	}
	em.emit(p.f.rowEnd())
}

package assembly

import (
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

// Book-then-lang interleaving. One group is one book across every requested
// language; each fragment is wrapped in the direction container of the
// unit it came from.

// bookLangState carries what is computed once per group before any
// fragment is produced.
type bookLangState struct {
	g      *BookLangGroup
	layout Layout
	langs  []string
	pump   content.Chaptered
	paired []*content.ScriptureBook
}

// pump picks the unit driving chapter enumeration: the scripture unit with
// the most chapters, else the notes, questions or commentary unit with the
// most chapters. A words-only group has no pump.
func (g *BookLangGroup) pump() (content.Chaptered, error) {
	key := g.Key()
	switch {
	case key.Scripture:
		if u, ok := mostChapters(g.Scripture); ok {
			return u, nil
		}
		return nil, &errors.EmptyPumpError{Kind: content.KindScripture.String()}
	case key.Notes:
		if u, ok := mostChapters(g.Notes); ok {
			return u, nil
		}
		return nil, &errors.EmptyPumpError{Kind: content.KindNotes.String()}
	case key.Questions:
		if u, ok := mostChapters(g.Questions); ok {
			return u, nil
		}
		return nil, &errors.EmptyPumpError{Kind: content.KindQuestions.String()}
	case key.Commentary:
		if u, ok := mostChapters(g.Commentary); ok {
			return u, nil
		}
		return nil, &errors.EmptyPumpError{Kind: content.KindCommentary.String()}
	}
	return nil, nil
}

// versePump returns the verse keys of a chapter from the unit of the
// driving kind with the most verses in it.
func (s *bookLangState) versePump(chapter int) []string {
	switch s.pump.(type) {
	case *content.ScriptureBook:
		if u, ok := mostVerses(s.g.Scripture, chapter); ok {
			return u.VerseNumbers(chapter)
		}
	case *content.NotesBook:
		if u, ok := mostVerses(s.g.Notes, chapter); ok {
			return u.VerseNumbers(chapter)
		}
	case *content.QuestionsBook:
		if u, ok := mostVerses(s.g.Questions, chapter); ok {
			return u.VerseNumbers(chapter)
		}
	}
	return nil
}

func bookLangByVerse(p *pass, g *BookLangGroup, layout Layout, em *emitter) {
	p.bookLang(g, layout, em, p.bookLangVerses)
}

func bookLangByChapter(p *pass, g *BookLangGroup, layout Layout, em *emitter) {
	p.bookLang(g, layout, em, p.bookLangChapterBody)
}

type bookLangBody func(s *bookLangState, chapter int, em *emitter)

func (p *pass) bookLang(g *BookLangGroup, layout Layout, em *emitter, body bookLangBody) {
	pump, err := g.pump()
	if err != nil {
		// Checked when dispatching.
		p.log.Error("book-lang pump", "book", g.BookCode, "error", err)
		return
	}
	s := &bookLangState{
		g:      g,
		layout: layout,
		langs:  g.Languages(),
		pump:   pump,
	}
	if layout == TwoColumnScriptureScripture || layout == TwoColumnScriptureScriptureCompact {
		s.paired = PairScripture(g.Scripture)
	}

	p.bookLangIntro(s, em)

	if pump != nil {
		for _, ch := range pump.ChapterNumbers() {
			p.bookLangChapterHead(s, ch, em)
			body(s, ch, em)
			if em.stopped {
				return
			}
		}
	}

	for _, w := range g.Words {
		if len(w.Entries) == 0 {
			continue
		}
		em.emit(p.f.directionBegin(p.dirs.Direction(w.LangCode()), w.LangCode()))
		p.glossary(w, !layout.Compact(), em)
		em.emit(p.f.directionEnd())
	}
}

// wrap wraps html in the direction container of u.
func (p *pass) wrap(u content.Unit, html string) string {
	return p.f.wrapDirection(p.dirs.Direction(u.LangCode()), u.LangCode(), html)
}

func (p *pass) bookLangIntro(s *bookLangState, em *emitter) {
	g := s.g
	if len(g.Scripture) == 0 && len(s.langs) > 0 {
		lang := s.langs[0]
		em.emit(p.wrapLang(lang, p.f.bookHeading(lang, g.BookCode, p.bookLangName(g, lang))))
	}
	for _, n := range g.Notes {
		em.emit(p.wrap(n, ShiftHeadings(n.Intro, BookIntro)))
	}
	for _, c := range g.Commentary {
		em.emit(p.wrap(c, ShiftHeadings(c.Intro, Commentary)))
	}
}

func (p *pass) wrapLang(lang, html string) string {
	return p.f.wrapDirection(p.dirs.Direction(lang), lang, html)
}

// bookLangName returns the localized book name for lang.
func (p *pass) bookLangName(g *BookLangGroup, lang string) string {
	var units []content.Unit
	if s := byLang(g.Scripture, lang); s != nil {
		units = append(units, s)
	}
	if n := byLang(g.Notes, lang); n != nil {
		units = append(units, n)
	}
	if q := byLang(g.Questions, lang); q != nil {
		units = append(units, q)
	}
	if c := byLang(g.Commentary, lang); c != nil {
		units = append(units, c)
	}
	return bookName(g.BookCode, units...)
}

// bookLangChapterHead emits the chapter heading once, from the pump, then
// every language's notes chapter intro and chapter commentary.
func (p *pass) bookLangChapterHead(s *bookLangState, chapter int, em *emitter) {
	if sb, ok := s.pump.(*content.ScriptureBook); ok {
		if ch, ok := sb.Chapters.Get(chapter); ok && ch != nil {
			em.emit(p.wrap(sb, ch.Heading()))
		}
	} else {
		lang := s.pump.LangCode()
		em.emit(p.wrapLang(lang, p.f.chapterHeading(lang, s.g.BookCode, p.bookLangName(s.g, lang), chapter)))
	}

	for _, n := range s.g.Notes {
		if ch, ok := n.Chapters.Get(chapter); ok && ch != nil {
			em.emit(p.wrap(n, ShiftHeadings(ch.Intro, ChapterIntro)))
		} else {
			p.missing(n, chapter, "")
		}
	}
	for _, c := range s.g.Commentary {
		if ch, ok := c.Chapters.Get(chapter); ok && ch != nil {
			em.emit(p.wrap(c, ShiftHeadings(ch.Commentary, Commentary)))
		} else {
			p.missing(c, chapter, "")
		}
	}
}

// isSecondary reports whether the i-th sorted scripture unit follows a unit
// of the same language.
func isSecondary(units []*content.ScriptureBook, i int) bool {
	return i > 0 && units[i-1].LangCode() == units[i].LangCode()
}

// scriptureFor returns the scripture unit a words unit takes its verse
// text from: the first sorted scripture unit with the same language and
// book.
func scriptureFor(units []*content.ScriptureBook, w *content.WordsBook) *content.ScriptureBook {
	for _, s := range units {
		if s.LangCode() == w.LangCode() && s.BookCode() == w.BookCode() {
			return s
		}
	}
	return nil
}

func (p *pass) bookLangVerses(s *bookLangState, chapter int, em *emitter) {
	for _, verse := range s.versePump(chapter) {
		p.bookLangVerse(s, chapter, verse, em)
		if em.stopped {
			return
		}
	}
	for _, sb := range s.g.Scripture {
		em.emit(p.wrap(sb, p.footnotes(sb, chapter)))
	}
}

// isPrimary reports whether sb is the first scripture unit of its
// language.
func (s *bookLangState) isPrimary(sb *content.ScriptureBook) bool {
	for i, u := range s.g.Scripture {
		if u == sb {
			return !isSecondary(s.g.Scripture, i)
		}
	}
	return false
}

// bookLangScriptureVerse renders one verse of a scripture unit, or nothing
// when the unit lacks it.
func (p *pass) bookLangScriptureVerse(s *bookLangState, sb *content.ScriptureBook, chapter int, verse string) string {
	html, ok := sb.Verse(chapter, verse)
	if !ok {
		p.missing(sb, chapter, verse)
		return ""
	}
	return p.wrap(sb, p.f.scriptureVerse(sb, chapter, verse, html, !s.isPrimary(sb)))
}

// helpKinds is the number of help kinds laid out per language: notes,
// questions and word links, in that order.
const helpKinds = 3

type helpSlots [helpKinds][]string

func (h helpSlots) flatten() []string {
	var out []string
	for _, frags := range h {
		out = append(out, frags...)
	}
	return out
}

// verseHelps renders the note, question and word links of one language for
// one verse, one slot per kind.
func (p *pass) verseHelps(s *bookLangState, lang string, chapter int, verse string) helpSlots {
	var out helpSlots
	if n := byLang(s.g.Notes, lang); n != nil {
		if html, ok := n.Verse(chapter, verse); ok {
			out[0] = []string{p.wrap(n, p.f.note(n, chapter, verse, html))}
		} else {
			p.missing(n, chapter, verse)
		}
	}
	if q := byLang(s.g.Questions, lang); q != nil {
		if html, ok := q.Verse(chapter, verse); ok {
			out[1] = []string{p.wrap(q, p.f.question(q, chapter, verse, html))}
		} else {
			p.missing(q, chapter, verse)
		}
	}
	if w := byLang(s.g.Words, lang); w != nil && !s.layout.Compact() {
		if sb := scriptureFor(s.g.Scripture, w); sb != nil {
			if html, ok := sb.Verse(chapter, verse); ok {
				out[2] = []string{p.wrap(w, p.wordLinks(w, sb, chapter, verse, html))}
			}
		}
	}
	return out
}

func (p *pass) bookLangVerse(s *bookLangState, chapter int, verse string, em *emitter) {
	switch s.layout {
	case TwoColumnScriptureHelps, TwoColumnScriptureHelpsCompact:
		scripture := make([][]string, len(s.langs))
		perLang := make([]helpSlots, len(s.langs))
		for i, lang := range s.langs {
			for _, sb := range s.g.Scripture {
				if sb.LangCode() == lang {
					scripture[i] = append(scripture[i], p.bookLangScriptureVerse(s, sb, chapter, verse))
				}
			}
			perLang[i] = p.verseHelps(s, lang, chapter, verse)
		}
		p.languageRows(em, scripture, perLang)
	case TwoColumnScriptureScripture, TwoColumnScriptureScriptureCompact:
		p.pairedRows(em, s.paired, func(sb *content.ScriptureBook) []string {
			return []string{p.bookLangScriptureVerse(s, sb, chapter, verse)}
		})
		for _, lang := range s.langs {
			em.emitAll(p.verseHelps(s, lang, chapter, verse).flatten())
		}
	default:
		for _, sb := range s.g.Scripture {
			em.emit(p.bookLangScriptureVerse(s, sb, chapter, verse))
		}
		for _, lang := range s.langs {
			em.emitAll(p.verseHelps(s, lang, chapter, verse).flatten())
		}
	}
}

// languageRows lays out a scripture row and then one row per help kind,
// each with one column per language. A row blank in every language is
// left out.
func (p *pass) languageRows(em *emitter, scripture [][]string, perLang []helpSlots) {
	p.languageRow(em, scripture)
	for kind := range helpKinds {
		cols := make([][]string, len(perLang))
		for i, h := range perLang {
			cols[i] = h[kind]
		}
		p.languageRow(em, cols)
	}
}

func (p *pass) languageRow(em *emitter, cols [][]string) {
	for _, c := range cols {
		if !isBlank(c) {
			p.columns(em, cols...)
			return
		}
	}
}

// pairedRows lays the paired scripture units out two per row. A nil unit,
// or the missing partner of an odd last unit, still takes its column.
func (p *pass) pairedRows(em *emitter, paired []*content.ScriptureBook, render func(*content.ScriptureBook) []string) {
	for i := 0; i < len(paired); i += 2 {
		em.emit(p.f.rowBegin())
		for j := i; j < i+2; j++ {
			em.emit(p.f.columnBegin())
			if j < len(paired) && paired[j] != nil {
				em.emitAll(render(paired[j]))
			}
			em.emit(p.f.columnEnd())
		}
		em.emit(p.f.rowEnd())
	}
}

func (p *pass) bookLangChapterBody(s *bookLangState, chapter int, em *emitter) {
	chapterOf := func(sb *content.ScriptureBook) []string {
		var out []string
		for _, f := range p.scriptureChapter(sb, chapter, s.isPrimary(sb)) {
			out = append(out, p.wrap(sb, f))
		}
		return out
	}

	switch s.layout {
	case TwoColumnScriptureHelps, TwoColumnScriptureHelpsCompact:
		scripture := make([][]string, len(s.langs))
		perLang := make([]helpSlots, len(s.langs))
		for i, lang := range s.langs {
			for _, sb := range s.g.Scripture {
				if sb.LangCode() == lang {
					scripture[i] = append(scripture[i], chapterOf(sb)...)
				}
			}
			perLang[i] = p.chapterHelps(s, lang, chapter)
		}
		p.languageRows(em, scripture, perLang)
	case TwoColumnScriptureScripture, TwoColumnScriptureScriptureCompact:
		p.pairedRows(em, s.paired, chapterOf)
		for _, lang := range s.langs {
			em.emitAll(p.chapterHelps(s, lang, chapter).flatten())
		}
	default:
		for _, sb := range s.g.Scripture {
			em.emitAll(chapterOf(sb))
		}
		for _, lang := range s.langs {
			em.emitAll(p.chapterHelps(s, lang, chapter).flatten())
		}
	}
}

// chapterHelps renders all notes, questions and word links of one language
// for one chapter, one slot per kind.
func (p *pass) chapterHelps(s *bookLangState, lang string, chapter int) helpSlots {
	var out helpSlots
	if n := byLang(s.g.Notes, lang); n != nil {
		for _, f := range p.notesChapter(n, chapter) {
			out[0] = append(out[0], p.wrap(n, f))
		}
	}
	if q := byLang(s.g.Questions, lang); q != nil {
		for _, f := range p.questionsChapter(q, chapter) {
			out[1] = append(out[1], p.wrap(q, f))
		}
	}
	if w := byLang(s.g.Words, lang); w != nil && !s.layout.Compact() {
		if sb := scriptureFor(s.g.Scripture, w); sb != nil {
			out[2] = []string{p.wrap(w, p.chapterWordLinks(w, sb, chapter))}
		}
	}
	return out
}

func isBlank(frags []string) bool {
	for _, f := range frags {
		if f != "" {
			return false
		}
	}
	return true
}

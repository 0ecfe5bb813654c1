package assembly

import (
	"cmp"
	"slices"
	"strings"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

// LangBookGroup holds the units of one language and book. At most one unit
// of each kind is used, plus a secondary scripture unit.
type LangBookGroup struct {
	LangCode string
	BookCode string

	// Scripture is the first scripture unit encountered. It is the only
	// scripture used for cross references.
	Scripture *content.ScriptureBook
	// Secondary is the second scripture unit encountered.
	Secondary *content.ScriptureBook

	Notes      *content.NotesBook
	Questions  *content.QuestionsBook
	Words      *content.WordsBook
	Commentary *content.CommentaryBook

	// Ignored lists units beyond the ones above, in input order.
	Ignored []content.Unit
}

// langBookKey is the presence key of a LangBookGroup.
type langBookKey struct {
	Scripture  bool
	Notes      bool
	Questions  bool
	Words      bool
	Secondary  bool
	Commentary bool
}

func (k langBookKey) String() string {
	return presenceString([]presenceFlag{
		{"scripture", k.Scripture},
		{"notes", k.Notes},
		{"questions", k.Questions},
		{"words", k.Words},
		{"secondary", k.Secondary},
		{"commentary", k.Commentary},
	})
}

type presenceFlag struct {
	name    string
	present bool
}

func presenceString(flags []presenceFlag) string {
	var names []string
	for _, f := range flags {
		if f.present {
			names = append(names, f.name)
		}
	}
	return "{" + strings.Join(names, " ") + "}"
}

// Key returns the presence key.
func (g *LangBookGroup) Key() langBookKey {
	return langBookKey{
		Scripture:  g.Scripture != nil,
		Notes:      g.Notes != nil,
		Questions:  g.Questions != nil,
		Words:      g.Words != nil,
		Secondary:  g.Secondary != nil,
		Commentary: g.Commentary != nil,
	}
}

// units returns the present units, scripture first.
func (g *LangBookGroup) units() []content.Unit {
	var out []content.Unit
	if g.Scripture != nil {
		out = append(out, g.Scripture)
	}
	if g.Secondary != nil {
		out = append(out, g.Secondary)
	}
	if g.Notes != nil {
		out = append(out, g.Notes)
	}
	if g.Questions != nil {
		out = append(out, g.Questions)
	}
	if g.Commentary != nil {
		out = append(out, g.Commentary)
	}
	if g.Words != nil {
		out = append(out, g.Words)
	}
	return out
}

// pump returns the unit driving chapter and verse enumeration: primary
// scripture, else notes, else questions, else commentary. It returns nil
// for a words-only group.
func (g *LangBookGroup) pump() content.Chaptered {
	switch {
	case g.Scripture != nil:
		return g.Scripture
	case g.Notes != nil:
		return g.Notes
	case g.Questions != nil:
		return g.Questions
	case g.Commentary != nil:
		return g.Commentary
	}
	return nil
}

// ClassifyLangBook picks the units of one language and book group. The
// first scripture unit is primary and the second secondary; for the other
// kinds the first unit wins. Everything else is reported in Ignored.
func ClassifyLangBook(units []content.Unit) *LangBookGroup {
	g := &LangBookGroup{}
	for _, u := range units {
		if g.LangCode == "" {
			g.LangCode, g.BookCode = u.LangCode(), u.BookCode()
		}
		used := false
		switch u := u.(type) {
		case *content.ScriptureBook:
			switch {
			case g.Scripture == nil:
				g.Scripture, used = u, true
			case g.Secondary == nil:
				g.Secondary, used = u, true
			}
		case *content.NotesBook:
			if g.Notes == nil {
				g.Notes, used = u, true
			}
		case *content.QuestionsBook:
			if g.Questions == nil {
				g.Questions, used = u, true
			}
		case *content.WordsBook:
			if g.Words == nil {
				g.Words, used = u, true
			}
		case *content.CommentaryBook:
			if g.Commentary == nil {
				g.Commentary, used = u, true
			}
		}
		if !used {
			g.Ignored = append(g.Ignored, u)
		}
	}
	return g
}

// BookLangGroup holds every unit of one book across languages. Each list is
// sorted by language code, ties kept in input order.
type BookLangGroup struct {
	BookCode string

	Scripture  []*content.ScriptureBook
	Notes      []*content.NotesBook
	Questions  []*content.QuestionsBook
	Words      []*content.WordsBook
	Commentary []*content.CommentaryBook
}

// bookLangKey is the presence key of a BookLangGroup.
type bookLangKey struct {
	Scripture  bool
	Notes      bool
	Questions  bool
	Words      bool
	Commentary bool
}

func (k bookLangKey) String() string {
	return presenceString([]presenceFlag{
		{"scripture", k.Scripture},
		{"notes", k.Notes},
		{"questions", k.Questions},
		{"words", k.Words},
		{"commentary", k.Commentary},
	})
}

// Key returns the presence key.
func (g *BookLangGroup) Key() bookLangKey {
	return bookLangKey{
		Scripture:  len(g.Scripture) > 0,
		Notes:      len(g.Notes) > 0,
		Questions:  len(g.Questions) > 0,
		Words:      len(g.Words) > 0,
		Commentary: len(g.Commentary) > 0,
	}
}

// Languages returns the sorted distinct language codes of the group.
func (g *BookLangGroup) Languages() []string {
	var langs []string
	add := func(u content.Unit) { langs = append(langs, u.LangCode()) }
	for _, u := range g.Scripture {
		add(u)
	}
	for _, u := range g.Notes {
		add(u)
	}
	for _, u := range g.Questions {
		add(u)
	}
	for _, u := range g.Words {
		add(u)
	}
	for _, u := range g.Commentary {
		add(u)
	}
	slices.Sort(langs)
	return slices.Compact(langs)
}

// ClassifyBookLang collects the units of one book per kind and sorts every
// list by language code.
func ClassifyBookLang(units []content.Unit) *BookLangGroup {
	g := &BookLangGroup{}
	for _, u := range units {
		if g.BookCode == "" {
			g.BookCode = u.BookCode()
		}
		switch u := u.(type) {
		case *content.ScriptureBook:
			g.Scripture = append(g.Scripture, u)
		case *content.NotesBook:
			g.Notes = append(g.Notes, u)
		case *content.QuestionsBook:
			g.Questions = append(g.Questions, u)
		case *content.WordsBook:
			g.Words = append(g.Words, u)
		case *content.CommentaryBook:
			g.Commentary = append(g.Commentary, u)
		}
	}
	sortByLang(g.Scripture)
	sortByLang(g.Notes)
	sortByLang(g.Questions)
	sortByLang(g.Words)
	sortByLang(g.Commentary)
	return g
}

func sortByLang[U content.Unit](units []U) {
	slices.SortStableFunc(units, func(a, b U) int {
		return cmp.Compare(a.LangCode(), b.LangCode())
	})
}

// byLang returns the first unit of lang, or the zero value.
func byLang[U content.Unit](units []U, lang string) U {
	for _, u := range units {
		if u.LangCode() == lang {
			return u
		}
	}
	var zero U
	return zero
}

// mostChapters returns the unit with the most chapters, the first one on a
// tie. ok is false for an empty list.
func mostChapters[U content.Chaptered](units []U) (best U, ok bool) {
	for i, u := range units {
		if i == 0 || len(u.ChapterNumbers()) > len(best.ChapterNumbers()) {
			best, ok = u, true
		}
	}
	return best, ok
}

// mostVerses returns the unit with the most verses in chapter among the
// units having that chapter, the first one on a tie.
func mostVerses[U content.Chaptered](units []U, chapter int) (best U, ok bool) {
	n := -1
	for _, u := range units {
		if !u.HasChapter(chapter) {
			continue
		}
		if c := len(u.VerseNumbers(chapter)); c > n {
			best, n, ok = u, c, true
		}
	}
	return best, ok
}

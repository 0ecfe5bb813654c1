package content

import "fmt"

// Kind identifies one of the five resource kinds.
type Kind int

// Resource kinds.
const (
	KindScripture Kind = iota
	KindNotes
	KindQuestions
	KindWords
	KindCommentary
)

var kindNames = map[Kind]string{
	KindScripture:  "scripture",
	KindNotes:      "notes",
	KindQuestions:  "questions",
	KindWords:      "words",
	KindCommentary: "commentary",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name as produced by String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown resource kind %q", s)
}

// Unit is a parsed book content unit. The set of implementations is closed:
// *ScriptureBook, *NotesBook, *QuestionsBook, *WordsBook and *CommentaryBook.
type Unit interface {
	LangCode() string
	LangName() string
	BookCode() string
	BookName() string
	ResourceType() string
	Kind() Kind

	sealed()
}

// Chaptered is implemented by the kinds organized in chapters.
type Chaptered interface {
	Unit

	// ChapterNumbers returns the chapter numbers in ascending order.
	ChapterNumbers() []int

	// HasChapter reports whether the chapter exists.
	HasChapter(chapter int) bool

	// VerseNumbers returns the verse keys of a chapter in source order.
	// It returns nil for a missing chapter or a kind without verses.
	VerseNumbers(chapter int) []string
}

// Meta carries the identifying fields shared by every kind.
type Meta struct {
	// Language is the language code, e.g. "en", "fr", "ar".
	Language string

	// LanguageName is the display name of the language.
	LanguageName string

	// Book is the lowercase 3-letter book code, e.g. "gen", "col".
	Book string

	// Title is the localized book name. It may be empty, in which case
	// callers fall back to the canonical book table.
	Title string

	// Resource is the resource type name, e.g. "ulb", "tn", "tq", "tw", "bc".
	Resource string
}

// LangCode returns the language code.
func (m Meta) LangCode() string { return m.Language }

// LangName returns the language display name.
func (m Meta) LangName() string { return m.LanguageName }

// BookCode returns the book code.
func (m Meta) BookCode() string { return m.Book }

// BookName returns the localized book name, possibly empty.
func (m Meta) BookName() string { return m.Title }

// ResourceType returns the resource type name.
func (m Meta) ResourceType() string { return m.Resource }

// String returns "lang/resource/book".
func (m Meta) String() string {
	return m.Language + "/" + m.Resource + "/" + m.Book
}

// ScriptureBook is a USFM-derived scripture unit.
type ScriptureBook struct {
	Meta
	Chapters *ChapterMap[*ScriptureChapter]
}

// ScriptureChapter holds one rendered chapter.
type ScriptureChapter struct {
	// Content is the chapter heading followed by the body, in source order.
	Content []string

	// Verses maps verse keys to verse HTML.
	Verses *VerseMap

	// Footnotes is the chapter footnote block, empty if none.
	Footnotes string
}

// Heading returns the chapter heading fragment, the first Content entry.
func (c *ScriptureChapter) Heading() string {
	if c == nil || len(c.Content) == 0 {
		return ""
	}
	return c.Content[0]
}

// NotesBook is a translation notes unit.
type NotesBook struct {
	Meta
	Intro    string
	Chapters *ChapterMap[*NotesChapter]
}

// NotesChapter holds the notes of one chapter.
type NotesChapter struct {
	Intro  string
	Verses *VerseMap
}

// QuestionsBook is a translation questions unit.
type QuestionsBook struct {
	Meta
	Chapters *ChapterMap[*QuestionsChapter]
}

// QuestionsChapter holds the questions of one chapter.
type QuestionsChapter struct {
	Verses *VerseMap
}

// WordsBook is a translation words glossary.
type WordsBook struct {
	Meta
	Entries []WordEntry
}

// WordEntry is one glossary article.
type WordEntry struct {
	// Word is the localized word matched against verse text.
	Word string

	// Content is the article HTML, opening with its title heading.
	Content string
}

// CommentaryBook is a book commentary unit.
type CommentaryBook struct {
	Meta
	Intro    string
	Chapters *ChapterMap[*CommentaryChapter]
}

// CommentaryChapter holds the commentary of one chapter.
type CommentaryChapter struct {
	Commentary string
}

// Kind implementations.

func (*ScriptureBook) Kind() Kind  { return KindScripture }
func (*NotesBook) Kind() Kind      { return KindNotes }
func (*QuestionsBook) Kind() Kind  { return KindQuestions }
func (*WordsBook) Kind() Kind      { return KindWords }
func (*CommentaryBook) Kind() Kind { return KindCommentary }

func (*ScriptureBook) sealed()  {}
func (*NotesBook) sealed()      {}
func (*QuestionsBook) sealed()  {}
func (*WordsBook) sealed()      {}
func (*CommentaryBook) sealed() {}

// ChapterNumbers returns the chapter numbers in ascending order.
func (b *ScriptureBook) ChapterNumbers() []int { return b.Chapters.Keys() }

// HasChapter reports whether the chapter exists.
func (b *ScriptureBook) HasChapter(chapter int) bool { return b.Chapters.Has(chapter) }

// VerseNumbers returns the verse keys of a chapter in source order.
func (b *ScriptureBook) VerseNumbers(chapter int) []string {
	ch, ok := b.Chapters.Get(chapter)
	if !ok || ch == nil {
		return nil
	}
	return ch.Verses.Keys()
}

// Verse returns the HTML of one verse.
func (b *ScriptureBook) Verse(chapter int, verse string) (string, bool) {
	ch, ok := b.Chapters.Get(chapter)
	if !ok || ch == nil {
		return "", false
	}
	return ch.Verses.Get(verse)
}

// ChapterNumbers returns the chapter numbers in ascending order.
func (b *NotesBook) ChapterNumbers() []int { return b.Chapters.Keys() }

// HasChapter reports whether the chapter exists.
func (b *NotesBook) HasChapter(chapter int) bool { return b.Chapters.Has(chapter) }

// VerseNumbers returns the verse keys of a chapter in source order.
func (b *NotesBook) VerseNumbers(chapter int) []string {
	ch, ok := b.Chapters.Get(chapter)
	if !ok || ch == nil {
		return nil
	}
	return ch.Verses.Keys()
}

// Verse returns the notes of one verse.
func (b *NotesBook) Verse(chapter int, verse string) (string, bool) {
	ch, ok := b.Chapters.Get(chapter)
	if !ok || ch == nil {
		return "", false
	}
	return ch.Verses.Get(verse)
}

// ChapterNumbers returns the chapter numbers in ascending order.
func (b *QuestionsBook) ChapterNumbers() []int { return b.Chapters.Keys() }

// HasChapter reports whether the chapter exists.
func (b *QuestionsBook) HasChapter(chapter int) bool { return b.Chapters.Has(chapter) }

// VerseNumbers returns the verse keys of a chapter in source order.
func (b *QuestionsBook) VerseNumbers(chapter int) []string {
	ch, ok := b.Chapters.Get(chapter)
	if !ok || ch == nil {
		return nil
	}
	return ch.Verses.Keys()
}

// Verse returns the questions of one verse.
func (b *QuestionsBook) Verse(chapter int, verse string) (string, bool) {
	ch, ok := b.Chapters.Get(chapter)
	if !ok || ch == nil {
		return "", false
	}
	return ch.Verses.Get(verse)
}

// ChapterNumbers returns the chapter numbers in ascending order.
func (b *CommentaryBook) ChapterNumbers() []int { return b.Chapters.Keys() }

// HasChapter reports whether the chapter exists.
func (b *CommentaryBook) HasChapter(chapter int) bool { return b.Chapters.Has(chapter) }

// VerseNumbers returns nil; commentary is chapter-level only.
func (b *CommentaryBook) VerseNumbers(int) []string { return nil }

var (
	_ Chaptered = (*ScriptureBook)(nil)
	_ Chaptered = (*NotesBook)(nil)
	_ Chaptered = (*QuestionsBook)(nil)
	_ Chaptered = (*CommentaryBook)(nil)
	_ Unit      = (*WordsBook)(nil)
)

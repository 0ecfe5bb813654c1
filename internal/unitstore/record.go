package unitstore

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperDocgen/core/bible"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

// Record is the serialized form of a content unit, used both for fixture
// files and for the rows of the unit store. Which fields apply depends on
// the kind implied by Resource.
type Record struct {
	Lang     string `json:"lang" yaml:"lang"`
	LangName string `json:"lang_name,omitempty" yaml:"lang_name,omitempty"`
	Book     string `json:"book" yaml:"book"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Resource string `json:"resource" yaml:"resource"`

	// Markdown marks every text field except scripture headings as
	// markdown, converted to HTML on import.
	Markdown bool `json:"markdown,omitempty" yaml:"markdown,omitempty"`

	// Intro is the book introduction of notes and commentary.
	Intro string `json:"intro,omitempty" yaml:"intro,omitempty"`

	Chapters []ChapterRecord `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Entries  []EntryRecord   `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// ChapterRecord is one chapter of a chaptered unit.
type ChapterRecord struct {
	Number int `json:"number" yaml:"number"`

	// Heading and Body apply to scripture. An empty heading is synthesized
	// from the book title; an empty body is the verses in order.
	Heading   string   `json:"heading,omitempty" yaml:"heading,omitempty"`
	Body      []string `json:"body,omitempty" yaml:"body,omitempty"`
	Footnotes string   `json:"footnotes,omitempty" yaml:"footnotes,omitempty"`

	// Intro applies to notes, Commentary to commentary.
	Intro      string `json:"intro,omitempty" yaml:"intro,omitempty"`
	Commentary string `json:"commentary,omitempty" yaml:"commentary,omitempty"`

	Verses []VerseRecord `json:"verses,omitempty" yaml:"verses,omitempty"`
}

// VerseRecord is one verse, note or question. Order is significant.
type VerseRecord struct {
	Verse string `json:"verse" yaml:"verse"`
	Text  string `json:"text" yaml:"text"`
}

// EntryRecord is one glossary article.
type EntryRecord struct {
	Word    string `json:"word" yaml:"word"`
	Content string `json:"content" yaml:"content"`
}

// Request returns the resource request selecting this record.
func (r *Record) Request() bible.ResourceRequest {
	return bible.ResourceRequest{LangCode: r.Lang, ResourceType: r.Resource, BookCode: r.Book}
}

// Kind returns the kind implied by the resource type.
func (r *Record) Kind() content.Kind {
	return bible.KindForResource(r.Resource)
}

// normalize lowercases the resource type and book code.
func (r *Record) normalize() {
	r.Lang = strings.TrimSpace(r.Lang)
	r.Resource = strings.ToLower(strings.TrimSpace(r.Resource))
	r.Book = strings.ToLower(strings.TrimSpace(r.Book))
}

// Validate checks identity fields, chapter numbers and verse keys, and that
// only the fields of the record's kind are set.
func (r *Record) Validate() error {
	switch {
	case r.Lang == "":
		return errors.NewValidation("lang", "must not be empty")
	case r.Resource == "":
		return errors.NewValidation("resource", "must not be empty")
	case r.Book == "":
		return errors.NewValidation("book", "must not be empty")
	}
	if _, ok := bible.Lookup(r.Book); !ok {
		return errors.NewValidation("book", fmt.Sprintf("unknown book code %q", r.Book))
	}

	kind := r.Kind()
	if kind == content.KindWords {
		if len(r.Chapters) > 0 {
			return errors.NewValidation("chapters", "a glossary has no chapters")
		}
		for i, e := range r.Entries {
			if strings.TrimSpace(e.Word) == "" {
				return errors.NewValidation(fmt.Sprintf("entries[%d].word", i), "must not be empty")
			}
		}
		return nil
	}
	if len(r.Entries) > 0 {
		return errors.NewValidation("entries", fmt.Sprintf("%s units have no glossary entries", kind))
	}

	seen := make(map[int]bool, len(r.Chapters))
	for i, ch := range r.Chapters {
		field := fmt.Sprintf("chapters[%d]", i)
		if ch.Number <= 0 {
			return errors.NewValidation(field+".number", "must be positive")
		}
		if seen[ch.Number] {
			return errors.NewValidation(field+".number", fmt.Sprintf("chapter %d repeated", ch.Number))
		}
		seen[ch.Number] = true
		if kind == content.KindCommentary && len(ch.Verses) > 0 {
			return errors.NewValidation(field+".verses", "commentary has no verses")
		}
		for j, v := range ch.Verses {
			if strings.TrimSpace(v.Verse) == "" {
				return errors.NewValidation(fmt.Sprintf("%s.verses[%d].verse", field, j), "must not be empty")
			}
		}
	}
	return nil
}

func (r *Record) meta() content.Meta {
	return content.Meta{
		Language:     r.Lang,
		LanguageName: r.LangName,
		Book:         r.Book,
		Title:        r.Title,
		Resource:     r.Resource,
	}
}

func verseMap(verses []VerseRecord) *content.VerseMap {
	m := content.NewVerseMap()
	for _, v := range verses {
		m.Set(v.Verse, v.Text)
	}
	return m
}

func verseRecords(m *content.VerseMap) []VerseRecord {
	var out []VerseRecord
	for k, v := range m.All() {
		out = append(out, VerseRecord{Verse: k, Text: v})
	}
	return out
}

// chapterHeading synthesizes the heading of a scripture chapter.
func (r *Record) chapterHeading(n int) string {
	title := r.Title
	if title == "" {
		title = bible.Name(r.Book)
	}
	return fmt.Sprintf(`<h2 class="c-num">%s %d</h2>`, title, n)
}

// Unit converts the record to its content unit.
func (r *Record) Unit() (content.Unit, error) {
	r.normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	m := r.meta()
	switch r.Kind() {
	case content.KindScripture:
		b := &content.ScriptureBook{Meta: m, Chapters: content.NewChapterMap[*content.ScriptureChapter]()}
		for _, ch := range r.Chapters {
			heading := ch.Heading
			if heading == "" {
				heading = r.chapterHeading(ch.Number)
			}
			body := ch.Body
			if len(body) == 0 {
				for _, v := range ch.Verses {
					body = append(body, v.Text)
				}
			}
			b.Chapters.Set(ch.Number, &content.ScriptureChapter{
				Content:   append([]string{heading}, body...),
				Verses:    verseMap(ch.Verses),
				Footnotes: ch.Footnotes,
			})
		}
		return b, nil

	case content.KindNotes:
		b := &content.NotesBook{Meta: m, Intro: r.Intro, Chapters: content.NewChapterMap[*content.NotesChapter]()}
		for _, ch := range r.Chapters {
			b.Chapters.Set(ch.Number, &content.NotesChapter{Intro: ch.Intro, Verses: verseMap(ch.Verses)})
		}
		return b, nil

	case content.KindQuestions:
		b := &content.QuestionsBook{Meta: m, Chapters: content.NewChapterMap[*content.QuestionsChapter]()}
		for _, ch := range r.Chapters {
			b.Chapters.Set(ch.Number, &content.QuestionsChapter{Verses: verseMap(ch.Verses)})
		}
		return b, nil

	case content.KindWords:
		b := &content.WordsBook{Meta: m}
		for _, e := range r.Entries {
			b.Entries = append(b.Entries, content.WordEntry{Word: e.Word, Content: e.Content})
		}
		return b, nil

	case content.KindCommentary:
		b := &content.CommentaryBook{Meta: m, Intro: r.Intro, Chapters: content.NewChapterMap[*content.CommentaryChapter]()}
		for _, ch := range r.Chapters {
			b.Chapters.Set(ch.Number, &content.CommentaryChapter{Commentary: ch.Commentary})
		}
		return b, nil
	}
	return nil, errors.NewValidation("resource", fmt.Sprintf("unsupported resource %q", r.Resource))
}

// FromUnit converts a content unit to its record.
func FromUnit(u content.Unit) *Record {
	r := &Record{
		Lang:     u.LangCode(),
		LangName: u.LangName(),
		Book:     u.BookCode(),
		Title:    u.BookName(),
		Resource: u.ResourceType(),
	}
	switch b := u.(type) {
	case *content.ScriptureBook:
		for n, ch := range b.Chapters.All() {
			rec := ChapterRecord{Number: n}
			if ch != nil {
				rec.Heading = ch.Heading()
				if len(ch.Content) > 1 {
					rec.Body = append([]string(nil), ch.Content[1:]...)
				}
				rec.Footnotes = ch.Footnotes
				rec.Verses = verseRecords(ch.Verses)
			}
			r.Chapters = append(r.Chapters, rec)
		}
	case *content.NotesBook:
		r.Intro = b.Intro
		for n, ch := range b.Chapters.All() {
			rec := ChapterRecord{Number: n}
			if ch != nil {
				rec.Intro = ch.Intro
				rec.Verses = verseRecords(ch.Verses)
			}
			r.Chapters = append(r.Chapters, rec)
		}
	case *content.QuestionsBook:
		for n, ch := range b.Chapters.All() {
			rec := ChapterRecord{Number: n}
			if ch != nil {
				rec.Verses = verseRecords(ch.Verses)
			}
			r.Chapters = append(r.Chapters, rec)
		}
	case *content.WordsBook:
		for _, e := range b.Entries {
			r.Entries = append(r.Entries, EntryRecord{Word: e.Word, Content: e.Content})
		}
	case *content.CommentaryBook:
		r.Intro = b.Intro
		for n, ch := range b.Chapters.All() {
			rec := ChapterRecord{Number: n}
			if ch != nil {
				rec.Commentary = ch.Commentary
			}
			r.Chapters = append(r.Chapters, rec)
		}
	}
	return r
}

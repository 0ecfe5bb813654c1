package assembly

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

// chapterSpec describes one chapter of a fixture: alternating verse keys and
// HTML, in source order.
type chapterSpec struct {
	number int
	verses []string
}

func ch(number int, verses ...string) chapterSpec {
	return chapterSpec{number: number, verses: verses}
}

func meta(lang, resource, book string) content.Meta {
	return content.Meta{Language: lang, LanguageName: strings.ToUpper(lang), Book: book, Resource: resource}
}

func newScripture(lang, resource, book string, chapters ...chapterSpec) *content.ScriptureBook {
	s := &content.ScriptureBook{Meta: meta(lang, resource, book), Chapters: content.NewChapterMap[*content.ScriptureChapter]()}
	for _, c := range chapters {
		verses := content.VersesOf(c.verses...)
		body := ""
		for _, v := range verses.All() {
			body += v
		}
		s.Chapters.Set(c.number, &content.ScriptureChapter{
			Content: []string{fmt.Sprintf(`<h2 class="c-num">%s %s %d</h2>`, lang, resource, c.number), body},
			Verses:  verses,
		})
	}
	return s
}

func newNotes(lang, book, intro string, chapters ...chapterSpec) *content.NotesBook {
	n := &content.NotesBook{Meta: meta(lang, "tn", book), Intro: intro, Chapters: content.NewChapterMap[*content.NotesChapter]()}
	for _, c := range chapters {
		n.Chapters.Set(c.number, &content.NotesChapter{Verses: content.VersesOf(c.verses...)})
	}
	return n
}

func newQuestions(lang, book string, chapters ...chapterSpec) *content.QuestionsBook {
	q := &content.QuestionsBook{Meta: meta(lang, "tq", book), Chapters: content.NewChapterMap[*content.QuestionsChapter]()}
	for _, c := range chapters {
		q.Chapters.Set(c.number, &content.QuestionsChapter{Verses: content.VersesOf(c.verses...)})
	}
	return q
}

func newCommentary(lang, book, intro string, chapters map[int]string) *content.CommentaryBook {
	c := &content.CommentaryBook{Meta: meta(lang, "bc", book), Intro: intro, Chapters: content.NewChapterMap[*content.CommentaryChapter]()}
	for n, html := range chapters {
		c.Chapters.Set(n, &content.CommentaryChapter{Commentary: html})
	}
	return c
}

func newWords(lang, book string, words ...string) *content.WordsBook {
	w := &content.WordsBook{Meta: meta(lang, "tw", book)}
	for _, word := range words {
		w.Entries = append(w.Entries, content.WordEntry{
			Word:    word,
			Content: fmt.Sprintf("<h3>%s</h3><p>about %s</p>", word, word),
		})
	}
	return w
}

// markerTemplates uses distinct markers so nesting can be checked.
func markerTemplates() Templates {
	t := DefaultTemplates()
	t.RowBegin, t.RowEnd = "<row>", "</row>"
	t.ColumnBegin, t.ColumnEnd = "<col>", "</col>"
	t.DirectionBegin, t.DirectionEnd = `<dir d="%[1]s" l="%[2]s">`, "</dir>"
	return t
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func assemble(t *testing.T, e *Engine, req Request, units ...content.Unit) []string {
	t.Helper()
	seq, err := e.Assemble(units, req)
	if err != nil {
		t.Fatalf("Assemble(%+v) error: %v", req, err)
	}
	return slices.Collect(seq)
}

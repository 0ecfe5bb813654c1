package content

import (
	"fmt"
	"io"
	"strconv"
)

// Encode writes a canonical, length-prefixed serialization of a unit. Two
// units encode identically exactly when every field, chapter, verse and
// entry is equal, in the same verse order. It is used for fingerprinting.
func Encode(w io.Writer, u Unit) error {
	e := &encoder{w: w}
	e.str(u.Kind().String())
	e.str(u.LangCode())
	e.str(u.LangName())
	e.str(u.BookCode())
	e.str(u.BookName())
	e.str(u.ResourceType())

	switch b := u.(type) {
	case *ScriptureBook:
		for num, ch := range b.Chapters.All() {
			if ch == nil {
				continue
			}
			e.int(num)
			e.int(len(ch.Content))
			for _, c := range ch.Content {
				e.str(c)
			}
			e.verses(ch.Verses)
			e.str(ch.Footnotes)
		}
	case *NotesBook:
		e.str(b.Intro)
		for num, ch := range b.Chapters.All() {
			if ch == nil {
				continue
			}
			e.int(num)
			e.str(ch.Intro)
			e.verses(ch.Verses)
		}
	case *QuestionsBook:
		for num, ch := range b.Chapters.All() {
			if ch == nil {
				continue
			}
			e.int(num)
			e.verses(ch.Verses)
		}
	case *WordsBook:
		e.int(len(b.Entries))
		for _, entry := range b.Entries {
			e.str(entry.Word)
			e.str(entry.Content)
		}
	case *CommentaryBook:
		e.str(b.Intro)
		for num, ch := range b.Chapters.All() {
			if ch == nil {
				continue
			}
			e.int(num)
			e.str(ch.Commentary)
		}
	default:
		return fmt.Errorf("content: cannot encode %T", u)
	}
	return e.err
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, strconv.Itoa(len(s))+":"+s)
}

func (e *encoder) int(n int) {
	e.str(strconv.Itoa(n))
}

func (e *encoder) verses(m *VerseMap) {
	e.int(m.Len())
	for k, v := range m.All() {
		e.str(k)
		e.str(v)
	}
}

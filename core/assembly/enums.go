package assembly

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

// Strategy selects how units are grouped.
type Strategy int

const (
	// LanguageBookOrder groups by language, then by book.
	LanguageBookOrder Strategy = iota
	// BookLanguageOrder groups by book, then interleaves languages.
	BookLanguageOrder
)

var strategyNames = []string{"lang-book", "book-lang"}

func (s Strategy) String() string {
	if s >= 0 && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy parses a strategy name. The underscore spellings
// LANGUAGE_BOOK_ORDER and BOOK_LANGUAGE_ORDER are accepted too.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lang-book", "language_book_order", "language-book":
		return LanguageBookOrder, nil
	case "book-lang", "book_language_order", "book-language":
		return BookLanguageOrder, nil
	}
	return 0, errors.NewValidation("strategy", fmt.Sprintf("unknown strategy %q", s))
}

// Layout selects the column arrangement of the document.
type Layout int

// Layouts. Compact variants omit translation word links and the "Uses"
// backlinks of the glossary.
const (
	OneColumn Layout = iota
	OneColumnCompact
	TwoColumnScriptureHelps
	TwoColumnScriptureHelpsCompact
	TwoColumnScriptureScripture
	TwoColumnScriptureScriptureCompact

	numLayouts
)

var layoutNames = [numLayouts]string{
	"one-column",
	"one-column-compact",
	"two-column-scripture-helps",
	"two-column-scripture-helps-compact",
	"two-column-scripture-scripture",
	"two-column-scripture-scripture-compact",
}

func (l Layout) String() string {
	if l.valid() {
		return layoutNames[l]
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

func (l Layout) valid() bool { return l >= 0 && l < numLayouts }

// Compact reports whether the layout is a compact variant.
func (l Layout) Compact() bool {
	switch l {
	case OneColumnCompact, TwoColumnScriptureHelpsCompact, TwoColumnScriptureScriptureCompact:
		return true
	}
	return false
}

// AllLayouts returns every layout in declaration order.
func AllLayouts() []Layout {
	out := make([]Layout, 0, numLayouts)
	for l := Layout(0); l < numLayouts; l++ {
		out = append(out, l)
	}
	return out
}

// ParseLayout parses a layout name as produced by String. Underscores are
// treated as hyphens, so TWO_COLUMN_SCRIPTURE_LEFT_HELPS_RIGHT style names
// work once "left"/"right" words are dropped.
func ParseLayout(s string) (Layout, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, "-left", "")
	name = strings.ReplaceAll(name, "-right", "")
	for l, n := range layoutNames {
		if n == name {
			return Layout(l), nil
		}
	}
	return 0, errors.NewValidation("layout", fmt.Sprintf("unknown layout %q", s))
}

// ChunkSize selects the interleaving granularity.
type ChunkSize int

const (
	// ChunkVerse interleaves resources verse by verse.
	ChunkVerse ChunkSize = iota
	// ChunkChapter interleaves whole chapters.
	ChunkChapter
)

func (c ChunkSize) String() string {
	switch c {
	case ChunkVerse:
		return "verse"
	case ChunkChapter:
		return "chapter"
	}
	return fmt.Sprintf("chunk(%d)", int(c))
}

// ParseChunkSize parses "verse" or "chapter".
func ParseChunkSize(s string) (ChunkSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verse":
		return ChunkVerse, nil
	case "chapter":
		return ChunkChapter, nil
	}
	return 0, errors.NewValidation("chunk_size", fmt.Sprintf("unknown chunk size %q", s))
}

// Request is the assembly request for one document.
type Request struct {
	Strategy Strategy
	Layout   Layout
	Chunk    ChunkSize
}

// Validate checks that every enum is in range.
func (r Request) Validate() error {
	if r.Strategy != LanguageBookOrder && r.Strategy != BookLanguageOrder {
		return errors.NewValidation("strategy", r.Strategy.String())
	}
	if !r.Layout.valid() {
		return errors.NewValidation("layout", r.Layout.String())
	}
	if r.Chunk != ChunkVerse && r.Chunk != ChunkChapter {
		return errors.NewValidation("chunk_size", r.Chunk.String())
	}
	return nil
}

package assembly

import (
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

// Interleaver is one named entry of a dispatch table. Layout is the layout
// the interleaver actually produces, which differs from the requested one
// where the table falls back.
type Interleaver[G any] struct {
	Name   string
	Layout Layout
	Chunk  ChunkSize

	run func(p *pass, g G, layout Layout, em *emitter)
}

// bind fixes the group of an interleaver.
func (in Interleaver[G]) bind(g G) step {
	return step{
		name: in.Name,
		run:  func(p *pass, em *emitter) { in.run(p, g, in.Layout, em) },
	}
}

// step is one dispatched group, ready to run.
type step struct {
	name string
	run  func(p *pass, em *emitter)
}

// rowKind names a layout row shared by several presence keys.
type rowKind int

const (
	rowScripture rowKind = iota
	rowScriptureAlone
	rowScripturePair
	rowScripturePairAlone
	rowNotes
	rowQuestions
	rowCommentary
	rowWords
)

type langBookRow [numLayouts]Interleaver[*LangBookGroup]

// langBookTable maps every valid lang-then-book presence key to its row.
// Keys with secondary scripture but no primary, and the empty key, are
// undefined.
var langBookTable = map[langBookKey]rowKind{
	{Scripture: true, Notes: true, Questions: true, Words: true, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: true, Words: true, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: true, Words: true, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: true, Words: true, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: true, Questions: true, Words: false, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: true, Words: false, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: true, Words: false, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: true, Words: false, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: true, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: false, Words: true, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: false, Words: true, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: true, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: false, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: false, Words: false, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: true, Questions: false, Words: false, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: false, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: true, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: true, Words: true, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: true, Words: true, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: true, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: false, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: true, Words: false, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: true, Words: false, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: false, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: true, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: false, Words: true, Secondary: true, Commentary: false}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: false, Words: true, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: true, Secondary: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: false, Secondary: true, Commentary: true}: rowScripturePair,
	{Scripture: true, Notes: false, Questions: false, Words: false, Secondary: true, Commentary: false}: rowScripturePairAlone,
	{Scripture: true, Notes: false, Questions: false, Words: false, Secondary: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: false, Secondary: false, Commentary: false}: rowScriptureAlone,
	{Scripture: false, Notes: true, Questions: true, Words: true, Secondary: false, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: true, Words: true, Secondary: false, Commentary: false}: rowNotes,
	{Scripture: false, Notes: true, Questions: true, Words: false, Secondary: false, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: true, Words: false, Secondary: false, Commentary: false}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: true, Secondary: false, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: true, Secondary: false, Commentary: false}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: false, Secondary: false, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: false, Secondary: false, Commentary: false}: rowNotes,
	{Scripture: false, Notes: false, Questions: true, Words: true, Secondary: false, Commentary: true}: rowQuestions,
	{Scripture: false, Notes: false, Questions: true, Words: true, Secondary: false, Commentary: false}: rowQuestions,
	{Scripture: false, Notes: false, Questions: true, Words: false, Secondary: false, Commentary: true}: rowQuestions,
	{Scripture: false, Notes: false, Questions: true, Words: false, Secondary: false, Commentary: false}: rowQuestions,
	{Scripture: false, Notes: false, Questions: false, Words: true, Secondary: false, Commentary: true}: rowCommentary,
	{Scripture: false, Notes: false, Questions: false, Words: true, Secondary: false, Commentary: false}: rowWords,
	{Scripture: false, Notes: false, Questions: false, Words: false, Secondary: false, Commentary: true}: rowCommentary,
}

var langBookRows = map[ChunkSize]map[rowKind]langBookRow{
	ChunkVerse:   langBookRowsFor(ChunkVerse),
	ChunkChapter: langBookRowsFor(ChunkChapter),
}

func langBookInterleaver(name string, layout Layout, chunk ChunkSize) Interleaver[*LangBookGroup] {
	run := langBookByVerse
	if chunk == ChunkChapter {
		run = langBookByChapter
	}
	return Interleaver[*LangBookGroup]{
		Name:   "lang-book/" + name + "/" + chunk.String(),
		Layout: layout,
		Chunk:  chunk,
		run:    run,
	}
}

// langBookRowsFor builds the rows of one chunk size. Requested layouts a
// presence key cannot honor fall back: scripture-scripture without a second
// scripture becomes scripture-helps, scripture-helps without helps becomes
// one column, and groups without scripture always use one column.
func langBookRowsFor(chunk ChunkSize) map[rowKind]langBookRow {
	scripture := func(l Layout) Interleaver[*LangBookGroup] {
		return langBookInterleaver("scripture-"+l.String(), l, chunk)
	}
	notes := langBookInterleaver("notes-one-column", OneColumn, chunk)
	notesCompact := langBookInterleaver("notes-one-column-compact", OneColumnCompact, chunk)
	questions := langBookInterleaver("questions-one-column", OneColumn, chunk)
	commentary := langBookInterleaver("commentary-one-column", OneColumn, chunk)
	words := langBookInterleaver("words-one-column", OneColumn, chunk)

	return map[rowKind]langBookRow{
		rowScripture: {
			OneColumn:                          scripture(OneColumn),
			OneColumnCompact:                   scripture(OneColumnCompact),
			TwoColumnScriptureHelps:            scripture(TwoColumnScriptureHelps),
			TwoColumnScriptureHelpsCompact:     scripture(TwoColumnScriptureHelpsCompact),
			TwoColumnScriptureScripture:        scripture(TwoColumnScriptureHelps),
			TwoColumnScriptureScriptureCompact: scripture(TwoColumnScriptureHelpsCompact),
		},
		rowScriptureAlone: {
			OneColumn:                          scripture(OneColumn),
			OneColumnCompact:                   scripture(OneColumnCompact),
			TwoColumnScriptureHelps:            scripture(OneColumn),
			TwoColumnScriptureHelpsCompact:     scripture(OneColumnCompact),
			TwoColumnScriptureScripture:        scripture(OneColumn),
			TwoColumnScriptureScriptureCompact: scripture(OneColumnCompact),
		},
		rowScripturePair: {
			OneColumn:                          scripture(OneColumn),
			OneColumnCompact:                   scripture(OneColumnCompact),
			TwoColumnScriptureHelps:            scripture(TwoColumnScriptureHelps),
			TwoColumnScriptureHelpsCompact:     scripture(TwoColumnScriptureHelpsCompact),
			TwoColumnScriptureScripture:        scripture(TwoColumnScriptureScripture),
			TwoColumnScriptureScriptureCompact: scripture(TwoColumnScriptureScriptureCompact),
		},
		rowScripturePairAlone: {
			OneColumn:                          scripture(OneColumn),
			OneColumnCompact:                   scripture(OneColumnCompact),
			TwoColumnScriptureHelps:            scripture(OneColumn),
			TwoColumnScriptureHelpsCompact:     scripture(OneColumnCompact),
			TwoColumnScriptureScripture:        scripture(TwoColumnScriptureScripture),
			TwoColumnScriptureScriptureCompact: scripture(TwoColumnScriptureScriptureCompact),
		},
		rowNotes: {
			OneColumn:                          notes,
			OneColumnCompact:                   notesCompact,
			TwoColumnScriptureHelps:            notes,
			TwoColumnScriptureHelpsCompact:     notesCompact,
			TwoColumnScriptureScripture:        notes,
			TwoColumnScriptureScriptureCompact: notesCompact,
		},
		rowQuestions:  {questions, questions, questions, questions, questions, questions},
		rowCommentary: {commentary, commentary, commentary, commentary, commentary, commentary},
		rowWords:      {words, words, words, words, words, words},
	}
}

// DispatchLangBook returns the interleaver for a lang-then-book group.
func DispatchLangBook(g *LangBookGroup, layout Layout, chunk ChunkSize) (Interleaver[*LangBookGroup], error) {
	return lookupLangBook(g.Key(), layout, chunk)
}

func lookupLangBook(key langBookKey, layout Layout, chunk ChunkSize) (Interleaver[*LangBookGroup], error) {
	row, ok := langBookTable[key]
	rows, chunkOK := langBookRows[chunk]
	if !ok || !chunkOK || !layout.valid() {
		return Interleaver[*LangBookGroup]{}, &errors.DispatchKeyError{
			Strategy: LanguageBookOrder.String(),
			Key:      key.String(),
			Layout:   layout.String(),
		}
	}
	return rows[row][layout], nil
}

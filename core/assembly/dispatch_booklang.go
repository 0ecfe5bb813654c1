package assembly

import (
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

type bookLangRow [numLayouts]Interleaver[*BookLangGroup]

// bookLangTable maps every non-empty book-then-lang presence key to its row.
var bookLangTable = map[bookLangKey]rowKind{
	{Scripture: true, Notes: true, Questions: true, Words: true, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: true, Words: true, Commentary: false}: rowScripture,
	{Scripture: true, Notes: true, Questions: true, Words: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: true, Words: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: true, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: true, Commentary: false}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: true, Questions: false, Words: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: true, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: true, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: true, Words: false, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: true, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: true, Commentary: false}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: false, Commentary: true}: rowScripture,
	{Scripture: true, Notes: false, Questions: false, Words: false, Commentary: false}: rowScriptureAlone,
	{Scripture: false, Notes: true, Questions: true, Words: true, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: true, Words: true, Commentary: false}: rowNotes,
	{Scripture: false, Notes: true, Questions: true, Words: false, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: true, Words: false, Commentary: false}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: true, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: true, Commentary: false}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: false, Commentary: true}: rowNotes,
	{Scripture: false, Notes: true, Questions: false, Words: false, Commentary: false}: rowNotes,
	{Scripture: false, Notes: false, Questions: true, Words: true, Commentary: true}: rowQuestions,
	{Scripture: false, Notes: false, Questions: true, Words: true, Commentary: false}: rowQuestions,
	{Scripture: false, Notes: false, Questions: true, Words: false, Commentary: true}: rowQuestions,
	{Scripture: false, Notes: false, Questions: true, Words: false, Commentary: false}: rowQuestions,
	{Scripture: false, Notes: false, Questions: false, Words: true, Commentary: true}: rowCommentary,
	{Scripture: false, Notes: false, Questions: false, Words: true, Commentary: false}: rowWords,
	{Scripture: false, Notes: false, Questions: false, Words: false, Commentary: true}: rowCommentary,
}

var bookLangRows = map[ChunkSize]map[rowKind]bookLangRow{
	ChunkVerse:   bookLangRowsFor(ChunkVerse),
	ChunkChapter: bookLangRowsFor(ChunkChapter),
}

func bookLangInterleaver(name string, layout Layout, chunk ChunkSize) Interleaver[*BookLangGroup] {
	run := bookLangByVerse
	if chunk == ChunkChapter {
		run = bookLangByChapter
	}
	return Interleaver[*BookLangGroup]{
		Name:   "book-lang/" + name + "/" + chunk.String(),
		Layout: layout,
		Chunk:  chunk,
		run:    run,
	}
}

// bookLangRowsFor builds the rows of one chunk size. Scripture without
// helps has no helps column and falls back to one column; groups without
// scripture always use one column. Scripture-scripture is kept for any
// number of languages: PairScripture leaves other than two languages
// unpaired and consecutive units share a row.
func bookLangRowsFor(chunk ChunkSize) map[rowKind]bookLangRow {
	scripture := func(l Layout) Interleaver[*BookLangGroup] {
		return bookLangInterleaver("scripture-"+l.String(), l, chunk)
	}
	notes := bookLangInterleaver("notes-one-column", OneColumn, chunk)
	notesCompact := bookLangInterleaver("notes-one-column-compact", OneColumnCompact, chunk)
	questions := bookLangInterleaver("questions-one-column", OneColumn, chunk)
	commentary := bookLangInterleaver("commentary-one-column", OneColumn, chunk)
	words := bookLangInterleaver("words-one-column", OneColumn, chunk)

	return map[rowKind]bookLangRow{
		rowScripture: {
			OneColumn:                          scripture(OneColumn),
			OneColumnCompact:                   scripture(OneColumnCompact),
			TwoColumnScriptureHelps:            scripture(TwoColumnScriptureHelps),
			TwoColumnScriptureHelpsCompact:     scripture(TwoColumnScriptureHelpsCompact),
			TwoColumnScriptureScripture:        scripture(TwoColumnScriptureScripture),
			TwoColumnScriptureScriptureCompact: scripture(TwoColumnScriptureScriptureCompact),
		},
		rowScriptureAlone: {
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

// DispatchBookLang returns the interleaver for a book-then-lang group.
func DispatchBookLang(g *BookLangGroup, layout Layout, chunk ChunkSize) (Interleaver[*BookLangGroup], error) {
	return lookupBookLang(g.Key(), layout, chunk)
}

func lookupBookLang(key bookLangKey, layout Layout, chunk ChunkSize) (Interleaver[*BookLangGroup], error) {
	row, ok := bookLangTable[key]
	rows, chunkOK := bookLangRows[chunk]
	if !ok || !chunkOK || !layout.valid() {
		return Interleaver[*BookLangGroup]{}, &errors.DispatchKeyError{
			Strategy: BookLanguageOrder.String(),
			Key:      key.String(),
			Layout:   layout.String(),
		}
	}
	return rows[row][layout], nil
}

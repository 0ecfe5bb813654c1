// Package content defines the parsed book content units consumed by the
// assembly engine.
//
// A unit is one resource of one kind for one language and one book:
//
//   - ScriptureBook: USFM-derived chapters, each with its heading and body
//     fragments, a verse map and optional footnotes
//   - NotesBook: translation notes with a book intro, chapter intros and
//     verse notes
//   - QuestionsBook: translation questions per verse
//   - WordsBook: the translation words glossary for a language
//   - CommentaryBook: a book intro and one commentary fragment per chapter
//
// Units sharing LangCode and BookCode describe the same language and book and
// are correlated by that pair. All HTML is stored as already-rendered
// fragments; this package never parses USFM or Markdown.
//
// Units are built once by a loader and are read-only afterwards. Verse maps
// keep parser insertion order because verse keys are strings ("3-4" ranges
// occur) and must never be resorted.
package content

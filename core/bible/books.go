// Package bible provides the canonical book table and the resource request
// grammar used to select book content units.
package bible

import (
	"strings"
)

// Testament distinguishes the two canonical collections.
type Testament int

// Testaments.
const (
	OldTestament Testament = iota
	NewTestament
)

// Book describes one canonical book.
type Book struct {
	// Code is the lowercase 3-letter book code, e.g. "gen", "1co".
	Code string

	// Name is the English book name, used when a unit carries no
	// localized name.
	Name string

	// Number is the zero-padded USFM book number used in anchors. The New
	// Testament starts at 41.
	Number string

	Testament Testament

	// Chapters is the chapter count in the common versification.
	Chapters int
}

// books lists the 66 canonical books in canonical order.
var books = []Book{
	// Old Testament
	{Code: "gen", Name: "Genesis", Number: "01", Testament: OldTestament, Chapters: 50},
	{Code: "exo", Name: "Exodus", Number: "02", Testament: OldTestament, Chapters: 40},
	{Code: "lev", Name: "Leviticus", Number: "03", Testament: OldTestament, Chapters: 27},
	{Code: "num", Name: "Numbers", Number: "04", Testament: OldTestament, Chapters: 36},
	{Code: "deu", Name: "Deuteronomy", Number: "05", Testament: OldTestament, Chapters: 34},
	{Code: "jos", Name: "Joshua", Number: "06", Testament: OldTestament, Chapters: 24},
	{Code: "jdg", Name: "Judges", Number: "07", Testament: OldTestament, Chapters: 21},
	{Code: "rut", Name: "Ruth", Number: "08", Testament: OldTestament, Chapters: 4},
	{Code: "1sa", Name: "1 Samuel", Number: "09", Testament: OldTestament, Chapters: 31},
	{Code: "2sa", Name: "2 Samuel", Number: "10", Testament: OldTestament, Chapters: 24},
	{Code: "1ki", Name: "1 Kings", Number: "11", Testament: OldTestament, Chapters: 22},
	{Code: "2ki", Name: "2 Kings", Number: "12", Testament: OldTestament, Chapters: 25},
	{Code: "1ch", Name: "1 Chronicles", Number: "13", Testament: OldTestament, Chapters: 29},
	{Code: "2ch", Name: "2 Chronicles", Number: "14", Testament: OldTestament, Chapters: 36},
	{Code: "ezr", Name: "Ezra", Number: "15", Testament: OldTestament, Chapters: 10},
	{Code: "neh", Name: "Nehemiah", Number: "16", Testament: OldTestament, Chapters: 13},
	{Code: "est", Name: "Esther", Number: "17", Testament: OldTestament, Chapters: 10},
	{Code: "job", Name: "Job", Number: "18", Testament: OldTestament, Chapters: 42},
	{Code: "psa", Name: "Psalms", Number: "19", Testament: OldTestament, Chapters: 150},
	{Code: "pro", Name: "Proverbs", Number: "20", Testament: OldTestament, Chapters: 31},
	{Code: "ecc", Name: "Ecclesiastes", Number: "21", Testament: OldTestament, Chapters: 12},
	{Code: "sng", Name: "Song of Solomon", Number: "22", Testament: OldTestament, Chapters: 8},
	{Code: "isa", Name: "Isaiah", Number: "23", Testament: OldTestament, Chapters: 66},
	{Code: "jer", Name: "Jeremiah", Number: "24", Testament: OldTestament, Chapters: 52},
	{Code: "lam", Name: "Lamentations", Number: "25", Testament: OldTestament, Chapters: 5},
	{Code: "ezk", Name: "Ezekiel", Number: "26", Testament: OldTestament, Chapters: 48},
	{Code: "dan", Name: "Daniel", Number: "27", Testament: OldTestament, Chapters: 12},
	{Code: "hos", Name: "Hosea", Number: "28", Testament: OldTestament, Chapters: 14},
	{Code: "jol", Name: "Joel", Number: "29", Testament: OldTestament, Chapters: 3},
	{Code: "amo", Name: "Amos", Number: "30", Testament: OldTestament, Chapters: 9},
	{Code: "oba", Name: "Obadiah", Number: "31", Testament: OldTestament, Chapters: 1},
	{Code: "jon", Name: "Jonah", Number: "32", Testament: OldTestament, Chapters: 4},
	{Code: "mic", Name: "Micah", Number: "33", Testament: OldTestament, Chapters: 7},
	{Code: "nam", Name: "Nahum", Number: "34", Testament: OldTestament, Chapters: 3},
	{Code: "hab", Name: "Habakkuk", Number: "35", Testament: OldTestament, Chapters: 3},
	{Code: "zep", Name: "Zephaniah", Number: "36", Testament: OldTestament, Chapters: 3},
	{Code: "hag", Name: "Haggai", Number: "37", Testament: OldTestament, Chapters: 2},
	{Code: "zec", Name: "Zechariah", Number: "38", Testament: OldTestament, Chapters: 14},
	{Code: "mal", Name: "Malachi", Number: "39", Testament: OldTestament, Chapters: 4},

	// New Testament
	{Code: "mat", Name: "Matthew", Number: "41", Testament: NewTestament, Chapters: 28},
	{Code: "mrk", Name: "Mark", Number: "42", Testament: NewTestament, Chapters: 16},
	{Code: "luk", Name: "Luke", Number: "43", Testament: NewTestament, Chapters: 24},
	{Code: "jhn", Name: "John", Number: "44", Testament: NewTestament, Chapters: 21},
	{Code: "act", Name: "Acts", Number: "45", Testament: NewTestament, Chapters: 28},
	{Code: "rom", Name: "Romans", Number: "46", Testament: NewTestament, Chapters: 16},
	{Code: "1co", Name: "1 Corinthians", Number: "47", Testament: NewTestament, Chapters: 16},
	{Code: "2co", Name: "2 Corinthians", Number: "48", Testament: NewTestament, Chapters: 13},
	{Code: "gal", Name: "Galatians", Number: "49", Testament: NewTestament, Chapters: 6},
	{Code: "eph", Name: "Ephesians", Number: "50", Testament: NewTestament, Chapters: 6},
	{Code: "php", Name: "Philippians", Number: "51", Testament: NewTestament, Chapters: 4},
	{Code: "col", Name: "Colossians", Number: "52", Testament: NewTestament, Chapters: 4},
	{Code: "1th", Name: "1 Thessalonians", Number: "53", Testament: NewTestament, Chapters: 5},
	{Code: "2th", Name: "2 Thessalonians", Number: "54", Testament: NewTestament, Chapters: 3},
	{Code: "1ti", Name: "1 Timothy", Number: "55", Testament: NewTestament, Chapters: 6},
	{Code: "2ti", Name: "2 Timothy", Number: "56", Testament: NewTestament, Chapters: 4},
	{Code: "tit", Name: "Titus", Number: "57", Testament: NewTestament, Chapters: 3},
	{Code: "phm", Name: "Philemon", Number: "58", Testament: NewTestament, Chapters: 1},
	{Code: "heb", Name: "Hebrews", Number: "59", Testament: NewTestament, Chapters: 13},
	{Code: "jas", Name: "James", Number: "60", Testament: NewTestament, Chapters: 5},
	{Code: "1pe", Name: "1 Peter", Number: "61", Testament: NewTestament, Chapters: 5},
	{Code: "2pe", Name: "2 Peter", Number: "62", Testament: NewTestament, Chapters: 3},
	{Code: "1jn", Name: "1 John", Number: "63", Testament: NewTestament, Chapters: 5},
	{Code: "2jn", Name: "2 John", Number: "64", Testament: NewTestament, Chapters: 1},
	{Code: "3jn", Name: "3 John", Number: "65", Testament: NewTestament, Chapters: 1},
	{Code: "jud", Name: "Jude", Number: "66", Testament: NewTestament, Chapters: 1},
	{Code: "rev", Name: "Revelation", Number: "67", Testament: NewTestament, Chapters: 22},
}

var byCode = func() map[string]int {
	m := make(map[string]int, len(books))
	for i, b := range books {
		m[b.Code] = i
	}
	return m
}()

// Books returns the canonical book table in canonical order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// Lookup returns the book for a code. Codes are matched case-insensitively.
func Lookup(code string) (Book, bool) {
	i, ok := byCode[strings.ToLower(code)]
	if !ok {
		return Book{}, false
	}
	return books[i], true
}

// Order returns the canonical position of a book (0-based). Unknown codes
// sort after every canonical book.
func Order(code string) int {
	if i, ok := byCode[strings.ToLower(code)]; ok {
		return i
	}
	return len(books)
}

// Number returns the zero-padded book number, or the code itself when the
// book is unknown.
func Number(code string) string {
	if b, ok := Lookup(code); ok {
		return b.Number
	}
	return code
}

// Name returns the English book name, or the code itself when the book is
// unknown.
func Name(code string) string {
	if b, ok := Lookup(code); ok {
		return b.Name
	}
	return code
}

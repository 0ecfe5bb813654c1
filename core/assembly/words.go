package assembly

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/JuniperDocgen/core/cache"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

// UsesIndex accumulates the translation word uses found during one assembly
// pass. It replaces mutating the words units: units stay read-only and the
// index is owned by the pass that created it.
type UsesIndex struct {
	uses map[*content.WordsBook]map[string][]content.Use
}

// NewUsesIndex returns an empty index.
func NewUsesIndex() *UsesIndex {
	return &UsesIndex{uses: make(map[*content.WordsBook]map[string][]content.Use)}
}

// Record appends a use of u.Word in book.
func (x *UsesIndex) Record(book *content.WordsBook, u content.Use) {
	byWord, ok := x.uses[book]
	if !ok {
		byWord = make(map[string][]content.Use)
		x.uses[book] = byWord
	}
	byWord[u.Word] = append(byWord[u.Word], u)
}

// Uses returns the deduplicated uses of word in book, first occurrence
// first.
func (x *UsesIndex) Uses(book *content.WordsBook, word string) []content.Use {
	return content.Uniq(x.uses[book][word])
}

// Len returns the number of recorded uses, duplicates included.
func (x *UsesIndex) Len() int {
	n := 0
	for _, byWord := range x.uses {
		for _, uses := range byWord {
			n += len(uses)
		}
	}
	return n
}

// wordMatcher finds whole-word occurrences of glossary words.
type wordMatcher struct {
	words    []string
	patterns []*regexp.Regexp
}

// wordEdge is any rune that cannot be part of a word.
const wordEdge = `[^\p{L}\p{M}\p{N}_]`

func compileMatcher(words []string) (*wordMatcher, error) {
	m := &wordMatcher{}
	for _, w := range words {
		if w == "" {
			continue
		}
		re, err := regexp.Compile(`(?:^|` + wordEdge + `)` + regexp.QuoteMeta(w) + `(?:` + wordEdge + `|$)`)
		if err != nil {
			return nil, err
		}
		m.words = append(m.words, w)
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

var markupTag = regexp.MustCompile(`<[^>]*>`)

// Match returns the words occurring in html, in glossary order, each once.
// Matching is case sensitive and ignores markup.
func (m *wordMatcher) Match(html string) []string {
	text := markupTag.ReplaceAllString(html, " ")
	var out []string
	for i, w := range m.words {
		if !strings.Contains(text, w) {
			continue
		}
		if m.patterns[i].MatchString(text) {
			out = append(out, w)
		}
	}
	return content.Uniq(out)
}

// matcherKey fingerprints the word list of a words unit.
func matcherKey(book *content.WordsBook) string {
	h := blake3.New()
	for _, e := range book.Entries {
		_, _ = h.Write([]byte(e.Word))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func loadMatcher(c cache.Cache[string, *wordMatcher], book *content.WordsBook) (*wordMatcher, error) {
	return cache.GetOrLoad(c, matcherKey(book), func() (*wordMatcher, error) {
		words := make([]string, 0, len(book.Entries))
		for _, e := range book.Entries {
			words = append(words, e.Word)
		}
		return compileMatcher(words)
	})
}

// wordLinks matches the glossary of book against one verse, records a use
// for every match and renders the links list. It renders nothing without a
// match.
func (p *pass) wordLinks(book *content.WordsBook, scripture *content.ScriptureBook, chapter int, verse, html string) string {
	matched := p.matchVerse(book, scripture, chapter, verse, html)
	return p.f.wordLinks(book.LangCode(), matched)
}

// matchVerse records and returns the glossary words found in one verse.
func (p *pass) matchVerse(book *content.WordsBook, scripture *content.ScriptureBook, chapter int, verse, html string) []string {
	m := p.matchers[book]
	if m == nil {
		return nil
	}
	matched := m.Match(html)
	name := bookName(scripture.BookCode(), scripture, book)
	for _, w := range matched {
		p.uses.Record(book, content.Use{
			LangCode: scripture.LangCode(),
			BookCode: scripture.BookCode(),
			BookName: name,
			Chapter:  chapter,
			Verse:    verse,
			Word:     w,
		})
	}
	return matched
}

// chapterWordLinks matches every verse of a scripture chapter and renders
// one links list for the whole chapter.
func (p *pass) chapterWordLinks(book *content.WordsBook, scripture *content.ScriptureBook, chapter int) string {
	ch, ok := scripture.Chapters.Get(chapter)
	if !ok || ch == nil {
		return ""
	}
	var all []string
	for verse, html := range ch.Verses.All() {
		all = append(all, p.matchVerse(book, scripture, chapter, verse, html)...)
	}
	return p.f.wordLinks(book.LangCode(), content.Uniq(all))
}

var (
	firstHeading = regexp.MustCompile(`(?i)<h[1-6]([^>]*)>`)
	idAttr       = regexp.MustCompile(`(?i)\sid\s*=`)
)

// InjectAnchor gives html an element with the given id. The id goes on the
// first heading when that heading has no id yet; otherwise an empty anchor
// is prepended. Content that already carries the id is returned unchanged.
func InjectAnchor(html, id string) string {
	if strings.Contains(html, `id="`+id+`"`) {
		return html
	}
	loc := firstHeading.FindStringSubmatchIndex(html)
	if loc != nil && !idAttr.MatchString(html[loc[2]:loc[3]]) {
		// Insert right after "<hN".
		at := loc[0] + 3
		return html[:at] + ` id="` + id + `"` + html[at:]
	}
	return `<a id="` + id + `"></a>` + html
}

// glossary emits the glossary section of a words unit: every entry in its
// original order, anchored, with its "Uses" list when includeUses is set
// and the word was used.
func (p *pass) glossary(book *content.WordsBook, includeUses bool, em *emitter) {
	if len(book.Entries) == 0 {
		return
	}
	em.emit(p.f.glossaryHeading(book))
	for _, e := range book.Entries {
		html := InjectAnchor(e.Content, WordAnchor(book.LangCode(), e.Word))
		if includeUses {
			html += p.f.uses(p.uses.Uses(book, e.Word), p.chunk)
		}
		if !em.emit(html) {
			return
		}
	}
}

package assembly

import "github.com/FocuswithJustin/JuniperDocgen/core/content"

// PairScripture interleaves the scripture units of exactly two languages so
// that even indexes hold the first language and odd indexes the second:
// [a0, b0, a1, b1, ...]. The shorter language is padded with nil, so a nil
// slot still takes its column. Input must be sorted by language code. Any
// other number of languages returns the input unchanged.
func PairScripture(sorted []*content.ScriptureBook) []*content.ScriptureBook {
	var langs []string
	groups := make(map[string][]*content.ScriptureBook)
	for _, s := range sorted {
		if _, ok := groups[s.LangCode()]; !ok {
			langs = append(langs, s.LangCode())
		}
		groups[s.LangCode()] = append(groups[s.LangCode()], s)
	}
	if len(langs) != 2 {
		return sorted
	}

	left, right := groups[langs[0]], groups[langs[1]]
	n := max(len(left), len(right))
	out := make([]*content.ScriptureBook, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out, at(left, i), at(right, i))
	}
	return out
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}

package content

// Use records that a glossary word occurs at a scripture reference.
// Uses are created during assembly, never by loaders.
type Use struct {
	LangCode string
	BookCode string
	BookName string
	Chapter  int
	Verse    string
	Word     string
}

// Uniq removes duplicates, keeping the first occurrence of each value.
func Uniq[T comparable](items []T) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

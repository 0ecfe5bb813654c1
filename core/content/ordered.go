package content

import (
	"iter"
	"slices"
)

// ChapterMap maps chapter numbers to chapters. Keys are returned in
// ascending numeric order regardless of insertion order. A nil *ChapterMap
// behaves as an empty map for reads.
type ChapterMap[T any] struct {
	keys []int
	vals map[int]T
}

// NewChapterMap returns an empty chapter map.
func NewChapterMap[T any]() *ChapterMap[T] {
	return &ChapterMap[T]{vals: make(map[int]T)}
}

// Set stores a chapter, replacing any previous value for the same number.
func (m *ChapterMap[T]) Set(chapter int, v T) {
	if m.vals == nil {
		m.vals = make(map[int]T)
	}
	if _, ok := m.vals[chapter]; !ok {
		m.keys = append(m.keys, chapter)
	}
	m.vals[chapter] = v
}

// Get returns the chapter and whether it exists.
func (m *ChapterMap[T]) Get(chapter int) (T, bool) {
	if m == nil {
		var zero T
		return zero, false
	}
	v, ok := m.vals[chapter]
	return v, ok
}

// Has reports whether the chapter exists.
func (m *ChapterMap[T]) Has(chapter int) bool {
	_, ok := m.Get(chapter)
	return ok
}

// Keys returns a sorted copy of the chapter numbers.
func (m *ChapterMap[T]) Keys() []int {
	if m == nil {
		return nil
	}
	keys := slices.Clone(m.keys)
	slices.Sort(keys)
	return keys
}

// Len returns the number of chapters.
func (m *ChapterMap[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates chapters in ascending order.
func (m *ChapterMap[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// VerseMap maps verse keys to HTML, keeping insertion order. A nil
// *VerseMap behaves as an empty map for reads.
type VerseMap struct {
	keys []string
	vals map[string]string
}

// NewVerseMap returns an empty verse map.
func NewVerseMap() *VerseMap {
	return &VerseMap{vals: make(map[string]string)}
}

// VersesOf builds a verse map from alternating key/value pairs.
// It panics on an odd number of arguments.
func VersesOf(kv ...string) *VerseMap {
	if len(kv)%2 != 0 {
		panic("content: VersesOf needs key/value pairs")
	}
	m := NewVerseMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set stores a verse. A repeated key keeps its original position.
func (m *VerseMap) Set(verse, html string) {
	if m.vals == nil {
		m.vals = make(map[string]string)
	}
	if _, ok := m.vals[verse]; !ok {
		m.keys = append(m.keys, verse)
	}
	m.vals[verse] = html
}

// Get returns the verse HTML and whether the key exists.
func (m *VerseMap) Get(verse string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.vals[verse]
	return v, ok
}

// Keys returns a copy of the verse keys in insertion order.
func (m *VerseMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of verses.
func (m *VerseMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates verses in insertion order.
func (m *VerseMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

package assembly

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/JuniperDocgen/core/cache"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

func TestWordMatcher(t *testing.T) {
	m, err := compileMatcher([]string{"cat", "son of man", "a.b", "", "ésprit"})
	if err != nil {
		t.Fatalf("compileMatcher() error: %v", err)
	}

	tests := []struct {
		text string
		want []string
	}{
		{"The cat sat", []string{"cat"}},
		{"catios", nil},
		{"The Cat sat", nil},
		{"<p>cat</p>", []string{"cat"}},
		{`<span class="cat">dog</span>`, nil},
		{"the son of man came", []string{"son of man"}},
		{"axb", nil},
		{"a.b, cat.", []string{"cat", "a.b"}},
		{"lésprit", nil},
		{"l'ésprit", []string{"ésprit"}},
	}
	for _, tt := range tests {
		if got := m.Match(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestUsesIndexDedup(t *testing.T) {
	w := newWords("en", "col", "grace")
	a := content.Use{LangCode: "en", BookCode: "col", BookName: "Colossians", Chapter: 1, Verse: "2", Word: "grace"}
	b := content.Use{LangCode: "en", BookCode: "col", BookName: "Colossians", Chapter: 1, Verse: "6", Word: "grace"}

	idx := NewUsesIndex()
	idx.Record(w, a)
	idx.Record(w, b)
	idx.Record(w, a)

	if got, want := idx.Uses(w, "grace"), []content.Use{a, b}; !reflect.DeepEqual(got, want) {
		t.Errorf("Uses() = %v, want %v", got, want)
	}
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
	if got := idx.Uses(newWords("fr", "col"), "grace"); got != nil {
		t.Errorf("Uses() of unknown book = %v, want nil", got)
	}
}

func TestInjectAnchor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first heading", "<h3>grace</h3><p>x</p>", `<h3 id="en-grace">grace</h3><p>x</p>`},
		{"heading with attributes", `<h2 class="tw">grace</h2>`, `<h2 id="en-grace" class="tw">grace</h2>`},
		{"heading with id", `<h3 id="other">grace</h3>`, `<a id="en-grace"></a><h3 id="other">grace</h3>`},
		{"no heading", "<p>grace</p>", `<a id="en-grace"></a><p>grace</p>`},
		{"already injected", `<h3 id="en-grace">grace</h3>`, `<h3 id="en-grace">grace</h3>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InjectAnchor(tt.in, "en-grace")
			if got != tt.want {
				t.Errorf("InjectAnchor() = %q, want %q", got, tt.want)
			}
			if again := InjectAnchor(got, "en-grace"); again != got {
				t.Errorf("second InjectAnchor() = %q, want %q", again, got)
			}
		})
	}
}

func TestLoadMatcherCached(t *testing.T) {
	c := cache.NewLRUCache[string, *wordMatcher](cache.DefaultConfig())
	first, err := loadMatcher(c, newWords("en", "col", "grace", "faith"))
	if err != nil {
		t.Fatalf("loadMatcher() error: %v", err)
	}
	second, err := loadMatcher(c, newWords("en", "eph", "grace", "faith"))
	if err != nil {
		t.Fatalf("loadMatcher() error: %v", err)
	}
	if first != second {
		t.Error("units with the same word list should share a matcher")
	}
	third, _ := loadMatcher(c, newWords("en", "col", "faith", "grace"))
	if third == first {
		t.Error("a different word order should compile a new matcher")
	}
}

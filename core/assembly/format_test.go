package assembly

import (
	"strings"
	"testing"
)

func TestPadVerse(t *testing.T) {
	tests := map[string]string{
		"1":   "001",
		"12":  "012",
		"3-4": "003-004",
		"12a": "12a",
		"":    "",
	}
	for in, want := range tests {
		if got := PadVerse(in); got != want {
			t.Errorf("PadVerse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAnchors(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"book", BookAnchor("en", "col"), "en-52"},
		{"chapter", ChapterAnchor("en", "gen", 3), "en-01-ch-003"},
		{"verse", VerseAnchor("fr", "col", 1, "3-4"), "fr-52-ch-001-v-003-004"},
		{"note", helpsAnchor("en", "col", "tn", 2, "5"), "en-52-tn-ch-002-v-005"},
		{"word", WordAnchor("en", "grace"), "en-grace"},
		{"unknown book", BookAnchor("en", "xyz"), "en-xyz"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s anchor = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFormatterWordLinks(t *testing.T) {
	f := formatter{t: DefaultTemplates()}
	if got := f.wordLinks("en", nil); got != "" {
		t.Errorf("wordLinks(nil) = %q, want empty", got)
	}
	got := f.wordLinks("en", []string{"grace", "faith"})
	want := `<ul class="tw-links"><li><a href="#en-grace">grace</a></li><li><a href="#en-faith">faith</a></li></ul>`
	if got != want {
		t.Errorf("wordLinks() = %q, want %q", got, want)
	}
}

func TestTemplatesValidate(t *testing.T) {
	if err := DefaultTemplates().Validate(); err != nil {
		t.Fatalf("DefaultTemplates().Validate() error: %v", err)
	}

	if err := (Templates{}).Validate(); err == nil {
		t.Error("empty templates should not validate")
	}

	bad := DefaultTemplates()
	bad.Verse = `<div id="%[3]s">%[2]s</div>`
	err := bad.Validate()
	if err == nil || !strings.Contains(err.Error(), "templates.verse") {
		t.Errorf("Validate() error = %v, want a templates.verse error", err)
	}
}

func TestTemplatesWithDefaults(t *testing.T) {
	custom := Templates{RowBegin: "<row>"}.WithDefaults()
	if custom.RowBegin != "<row>" {
		t.Errorf("RowBegin = %q, want <row>", custom.RowBegin)
	}
	if custom.Verse != DefaultTemplates().Verse {
		t.Errorf("Verse = %q, want the default", custom.Verse)
	}
}

func TestParseEnums(t *testing.T) {
	for _, l := range AllLayouts() {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %v, %v", l.String(), got, err)
		}
	}
	if got, err := ParseLayout("TWO_COLUMN_SCRIPTURE_LEFT_HELPS_RIGHT_COMPACT"); err != nil || got != TwoColumnScriptureHelpsCompact {
		t.Errorf("ParseLayout(upper) = %v, %v", got, err)
	}
	if _, err := ParseLayout("three-column"); err == nil {
		t.Error("ParseLayout(three-column) should fail")
	}
	if got, err := ParseStrategy("BOOK_LANGUAGE_ORDER"); err != nil || got != BookLanguageOrder {
		t.Errorf("ParseStrategy() = %v, %v", got, err)
	}
	if got, err := ParseChunkSize("chapter"); err != nil || got != ChunkChapter {
		t.Errorf("ParseChunkSize() = %v, %v", got, err)
	}
	if err := (Request{Layout: Layout(42)}).Validate(); err == nil {
		t.Error("Request with layout 42 should not validate")
	}
}

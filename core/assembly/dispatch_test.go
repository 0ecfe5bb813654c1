package assembly

import (
	"testing"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

func allLangBookKeys() []langBookKey {
	var keys []langBookKey
	for bits := 0; bits < 64; bits++ {
		keys = append(keys, langBookKey{
			Scripture:  bits&1 != 0,
			Notes:      bits&2 != 0,
			Questions:  bits&4 != 0,
			Words:      bits&8 != 0,
			Secondary:  bits&16 != 0,
			Commentary: bits&32 != 0,
		})
	}
	return keys
}

func allBookLangKeys() []bookLangKey {
	var keys []bookLangKey
	for bits := 0; bits < 32; bits++ {
		keys = append(keys, bookLangKey{
			Scripture:  bits&1 != 0,
			Notes:      bits&2 != 0,
			Questions:  bits&4 != 0,
			Words:      bits&8 != 0,
			Commentary: bits&16 != 0,
		})
	}
	return keys
}

func TestLangBookDispatchTotal(t *testing.T) {
	if len(langBookTable) != 47 {
		t.Errorf("langBookTable has %d keys, want 47", len(langBookTable))
	}
	for _, key := range allLangBookKeys() {
		anyKind := key.Scripture || key.Notes || key.Questions || key.Words || key.Commentary
		valid := anyKind && (key.Scripture || !key.Secondary)
		for _, layout := range AllLayouts() {
			for _, chunk := range []ChunkSize{ChunkVerse, ChunkChapter} {
				in, err := lookupLangBook(key, layout, chunk)
				if !valid {
					var dke *errors.DispatchKeyError
					if !errors.As(err, &dke) {
						t.Errorf("lookupLangBook(%s, %s, %s) error = %v, want DispatchKeyError", key, layout, chunk, err)
					}
					continue
				}
				if err != nil {
					t.Errorf("lookupLangBook(%s, %s, %s) error: %v", key, layout, chunk, err)
					continue
				}
				if in.run == nil || in.Name == "" {
					t.Errorf("lookupLangBook(%s, %s, %s) returned an empty interleaver", key, layout, chunk)
				}
				if in.Chunk != chunk {
					t.Errorf("%s chunk = %s, want %s", in.Name, in.Chunk, chunk)
				}
				if key.Scripture && in.Layout.Compact() != layout.Compact() {
					t.Errorf("%s layout %s does not keep compactness of %s", in.Name, in.Layout, layout)
				}
				if !key.Scripture && in.Layout != OneColumn && in.Layout != OneColumnCompact {
					t.Errorf("%s uses %s without scripture", in.Name, in.Layout)
				}
				isSS := in.Layout == TwoColumnScriptureScripture || in.Layout == TwoColumnScriptureScriptureCompact
				if isSS && !key.Secondary {
					t.Errorf("%s uses %s without secondary scripture", in.Name, in.Layout)
				}
			}
		}
	}
}

func TestBookLangDispatchTotal(t *testing.T) {
	for _, key := range allBookLangKeys() {
		valid := key.Scripture || key.Notes || key.Questions || key.Words || key.Commentary
		for _, layout := range AllLayouts() {
			for _, chunk := range []ChunkSize{ChunkVerse, ChunkChapter} {
				in, err := lookupBookLang(key, layout, chunk)
				if !valid {
					if !errors.Is(err, errors.ErrUnsupported) {
						t.Errorf("lookupBookLang(%s, %s, %s) error = %v, want ErrUnsupported", key, layout, chunk, err)
					}
					continue
				}
				if err != nil || in.run == nil {
					t.Errorf("lookupBookLang(%s, %s, %s) = %v, %v", key, layout, chunk, in.Name, err)
				}
			}
		}
	}
}

func TestDispatchFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		key    langBookKey
		layout Layout
		want   Layout
	}{
		{"scripture-scripture without secondary", langBookKey{Scripture: true, Notes: true}, TwoColumnScriptureScripture, TwoColumnScriptureHelps},
		{"scripture-helps without helps", langBookKey{Scripture: true}, TwoColumnScriptureHelpsCompact, OneColumnCompact},
		{"scripture alone", langBookKey{Scripture: true}, TwoColumnScriptureScripture, OneColumn},
		{"pair alone keeps columns", langBookKey{Scripture: true, Secondary: true}, TwoColumnScriptureScripture, TwoColumnScriptureScripture},
		{"pair alone without helps", langBookKey{Scripture: true, Secondary: true}, TwoColumnScriptureHelps, OneColumn},
		{"words alone", langBookKey{Words: true}, TwoColumnScriptureHelps, OneColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := lookupLangBook(tt.key, tt.layout, ChunkVerse)
			if err != nil {
				t.Fatalf("lookupLangBook() error: %v", err)
			}
			if in.Layout != tt.want {
				t.Errorf("layout = %s, want %s", in.Layout, tt.want)
			}
		})
	}
}

func TestDispatchRejectsBadLayout(t *testing.T) {
	_, err := lookupLangBook(langBookKey{Scripture: true}, Layout(17), ChunkVerse)
	var dke *errors.DispatchKeyError
	if !errors.As(err, &dke) {
		t.Fatalf("error = %v, want DispatchKeyError", err)
	}
	if dke.Strategy != LanguageBookOrder.String() || dke.Key != "{scripture}" {
		t.Errorf("DispatchKeyError = %+v", dke)
	}

	if _, err := lookupBookLang(bookLangKey{Words: true}, OneColumn, ChunkSize(9)); err == nil {
		t.Error("lookupBookLang() with a bad chunk size should fail")
	}
}

func TestClassifyLangBook(t *testing.T) {
	ulb := newScripture("en", "ulb", "col")
	udb := newScripture("en", "udb", "col")
	extra := newScripture("en", "reg", "col")
	notes := newNotes("en", "col", "")
	notes2 := newNotes("en", "col", "other")

	g := ClassifyLangBook([]content.Unit{notes, ulb, udb, notes2, extra})
	if g.Scripture != ulb || g.Secondary != udb || g.Notes != notes {
		t.Errorf("ClassifyLangBook() picked %v, %v, %v", g.Scripture, g.Secondary, g.Notes)
	}
	if len(g.Ignored) != 2 || g.Ignored[0] != notes2 || g.Ignored[1] != extra {
		t.Errorf("Ignored = %v, want [notes2 extra]", g.Ignored)
	}
	if got := g.Key().String(); got != "{scripture notes secondary}" {
		t.Errorf("Key() = %s", got)
	}
}

func TestClassifyBookLangSortsByLanguage(t *testing.T) {
	fr := newScripture("fr", "lsg", "col")
	ulb := newScripture("en", "ulb", "col")
	udb := newScripture("en", "udb", "col")
	ar := newNotes("ar", "col", "")

	g := ClassifyBookLang([]content.Unit{fr, ulb, ar, udb})
	want := []*content.ScriptureBook{ulb, udb, fr}
	for i, s := range g.Scripture {
		if s != want[i] {
			t.Errorf("Scripture[%d] = %s, want %s", i, s.Meta, want[i].Meta)
		}
	}
	langs := g.Languages()
	if len(langs) != 3 || langs[0] != "ar" || langs[1] != "en" || langs[2] != "fr" {
		t.Errorf("Languages() = %v", langs)
	}
}

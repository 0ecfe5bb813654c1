package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/FocuswithJustin/JuniperDocgen/core/assembly"
	"github.com/FocuswithJustin/JuniperDocgen/core/cache"
	"github.com/FocuswithJustin/JuniperDocgen/core/cas"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

func scripture(lang, text string) *content.ScriptureBook {
	b := &content.ScriptureBook{
		Meta:     content.Meta{Language: lang, LanguageName: lang, Book: "col", Title: "Colossians", Resource: "ulb"},
		Chapters: content.NewChapterMap[*content.ScriptureChapter](),
	}
	b.Chapters.Set(1, &content.ScriptureChapter{
		Content: []string{`<h2 class="c-num">Colossians 1</h2>`, text},
		Verses:  content.VersesOf("1", text),
	})
	return b
}

var defaultRequest = assembly.Request{
	Strategy: assembly.LanguageBookOrder,
	Layout:   assembly.OneColumn,
	Chunk:    assembly.ChunkVerse,
}

func TestBuildUsesMemoryCache(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewDocumentCache(cache.DefaultConfig(), 0)
	b := NewBuilder(assembly.NewEngine(), WithMemoryCache(mem))
	units := []content.Unit{scripture("en", "<p>Paul</p>")}

	first, err := b.Build(ctx, units, defaultRequest)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if first.Cached || len(first.Plan) != 1 || !bytes.Contains(first.HTML, []byte("<p>Paul</p>")) {
		t.Errorf("first Build() = %+v", first)
	}

	second, err := b.Build(ctx, units, defaultRequest)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !second.Cached {
		t.Error("second Build() should come from the cache")
	}
	if !bytes.Equal(first.HTML, second.HTML) || first.Fingerprint != second.Fingerprint {
		t.Error("cached document differs from the built one")
	}
}

func TestBuildUsesBlobStore(t *testing.T) {
	ctx := context.Background()
	blobs, err := cas.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	units := []content.Unit{scripture("en", "<p>Paul</p>")}

	built, err := NewBuilder(assembly.NewEngine(), WithBlobStore(blobs)).Build(ctx, units, defaultRequest)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if built.Cached {
		t.Error("first Build() should not be cached")
	}

	mem := cache.NewDocumentCache(cache.DefaultConfig(), 0)
	again, err := NewBuilder(assembly.NewEngine(), WithBlobStore(blobs), WithMemoryCache(mem)).Build(ctx, units, defaultRequest)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !again.Cached || !bytes.Equal(again.HTML, built.HTML) {
		t.Errorf("Build() from blob store = %+v", again)
	}
	if _, ok := mem.Get(built.Fingerprint); !ok {
		t.Error("blob hit should fill the memory cache")
	}
}

func TestFingerprint(t *testing.T) {
	b := NewBuilder(assembly.NewEngine())
	units := []content.Unit{scripture("en", "<p>a</p>")}
	base, err := b.Fingerprint(units, defaultRequest)
	if err != nil {
		t.Fatal(err)
	}

	compact := defaultRequest
	compact.Layout = assembly.OneColumnCompact
	tests := []struct {
		name    string
		builder *Builder
		units   []content.Unit
		req     assembly.Request
	}{
		{"layout", b, units, compact},
		{"unit content", b, []content.Unit{scripture("en", "<p>b</p>")}, defaultRequest},
		{"unit order", b, []content.Unit{scripture("fr", "<p>a</p>"), scripture("en", "<p>a</p>")}, defaultRequest},
		{"salt", NewBuilder(assembly.NewEngine(), WithFingerprintSalt("rtl=xyz")), units, defaultRequest},
		{"templates", NewBuilder(assembly.NewEngine(assembly.WithTemplates(assembly.Templates{RowBegin: "<tr>"}))), units, defaultRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Fingerprint(tt.units, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if got == base {
				t.Error("fingerprint should change")
			}
		})
	}

	same, _ := b.Fingerprint([]content.Unit{scripture("en", "<p>a</p>")}, defaultRequest)
	if same != base {
		t.Error("identical inputs should share a fingerprint")
	}
}

func TestBuildInvalidRequest(t *testing.T) {
	b := NewBuilder(assembly.NewEngine())
	req := defaultRequest
	req.Layout = assembly.Layout(99)
	_, err := b.Build(context.Background(), []content.Unit{scripture("en", "x")}, req)
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Build() error = %v, want ErrInvalidInput", err)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder(assembly.NewEngine()).Build(ctx, []content.Unit{scripture("en", "x")}, defaultRequest)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestEncode(t *testing.T) {
	doc := []byte(`<h1 id="col">Colossians</h1><div class="verse"><p>Grace <strong>to</strong> you</p></div>`)

	tests := []struct {
		name     string
		opts     Options
		contains []string
		absent   []string
	}{
		{"html", Options{}, []string{string(doc)}, []string{"<html>"}},
		{"standalone", Options{Format: FormatHTML, Standalone: true, Title: "Col & Eph"}, []string{"<!DOCTYPE html>", "<title>Col &amp; Eph</title>", string(doc)}, nil},
		{"markdown", Options{Format: FormatMarkdown}, []string{"# Colossians", "Grace **to** you"}, []string{"<h1", "<div"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, doc, tt.opts); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output %q does not contain %q", buf.String(), s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(buf.String(), s) {
					t.Errorf("output %q contains %q", buf.String(), s)
				}
			}
		})
	}
}

func TestEncodeCompressed(t *testing.T) {
	doc := []byte(strings.Repeat("<p>grace</p>", 100))
	var buf bytes.Buffer
	if err := Encode(&buf, doc, Options{Compress: true}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}) {
		t.Errorf("output does not start with the xz magic: % x", buf.Bytes()[:6])
	}
	got, err := Decompress(&buf)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if !bytes.Equal(got, doc) {
		t.Error("decompressed output differs")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, nil, Options{Format: "pdf"})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Encode() error = %v, want ErrInvalidInput", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/JuniperDocgen/core/assembly"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docgen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	req, err := cfg.Request()
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	want := assembly.Request{Strategy: assembly.LanguageBookOrder, Layout: assembly.OneColumn, Chunk: assembly.ChunkVerse}
	if req != want {
		t.Errorf("Request() = %+v, want %+v", req, want)
	}
	if cfg.AssemblyTemplates() != assembly.DefaultTemplates() {
		t.Error("default templates differ from assembly.DefaultTemplates()")
	}
	if cfg.Store.CacheSize != DefaultCacheSize || cfg.Output.Format != OutputHTML {
		t.Errorf("store/output = %+v %+v", cfg.Store, cfg.Output)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
assembly:
  strategy: BOOK_LANGUAGE_ORDER
  layout: two-column-scripture-helps-compact
  chunk_size: chapter
templates:
  verse: '<p id="%[1]s">%[2]s</p>'
direction:
  rtl_languages: [xyz, abc]
logging:
  level: debug
  format: json
store:
  db_path: /tmp/units.db
  cache_dir: /tmp/cache
  cache_size: 4
output:
  format: markdown
  compress: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	req, err := cfg.Request()
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	want := assembly.Request{
		Strategy: assembly.BookLanguageOrder,
		Layout:   assembly.TwoColumnScriptureHelpsCompact,
		Chunk:    assembly.ChunkChapter,
	}
	if req != want {
		t.Errorf("Request() = %+v, want %+v", req, want)
	}

	tmpl := cfg.AssemblyTemplates()
	if tmpl.Verse != `<p id="%[1]s">%[2]s</p>` {
		t.Errorf("Verse template = %q", tmpl.Verse)
	}
	if tmpl.Note != assembly.DefaultTemplates().Note {
		t.Errorf("Note template = %q, want default", tmpl.Note)
	}
	if !reflect.DeepEqual(cfg.Direction.RTLLanguages, []string{"xyz", "abc"}) {
		t.Errorf("RTLLanguages = %v", cfg.Direction.RTLLanguages)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	wantStore := StoreConfig{DBPath: "/tmp/units.db", CacheDir: "/tmp/cache", CacheSize: 4}
	if cfg.Store != wantStore {
		t.Errorf("Store = %+v, want %+v", cfg.Store, wantStore)
	}
	if cfg.Output != (OutputConfig{Format: OutputMarkdown, Compress: true}) {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JUNIPER_DOCGEN_ASSEMBLY_LAYOUT", "one-column-compact")
	t.Setenv("JUNIPER_DOCGEN_STORE_CACHE_SIZE", "9")
	t.Setenv("JUNIPER_DOCGEN_TEMPLATES_ROW_BEGIN", "<tr>")

	path := writeConfig(t, "assembly:\n  layout: one-column\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Assembly.Layout != "one-column-compact" {
		t.Errorf("Layout = %q, want env value", cfg.Assembly.Layout)
	}
	if cfg.Store.CacheSize != 9 {
		t.Errorf("CacheSize = %d, want 9", cfg.Store.CacheSize)
	}
	if cfg.Templates.RowBegin != "<tr>" {
		t.Errorf("RowBegin = %q, want <tr>", cfg.Templates.RowBegin)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"strategy", "assembly:\n  strategy: sideways\n", "strategy"},
		{"layout", "assembly:\n  layout: three-column\n", "layout"},
		{"chunk", "assembly:\n  chunk_size: page\n", "chunk_size"},
		{"template verbs", "templates:\n  verse: '<p>%[3]d</p>'\n", "templates.verse"},
		{"log level", "logging:\n  level: loud\n", "logging.level"},
		{"log format", "logging:\n  format: xml\n", "logging.format"},
		{"cache size", "store:\n  cache_size: -1\n", "store.cache_size"},
		{"matcher cache size", "assembly:\n  matcher_cache_size: -1\n", "assembly.matcher_cache_size"},
		{"output format", "output:\n  format: pdf\n", "output.format"},
		{"db path", "store:\n  db_path: ''\n", "store.db_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error = %v, want mention of %s", err, tt.field)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Direction.RTLLanguages = []string{"xyz"}
	cfg.Templates.BookHeading = `<h1 id="%[1]s">%[2]s!</h1>`

	e := assembly.NewEngine(cfg.EngineOptions()...)
	if got := e.Templates().BookHeading; got != cfg.Templates.BookHeading {
		t.Errorf("engine BookHeading = %q", got)
	}
	if got := e.Templates().Verse; got != assembly.DefaultTemplates().Verse {
		t.Errorf("engine Verse = %q, want default", got)
	}
}

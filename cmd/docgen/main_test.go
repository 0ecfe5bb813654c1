package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixture = `units:
  - lang: en
    lang_name: English
    book: col
    title: Colossians
    resource: ulb
    chapters:
      - number: 1
        verses:
          - {verse: "1", text: "<p>Paul, an apostle, to the saints</p>"}
          - {verse: "2", text: "<p>grace to you</p>"}
  - lang: en
    book: col
    resource: tn
    markdown: true
    chapters:
      - number: 1
        verses:
          - {verse: "1", text: "**Paul** wrote this letter"}
  - lang: en
    lang_name: English
    book: col
    resource: tw
    entries:
      - {word: grace, content: "<h3>grace</h3><p>undeserved favor</p>"}
`

// workspace writes a quiet config and a fixture file and returns the
// global flags pointing at them.
func workspace(t *testing.T) (dir string, global []string) {
	t.Helper()
	dir = t.TempDir()
	cfg := filepath.Join(dir, "docgen.yaml")
	body := "logging:\n  level: error\nstore:\n  db_path: " + filepath.Join(dir, "units.db") + "\n"
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "col.yaml"), []byte(fixture), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir, []string{"--config", cfg}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("docgen %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestBooksCmd(t *testing.T) {
	_, global := workspace(t)
	out := mustRun(t, append(global, "books")...)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 66 {
		t.Errorf("books printed %d lines, want 66", len(lines))
	}
	if !strings.Contains(out, "52  col  Colossians") {
		t.Errorf("books output missing Colossians:\n%s", out)
	}
}

func TestVersionCmd(t *testing.T) {
	_, global := workspace(t)
	out := mustRun(t, append(global, "version")...)
	if !strings.Contains(out, "docgen version "+version) || !strings.Contains(out, "sqlite driver") {
		t.Errorf("version output = %q", out)
	}
}

func TestImportAndUnits(t *testing.T) {
	dir, global := workspace(t)
	out := mustRun(t, append(global, "import", filepath.Join(dir, "col.yaml"))...)
	if !strings.Contains(out, "3 units imported") {
		t.Errorf("import output = %q", out)
	}

	out = mustRun(t, append(global, "units", "--json")...)
	var list []map[string]any
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("units --json output is not JSON: %v\n%s", err, out)
	}
	if len(list) != 3 {
		t.Errorf("units listed %d, want 3", len(list))
	}

	out = mustRun(t, append(global, "units")...)
	if !strings.Contains(out, "en/tn/col") {
		t.Errorf("units output = %q", out)
	}
}

func TestAssembleAndOutline(t *testing.T) {
	dir, global := workspace(t)
	mustRun(t, append(global, "import", filepath.Join(dir, "col.yaml"))...)

	out := filepath.Join(dir, "col.html")
	mustRun(t, append(global, "assemble",
		"--request", "en/ulb/col,en/tn/col,en/tw/col",
		"--layout", "two-column-scripture-helps",
		"--out", out,
		"--cache", filepath.Join(dir, "cache"),
		"--check")...)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Paul, an apostle", "<strong>Paul</strong>", "undeserved favor"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("document missing %q", want)
		}
	}

	outline := mustRun(t, append(global, "outline", "--check-links", out)...)
	if !strings.Contains(outline, "Colossians") || !strings.Contains(outline, "links checked") {
		t.Errorf("outline output = %q", outline)
	}

	// A second build with the same inputs comes from the cache.
	again := filepath.Join(dir, "again.html")
	mustRun(t, append(global, "assemble",
		"--request", "en/ulb/col,en/tn/col,en/tw/col",
		"--layout", "two-column-scripture-helps",
		"--out", again,
		"--cache", filepath.Join(dir, "cache"))...)
	second, _ := os.ReadFile(again)
	if !bytes.Equal(data, second) {
		t.Error("cached document differs from the first build")
	}
}

func TestAssembleByChapterChecks(t *testing.T) {
	dir, global := workspace(t)
	mustRun(t, append(global, "import", filepath.Join(dir, "col.yaml"))...)

	for _, strategy := range []string{"lang-book", "book-lang"} {
		out := filepath.Join(dir, strategy+".html")
		mustRun(t, append(global, "assemble",
			"--request", "en/ulb/col,en/tn/col,en/tw/col",
			"--strategy", strategy,
			"--layout", "two-column-scripture-helps",
			"--chunk", "chapter",
			"--out", out,
			"--check")...)
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `href="#en-52-ch-001"`) {
			t.Errorf("%s: glossary uses do not link the chapter", strategy)
		}
	}
}

func TestAssembleCompressedAndMarkdown(t *testing.T) {
	dir, global := workspace(t)
	mustRun(t, append(global, "import", filepath.Join(dir, "col.yaml"))...)

	xzPath := filepath.Join(dir, "col.html.xz")
	mustRun(t, append(global, "assemble", "-r", "en/ulb/col", "--xz", "-o", xzPath)...)
	data, err := os.ReadFile(xzPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}) {
		t.Error("--xz output is not an xz stream")
	}
	outline := mustRun(t, append(global, "outline", "--json", xzPath)...)
	if !strings.Contains(outline, `"outline"`) {
		t.Errorf("outline --json output = %q", outline)
	}

	md := mustRun(t, append(global, "assemble", "-r", "en/ulb/col", "--markdown")...)
	if strings.Contains(md, "<div") || !strings.Contains(md, "Paul, an apostle") {
		t.Errorf("markdown output = %q", md)
	}
}

func TestAssembleErrors(t *testing.T) {
	dir, global := workspace(t)
	mustRun(t, append(global, "import", filepath.Join(dir, "col.yaml"))...)

	tests := []struct {
		name string
		args []string
	}{
		{"missing unit", []string{"assemble", "-r", "fr/ulb/col"}},
		{"bad request", []string{"assemble", "-r", "en/ulb"}},
		{"unknown book", []string{"assemble", "-r", "en/ulb/xyz"}},
		{"bad layout", []string{"assemble", "-r", "en/ulb/col", "--layout", "three-column"}},
		{"bad strategy", []string{"assemble", "-r", "en/ulb/col", "--strategy", "random"}},
		{"bad log level", []string{"--log-level", "loud", "books"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, append(global, tt.args...)...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOutlineDeadLinks(t *testing.T) {
	dir, global := workspace(t)
	path := filepath.Join(dir, "doc.html")
	doc := `<h1 id="a">Book</h1><h2>Chapter</h2><a href="#a">ok</a><a href="#gone">x</a>`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, append(global, "outline", "--check-links", path)...)
	if err == nil {
		t.Error("outline --check-links should fail on a dead link")
	}
	if !strings.Contains(out, "Book\n  Chapter\n") || !strings.Contains(out, "dead link: #gone") {
		t.Errorf("outline output = %q", out)
	}

	out = mustRun(t, append(global, "outline", path)...)
	if strings.Contains(out, "dead link") {
		t.Errorf("outline without --check-links reported links: %q", out)
	}
}

// Command docgen assembles translation-helps documents from stored book
// content units.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/JuniperDocgen/core/assembly"
	"github.com/FocuswithJustin/JuniperDocgen/core/bible"
	"github.com/FocuswithJustin/JuniperDocgen/core/cache"
	"github.com/FocuswithJustin/JuniperDocgen/core/cas"
	"github.com/FocuswithJustin/JuniperDocgen/core/sqlite"
	"github.com/FocuswithJustin/JuniperDocgen/core/xml"
	"github.com/FocuswithJustin/JuniperDocgen/internal/config"
	"github.com/FocuswithJustin/JuniperDocgen/internal/logging"
	"github.com/FocuswithJustin/JuniperDocgen/internal/render"
	"github.com/FocuswithJustin/JuniperDocgen/internal/unitstore"
	"github.com/FocuswithJustin/JuniperDocgen/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for docgen.
type CLI struct {
	// Global flags
	Config    string `short:"c" help:"Config file (YAML)" type:"path"`
	LogLevel  string `name:"log-level" help:"Override logging.level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Override logging.format (json, text)"`

	Assemble AssembleCmd `cmd:"" help:"Assemble a document from stored units"`
	Import   ImportCmd   `cmd:"" help:"Import units from YAML or JSON fixture files"`
	Units    UnitsCmd    `cmd:"" help:"List stored units"`
	Outline  OutlineCmd  `cmd:"" help:"Print the heading outline of a document"`
	Books    BooksCmd    `cmd:"" help:"List canonical book codes"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// env is bound to every command's Run method.
type env struct {
	ctx context.Context
	cfg *config.Config
	out io.Writer
}

func (e *env) openStore(path string) (*unitstore.Store, error) {
	if path == "" {
		path = e.cfg.Store.DBPath
	}
	if err := validation.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}
	return unitstore.Open(e.ctx, path)
}

// AssembleCmd assembles a document.
type AssembleCmd struct {
	DB       string `help:"Unit database (default store.db_path)" type:"path"`
	Request  string `short:"r" required:"" help:"Units to assemble, e.g. en/ulb/col,en/tn/col"`
	Strategy string `help:"lang-book or book-lang (default assembly.strategy)"`
	Layout   string `help:"Column layout (default assembly.layout)"`
	Chunk    string `help:"verse or chapter (default assembly.chunk_size)"`
	Out      string `short:"o" help:"Output file (default stdout)" type:"path"`

	XZ         bool   `name:"xz" help:"Compress the output with xz"`
	Markdown   bool   `help:"Write markdown instead of HTML"`
	Standalone bool   `help:"Wrap HTML output in a complete page"`
	Title      string `help:"Page title for --standalone"`
	Cache      string `help:"Document cache directory (default store.cache_dir)" type:"path"`
	Check      bool   `help:"Verify element nesting and in-document links of the result"`
}

// request merges the flags over the configured defaults.
func (c *AssembleCmd) request(cfg *config.Config) (assembly.Request, error) {
	req, err := cfg.Request()
	if err != nil {
		return req, err
	}
	if c.Strategy != "" {
		if req.Strategy, err = assembly.ParseStrategy(c.Strategy); err != nil {
			return req, err
		}
	}
	if c.Layout != "" {
		if req.Layout, err = assembly.ParseLayout(c.Layout); err != nil {
			return req, err
		}
	}
	if c.Chunk != "" {
		if req.Chunk, err = assembly.ParseChunkSize(c.Chunk); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (c *AssembleCmd) Run(e *env) error {
	req, err := c.request(e.cfg)
	if err != nil {
		return err
	}
	reqs, err := bible.ParseRequests(c.Request)
	if err != nil {
		return err
	}

	store, err := e.openStore(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()
	units, err := store.Load(e.ctx, reqs)
	if err != nil {
		return err
	}

	opts := append(e.cfg.EngineOptions(), assembly.WithLogger(logging.LoggerFromContext(e.ctx)))
	builderOpts := []render.Option{
		render.WithMemoryCache(cache.NewDocumentCache(cache.Config{MaxSize: e.cfg.Store.CacheSize}, 0)),
		render.WithFingerprintSalt("rtl=" + strings.Join(e.cfg.Direction.RTLLanguages, ",")),
	}
	cacheDir := c.Cache
	if cacheDir == "" {
		cacheDir = e.cfg.Store.CacheDir
	}
	if cacheDir != "" {
		blobs, err := cas.NewStore(cacheDir)
		if err != nil {
			return fmt.Errorf("failed to open document cache: %w", err)
		}
		builderOpts = append(builderOpts, render.WithBlobStore(blobs))
	}

	doc, err := render.NewBuilder(assembly.NewEngine(opts...), builderOpts...).Build(e.ctx, units, req)
	if err != nil {
		return err
	}

	if c.Check {
		if err := checkDocument(doc.HTML); err != nil {
			return err
		}
	}

	format := e.cfg.Output.Format
	if c.Markdown {
		format = render.FormatMarkdown
	}
	encOpts := render.Options{
		Format:     format,
		Standalone: c.Standalone,
		Title:      c.Title,
		Compress:   c.XZ || e.cfg.Output.Compress,
	}

	if c.Out == "" {
		return render.Encode(e.out, doc.HTML, encOpts)
	}
	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := render.Encode(f, doc.HTML, encOpts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Wrote %s (%d bytes HTML, fingerprint %s)\n", c.Out, len(doc.HTML), doc.Fingerprint[:12])
	return nil
}

// checkDocument fails on broken nesting, dead links or duplicate ids.
func checkDocument(doc []byte) error {
	if err := xml.CheckBalance(bytes.NewReader(doc)); err != nil {
		return err
	}
	parsed, err := xml.ParseHTML(bytes.NewReader(doc))
	if err != nil {
		return err
	}
	if report := parsed.CheckLinks(); !report.OK() {
		return fmt.Errorf("%d dead links %v, %d duplicate ids %v",
			len(report.Dead), report.Dead, len(report.Duplicates), report.Duplicates)
	}
	return nil
}

// ImportCmd imports fixture files.
type ImportCmd struct {
	DB    string   `help:"Unit database (default store.db_path)" type:"path"`
	Files []string `arg:"" help:"Fixture files (.yaml, .yml, .json)" type:"existingfile"`
}

func (c *ImportCmd) Run(e *env) error {
	store, err := e.openStore(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range c.Files {
		n, err := store.ImportFile(e.ctx, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(e.out, "%s: %d units imported\n", path, n)
	}
	return nil
}

// UnitsCmd lists stored units.
type UnitsCmd struct {
	DB   string `help:"Unit database (default store.db_path)" type:"path"`
	JSON bool   `help:"Output as JSON"`
}

func (c *UnitsCmd) Run(e *env) error {
	store, err := e.openStore(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(e.ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(e.out, "No units stored")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(e.out, "%-20s %-10s %s\n", s.Request, s.Kind, s.Title)
	}
	return nil
}

// OutlineCmd prints a document outline.
type OutlineCmd struct {
	Path       string `arg:"" help:"Assembled document (.html, .html.xz)" type:"existingfile"`
	CheckLinks bool   `name:"check-links" help:"Report dead links and duplicate ids"`
	JSON       bool   `help:"Output as JSON"`
}

func (c *OutlineCmd) Run(e *env) error {
	data, ft, err := validation.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if ft == validation.FileTypeXZ {
		if data, err = render.Decompress(bytes.NewReader(data)); err != nil {
			return err
		}
	}
	doc, err := xml.ParseHTML(bytes.NewReader(data))
	if err != nil {
		return err
	}

	outline := doc.Outline()
	var report *xml.LinkReport
	if c.CheckLinks {
		r := doc.CheckLinks()
		report = &r
	}

	if c.JSON {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Outline []xml.Heading   `json:"outline"`
			Links   *xml.LinkReport `json:"links,omitempty"`
		}{outline, report}); err != nil {
			return err
		}
	} else {
		for _, h := range outline {
			fmt.Fprintf(e.out, "%s%s\n", strings.Repeat("  ", h.Level-1), h.Text)
		}
		if report != nil {
			fmt.Fprintf(e.out, "\n%d links checked\n", report.Links)
			for _, d := range report.Dead {
				fmt.Fprintf(e.out, "dead link: #%s\n", d)
			}
			for _, d := range report.Duplicates {
				fmt.Fprintf(e.out, "duplicate id: %s\n", d)
			}
		}
	}

	if report != nil && !report.OK() {
		return fmt.Errorf("%d dead links, %d duplicate ids", len(report.Dead), len(report.Duplicates))
	}
	return nil
}

// BooksCmd lists the canonical book table.
type BooksCmd struct{}

func (c *BooksCmd) Run(e *env) error {
	for _, b := range bible.Books() {
		fmt.Fprintf(e.out, "%s  %-4s %-16s %3d\n", b.Number, b.Code, b.Name, b.Chapters)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(e.out, "docgen version %s\n", version)
	fmt.Fprintf(e.out, "sqlite driver %s (%s, %s)\n", info.DriverName, info.DriverType, info.Package)
	return nil
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("docgen"),
		kong.Description("Juniper Docgen - translation helps document assembly"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if err := initLogging(cfg, cli.LogLevel, cli.LogFormat, stderr); err != nil {
		return err
	}

	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	logging.DebugContext(ctx, "command started", "command", kctx.Command())
	return kctx.Run(&env{ctx: ctx, cfg: cfg, out: stdout})
}

func initLogging(cfg *config.Config, level, format string, w io.Writer) error {
	if level == "" {
		level = cfg.Logging.Level
	}
	if format == "" {
		format = cfg.Logging.Format
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	f, err := logging.ParseFormat(format)
	if err != nil {
		return err
	}
	logging.InitLoggerTo(w, lvl, f)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
}

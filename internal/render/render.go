// Package render builds finished documents: it runs the assembly engine,
// reuses previously built documents by fingerprint, and encodes the result
// as HTML or markdown, optionally xz-compressed.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/JuniperDocgen/core/assembly"
	"github.com/FocuswithJustin/JuniperDocgen/core/cache"
	"github.com/FocuswithJustin/JuniperDocgen/core/cas"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
	"github.com/FocuswithJustin/JuniperDocgen/internal/logging"
)

// Document is an assembled document.
type Document struct {
	// HTML is the concatenated fragment output.
	HTML []byte

	// Fingerprint identifies the inputs the document was built from.
	Fingerprint string

	// Plan names the interleaver used for each group. It is empty for a
	// cached document.
	Plan []string

	// Cached reports whether the document came from a cache.
	Cached bool
}

// Builder assembles documents and caches them by fingerprint.
type Builder struct {
	engine *assembly.Engine
	memory *cache.DocumentCache
	blobs  *cas.Store
	salt   string
}

// Option configures a Builder.
type Option func(*Builder)

// WithMemoryCache keeps built documents in memory.
func WithMemoryCache(c *cache.DocumentCache) Option {
	return func(b *Builder) { b.memory = c }
}

// WithBlobStore persists built documents, xz-compressed, in a
// content-addressed store.
func WithBlobStore(s *cas.Store) Option {
	return func(b *Builder) { b.blobs = s }
}

// WithFingerprintSalt mixes engine settings that change the output, such
// as right-to-left overrides, into every fingerprint.
func WithFingerprintSalt(salt string) Option {
	return func(b *Builder) { b.salt = salt }
}

// NewBuilder creates a builder around an engine.
func NewBuilder(engine *assembly.Engine, opts ...Option) *Builder {
	b := &Builder{engine: engine}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Fingerprint digests the request, the templates, the salt and every unit.
func (b *Builder) Fingerprint(units []content.Unit, req assembly.Request) (string, error) {
	fp := cas.NewFingerprint().
		Add("strategy", req.Strategy.String()).
		Add("layout", req.Layout.String()).
		Add("chunk", req.Chunk.String()).
		Add("templates", fmt.Sprintf("%q", b.engine.Templates())).
		Add("salt", b.salt)
	for _, u := range units {
		if err := fp.AddUnit(u); err != nil {
			return "", errors.Wrapf(err, "fingerprinting %s/%s/%s", u.LangCode(), u.ResourceType(), u.BookCode())
		}
	}
	return fp.Sum(), nil
}

// Build returns the document for units and req, from a cache when an
// identical build was stored before.
func (b *Builder) Build(ctx context.Context, units []content.Unit, req assembly.Request) (*Document, error) {
	start := time.Now()
	key, err := b.Fingerprint(units, req)
	if err != nil {
		return nil, err
	}

	if doc, ok := b.cached(ctx, key); ok {
		logging.DocumentBuilt(ctx, "cached", len(units), len(doc.HTML), time.Since(start), "cached", true)
		return doc, nil
	}

	plan, err := b.engine.Plan(units, req)
	if err != nil {
		return nil, err
	}
	seq, err := b.engine.Assemble(units, req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := assembly.Write(ctx, &buf, seq); err != nil {
		return nil, err
	}

	doc := &Document{HTML: buf.Bytes(), Fingerprint: key, Plan: plan}
	b.store(ctx, doc)
	logging.DocumentBuilt(ctx, req.Strategy.String(), len(units), len(doc.HTML), time.Since(start), "cached", false)
	return doc, nil
}

func (b *Builder) cached(ctx context.Context, key string) (*Document, bool) {
	if b.memory != nil {
		if data, ok := b.memory.Get(key); ok {
			logging.CacheEvent(ctx, "hit", key, "tier", "memory")
			return &Document{HTML: data, Fingerprint: key, Cached: true}, true
		}
	}
	if b.blobs != nil {
		data, err := b.blobs.GetRef(key)
		switch {
		case err == nil:
			logging.CacheEvent(ctx, "hit", key, "tier", "blob")
			if b.memory != nil {
				b.memory.Put(key, data)
			}
			return &Document{HTML: data, Fingerprint: key, Cached: true}, true
		case !errors.Is(err, cas.ErrBlobNotFound):
			// A corrupt or unreadable entry is rebuilt and overwritten.
			logging.WarnContext(ctx, "document cache read failed", "key", key, "error", err)
		}
	}
	logging.CacheEvent(ctx, "miss", key)
	return nil, false
}

func (b *Builder) store(ctx context.Context, doc *Document) {
	if b.memory != nil {
		b.memory.Put(doc.Fingerprint, doc.HTML)
	}
	if b.blobs != nil {
		hash, err := b.blobs.PutRef(doc.Fingerprint, doc.HTML)
		if err != nil {
			logging.WarnContext(ctx, "document cache write failed", "key", doc.Fingerprint, "error", err)
			return
		}
		logging.CacheEvent(ctx, "store", doc.Fingerprint, "blob", hash)
	}
}

// Output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Options control how a document is encoded.
type Options struct {
	// Format is FormatHTML or FormatMarkdown.
	Format string

	// Standalone wraps HTML output in a complete page titled Title.
	Standalone bool
	Title      string

	// Compress writes the output as an xz stream.
	Compress bool
}

// Encode writes the document to w in the requested format.
func Encode(w io.Writer, doc []byte, opts Options) (err error) {
	var out []byte
	switch opts.Format {
	case "", FormatHTML:
		out = doc
		if opts.Standalone {
			out = Standalone(doc, opts.Title)
		}
	case FormatMarkdown:
		if out, err = Markdown(doc); err != nil {
			return err
		}
	default:
		return errors.NewValidation("output.format", fmt.Sprintf("unknown format %q", opts.Format))
	}

	if !opts.Compress {
		if _, err := w.Write(out); err != nil {
			return errors.NewIO("write", "document", err)
		}
		return nil
	}

	zw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := zw.Write(out); err != nil {
		zw.Close()
		return errors.NewIO("write", "document", err)
	}
	if err := zw.Close(); err != nil {
		return errors.NewIO("write", "document", err)
	}
	return nil
}

// Decompress reads an xz stream written by Encode.
func Decompress(r io.Reader) ([]byte, error) {
	zr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return io.ReadAll(zr)
}

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Markdown converts an assembled HTML document to markdown. Layout
// containers are flattened; anchors are dropped.
func Markdown(doc []byte) ([]byte, error) {
	out, err := mdConverter.ConvertString(string(doc))
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}
	return []byte(out), nil
}

// Standalone wraps a document in a minimal HTML page.
func Standalone(doc []byte, title string) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.Write(doc)
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes()
}

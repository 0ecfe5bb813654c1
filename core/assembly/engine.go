package assembly

import (
	"cmp"
	"context"
	"io"
	"iter"
	"log/slog"
	"slices"

	"github.com/FocuswithJustin/JuniperDocgen/core/bible"
	"github.com/FocuswithJustin/JuniperDocgen/core/cache"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
	"github.com/FocuswithJustin/JuniperDocgen/internal/logging"
)

// Engine assembles documents. An Engine is safe for concurrent use as long
// as concurrent assemblies do not share units.
type Engine struct {
	templates Templates
	logger    *slog.Logger
	dirs      *DirectionResolver
	matchers  cache.Cache[string, *wordMatcher]
}

// Option configures an Engine.
type Option func(*Engine)

// WithTemplates sets the fragment templates. Empty templates fall back to
// DefaultTemplates.
func WithTemplates(t Templates) Option {
	return func(e *Engine) { e.templates = t.WithDefaults() }
}

// WithLogger sets the logger used for skipped cross references.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRTLLanguages marks language codes as right to left in addition to
// those detected from their script.
func WithRTLLanguages(codes ...string) Option {
	return func(e *Engine) { e.dirs = NewDirectionResolver(codes...) }
}

// WithMatcherCacheSize bounds the number of compiled glossary matchers kept
// between assemblies.
func WithMatcherCacheSize(n int) Option {
	return func(e *Engine) {
		e.matchers = cache.NewLRUCache[string, *wordMatcher](cache.Config{MaxSize: n})
	}
}

// NewEngine creates an engine with the default templates.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		templates: DefaultTemplates(),
		logger:    logging.GetLogger(),
		dirs:      NewDirectionResolver(),
		matchers:  cache.NewLRUCache[string, *wordMatcher](cache.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Templates returns the templates in use.
func (e *Engine) Templates() Templates { return e.templates }

// pass is the state of one traversal of an assembled sequence.
type pass struct {
	f        formatter
	dirs     *DirectionResolver
	log      *slog.Logger
	uses     *UsesIndex
	matchers map[*content.WordsBook]*wordMatcher
	chunk    ChunkSize
}

// missing logs a cross reference skipped because a non-pump unit lacks a
// chapter or verse.
func (p *pass) missing(u content.Unit, chapter int, verse string) {
	p.log.Debug("missing cross reference",
		"lang", u.LangCode(),
		"resource", u.ResourceType(),
		"book", u.BookCode(),
		"chapter", chapter,
		"verse", verse)
}

// plan is the dispatched form of an assembly call.
type plan struct {
	steps    []step
	matchers map[*content.WordsBook]*wordMatcher
}

// GroupLangBook groups units by language and book, sorted by language code
// then canonical book order. Units keep their input order within a group.
func GroupLangBook(units []content.Unit) [][]content.Unit {
	type key struct{ lang, book string }
	return group(units, func(u content.Unit) key {
		return key{u.LangCode(), u.BookCode()}
	}, func(a, b key) int {
		return cmp.Or(
			cmp.Compare(a.lang, b.lang),
			cmp.Compare(bible.Order(a.book), bible.Order(b.book)),
			cmp.Compare(a.book, b.book),
		)
	})
}

// GroupBookLang groups units by book in canonical book order. Units keep
// their input order within a group.
func GroupBookLang(units []content.Unit) [][]content.Unit {
	return group(units, content.Unit.BookCode, func(a, b string) int {
		return cmp.Or(
			cmp.Compare(bible.Order(a), bible.Order(b)),
			cmp.Compare(a, b),
		)
	})
}

func group[K comparable](units []content.Unit, keyOf func(content.Unit) K, compare func(a, b K) int) [][]content.Unit {
	var keys []K
	groups := make(map[K][]content.Unit)
	for _, u := range units {
		if u == nil {
			continue
		}
		k := keyOf(u)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], u)
	}
	slices.SortStableFunc(keys, compare)
	out := make([][]content.Unit, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out
}

func (e *Engine) plan(units []content.Unit, req Request) (*plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pl := &plan{matchers: make(map[*content.WordsBook]*wordMatcher)}

	addMatcher := func(w *content.WordsBook) error {
		m, err := loadMatcher(e.matchers, w)
		if err != nil {
			return errors.Wrapf(err, "compile glossary %s/%s/%s", w.LangCode(), w.ResourceType(), w.BookCode())
		}
		pl.matchers[w] = m
		return nil
	}

	switch req.Strategy {
	case LanguageBookOrder:
		for _, members := range GroupLangBook(units) {
			g := ClassifyLangBook(members)
			for _, u := range g.Ignored {
				e.logger.Debug("ignoring extra unit",
					"lang", u.LangCode(), "resource", u.ResourceType(), "book", u.BookCode())
			}
			in, err := DispatchLangBook(g, req.Layout, req.Chunk)
			if err != nil {
				return nil, err
			}
			if g.Words != nil {
				if err := addMatcher(g.Words); err != nil {
					return nil, err
				}
			}
			pl.steps = append(pl.steps, in.bind(g))
		}
	case BookLanguageOrder:
		for _, members := range GroupBookLang(units) {
			g := ClassifyBookLang(members)
			in, err := DispatchBookLang(g, req.Layout, req.Chunk)
			if err != nil {
				return nil, err
			}
			if _, err := g.pump(); err != nil {
				return nil, err
			}
			for _, w := range g.Words {
				if err := addMatcher(w); err != nil {
					return nil, err
				}
			}
			pl.steps = append(pl.steps, in.bind(g))
		}
	}
	return pl, nil
}

// Plan returns the name of the interleaver chosen for every group, in
// emission order.
func (e *Engine) Plan(units []content.Unit, req Request) ([]string, error) {
	pl, err := e.plan(units, req)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pl.steps))
	for i, s := range pl.steps {
		names[i] = s.name
	}
	return names, nil
}

// Assemble groups and dispatches units and returns the lazy fragment
// sequence. Dispatch errors are returned before any fragment is produced.
// Every iteration of the sequence is an independent pass with its own
// UsesIndex.
func (e *Engine) Assemble(units []content.Unit, req Request) (iter.Seq[string], error) {
	pl, err := e.plan(units, req)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("assembly planned",
		"strategy", req.Strategy.String(),
		"layout", req.Layout.String(),
		"chunk", req.Chunk.String(),
		"groups", len(pl.steps))

	return func(yield func(string) bool) {
		p := &pass{
			f:        formatter{t: e.templates},
			dirs:     e.dirs,
			log:      e.logger,
			uses:     NewUsesIndex(),
			matchers: pl.matchers,
			chunk:    req.Chunk,
		}
		em := &emitter{yield: yield}
		for _, s := range pl.steps {
			s.run(p, em)
			if em.stopped {
				return
			}
		}
	}, nil
}

// Write streams the fragments of seq to w. It stops at the first write
// error or when ctx is done, returning ctx.Err() in that case.
func Write(ctx context.Context, w io.Writer, seq iter.Seq[string]) error {
	for fragment := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fragment); err != nil {
			return errors.NewIO("write", "document", err)
		}
	}
	return ctx.Err()
}

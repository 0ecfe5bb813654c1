package unitstore

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// markdown renders helps written in markdown. Raw HTML passes through so
// fixtures may mix both.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	),
	goldmark.WithRendererOptions(
		ghtml.WithUnsafe(),
	),
)

// MarkdownToHTML renders a markdown text as HTML.
func MarkdownToHTML(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// renderMarkdown converts the text fields of a markdown record to HTML in
// place and clears its Markdown flag. Scripture headings are kept as is.
func (r *Record) renderMarkdown() error {
	if !r.Markdown {
		return nil
	}
	convert := func(s *string) error {
		out, err := MarkdownToHTML(*s)
		if err != nil {
			return err
		}
		*s = out
		return nil
	}

	if err := convert(&r.Intro); err != nil {
		return err
	}
	for i := range r.Chapters {
		ch := &r.Chapters[i]
		for _, s := range []*string{&ch.Intro, &ch.Commentary, &ch.Footnotes} {
			if err := convert(s); err != nil {
				return err
			}
		}
		for j := range ch.Body {
			if err := convert(&ch.Body[j]); err != nil {
				return err
			}
		}
		for j := range ch.Verses {
			if err := convert(&ch.Verses[j].Text); err != nil {
				return err
			}
		}
	}
	for i := range r.Entries {
		if err := convert(&r.Entries[i].Content); err != nil {
			return err
		}
	}
	r.Markdown = false
	return nil
}

package assembly

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

// Templates holds the positional format strings used to build fragments.
// Each template uses explicit argument indexes so translations may reorder
// them. The arguments of every template are listed on its field.
type Templates struct {
	RowBegin    string `mapstructure:"row_begin" yaml:"row_begin"`
	RowEnd      string `mapstructure:"row_end" yaml:"row_end"`
	ColumnBegin string `mapstructure:"column_begin" yaml:"column_begin"`
	ColumnEnd   string `mapstructure:"column_end" yaml:"column_end"`

	// DirectionBegin: %[1]s direction ("ltr" or "rtl"), %[2]s language code.
	DirectionBegin string `mapstructure:"direction_begin" yaml:"direction_begin"`
	DirectionEnd   string `mapstructure:"direction_end" yaml:"direction_end"`

	// BookHeading: %[1]s anchor, %[2]s book name.
	BookHeading string `mapstructure:"book_heading" yaml:"book_heading"`

	// ChapterHeading: %[1]s anchor, %[2]s book name, %[3]d chapter.
	ChapterHeading string `mapstructure:"chapter_heading" yaml:"chapter_heading"`

	// Verse, Note, Question: %[1]s anchor, %[2]s HTML.
	Verse    string `mapstructure:"verse" yaml:"verse"`
	Note     string `mapstructure:"note" yaml:"note"`
	Question string `mapstructure:"question" yaml:"question"`

	// WordLinks: %[1]s the rendered items. WordLinkItem: %[1]s anchor,
	// %[2]s word.
	WordLinks    string `mapstructure:"word_links" yaml:"word_links"`
	WordLinkItem string `mapstructure:"word_link_item" yaml:"word_link_item"`

	// GlossaryHeading: %[1]s anchor, %[2]s language name.
	GlossaryHeading string `mapstructure:"glossary_heading" yaml:"glossary_heading"`

	// Uses: %[1]s the rendered items. UseItem: %[1]s verse anchor,
	// %[2]s book name, %[3]d chapter, %[4]s verse.
	Uses    string `mapstructure:"uses" yaml:"uses"`
	UseItem string `mapstructure:"use_item" yaml:"use_item"`

	// Footnotes: %[1]s footnotes HTML.
	Footnotes string `mapstructure:"footnotes" yaml:"footnotes"`
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		RowBegin:        `<div class="row">`,
		RowEnd:          `</div>`,
		ColumnBegin:     `<div class="column">`,
		ColumnEnd:       `</div>`,
		DirectionBegin:  `<div dir="%[1]s" lang="%[2]s">`,
		DirectionEnd:    `</div>`,
		BookHeading:     `<h1 id="%[1]s" class="book">%[2]s</h1>`,
		ChapterHeading:  `<h2 id="%[1]s" class="c-num">%[2]s %[3]d</h2>`,
		Verse:           `<div id="%[1]s" class="verse">%[2]s</div>`,
		Note:            `<div id="%[1]s" class="tn-verse">%[2]s</div>`,
		Question:        `<div id="%[1]s" class="tq-verse">%[2]s</div>`,
		WordLinks:       `<ul class="tw-links">%[1]s</ul>`,
		WordLinkItem:    `<li><a href="#%[1]s">%[2]s</a></li>`,
		GlossaryHeading: `<h2 id="%[1]s" class="tw-glossary">%[2]s</h2>`,
		Uses:            `<h4>Uses:</h4><ul class="tw-uses">%[1]s</ul>`,
		UseItem:         `<li><a href="#%[1]s">%[2]s %[3]d:%[4]s</a></li>`,
		Footnotes:       `<div class="footnotes">%[1]s</div>`,
	}
}

// WithDefaults returns a copy where every empty template is taken from
// DefaultTemplates.
func (t Templates) WithDefaults() Templates {
	def := reflect.ValueOf(DefaultTemplates())
	v := reflect.ValueOf(&t).Elem()
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).String() == "" {
			v.Field(i).SetString(def.Field(i).String())
		}
	}
	return t
}

// sampleArgs are the argument lists each template is rendered with by
// Validate.
var sampleArgs = map[string][]any{
	"DirectionBegin":  {"ltr", "en"},
	"BookHeading":     {"en-52", "Colossians"},
	"ChapterHeading":  {"en-52-ch-001", "Colossians", 1},
	"Verse":           {"en-52-ch-001-v-001", "<p>text</p>"},
	"Note":            {"en-52-tn-ch-001-v-001", "<p>note</p>"},
	"Question":        {"en-52-tq-ch-001-v-001", "<p>question</p>"},
	"WordLinks":       {"<li></li>"},
	"WordLinkItem":    {"en-grace", "grace"},
	"GlossaryHeading": {"en-tw", "English"},
	"Uses":            {"<li></li>"},
	"UseItem":         {"en-52-ch-001-v-001", "Colossians", 1, "1"},
	"Footnotes":       {"<p>fn</p>"},
}

// Validate renders every template with sample arguments and reports empty
// templates and formatting verbs that do not match their arguments.
func (t Templates) Validate() error {
	v := reflect.ValueOf(t)
	typ := v.Type()
	for i := 0; i < v.NumField(); i++ {
		name := typ.Field(i).Name
		tmpl := v.Field(i).String()
		if tmpl == "" {
			return errors.NewValidation("templates."+typ.Field(i).Tag.Get("mapstructure"), "template is empty")
		}
		out := fmt.Sprintf(tmpl, sampleArgs[name]...)
		if strings.Contains(out, "%!") {
			return errors.NewValidation("templates."+typ.Field(i).Tag.Get("mapstructure"),
				fmt.Sprintf("bad format verbs in %q", tmpl))
		}
	}
	return nil
}

package assembly

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is an HTML text direction.
type Direction string

// Directions.
const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// rtlScripts are the ISO 15924 scripts written right to left.
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Syrc": true,
	"Thaa": true,
	"Nkoo": true,
	"Adlm": true,
	"Rohg": true,
	"Samr": true,
	"Mand": true,
}

// DirectionResolver decides the text direction of a language code.
type DirectionResolver struct {
	rtl map[string]bool
}

// NewDirectionResolver returns a resolver that treats the given language
// codes as right to left in addition to the codes whose likely script is.
func NewDirectionResolver(rtlLanguages ...string) *DirectionResolver {
	r := &DirectionResolver{rtl: make(map[string]bool, len(rtlLanguages))}
	for _, code := range rtlLanguages {
		r.rtl[strings.ToLower(code)] = true
	}
	return r
}

// Direction returns the direction of lang. Unparseable codes are LTR.
func (r *DirectionResolver) Direction(lang string) Direction {
	if r != nil && r.rtl[strings.ToLower(lang)] {
		return RTL
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return LTR
	}
	script, conf := tag.Script()
	if conf == language.No {
		return LTR
	}
	if rtlScripts[script.String()] {
		return RTL
	}
	return LTR
}

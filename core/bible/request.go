package bible

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
)

// ResourceRequest selects one book content unit.
type ResourceRequest struct {
	LangCode     string `json:"lang_code" yaml:"lang_code"`
	ResourceType string `json:"resource_type" yaml:"resource_type"`
	BookCode     string `json:"book_code" yaml:"book_code"`
}

// String returns "lang/resource/book".
func (r ResourceRequest) String() string {
	return r.LangCode + "/" + r.ResourceType + "/" + r.BookCode
}

// Kind returns the resource kind implied by the resource type.
func (r ResourceRequest) Kind() content.Kind {
	return KindForResource(r.ResourceType)
}

// helpsKinds maps helps resource types to their kind. Every other resource
// type is scripture.
var helpsKinds = map[string]content.Kind{
	"tn": content.KindNotes,
	"tq": content.KindQuestions,
	"tw": content.KindWords,
	"bc": content.KindCommentary,
}

// KindForResource returns the resource kind for a resource type name.
func KindForResource(resourceType string) content.Kind {
	rt := strings.ToLower(resourceType)
	rt = strings.TrimSuffix(rt, "-wa")
	if k, ok := helpsKinds[rt]; ok {
		return k
	}
	return content.KindScripture
}

// requestGrammar is the participle grammar for resource request lists.
// Examples: "en/ulb/col", "en/ulb/col+eph, fr/tn/col"
//
//nolint:govet // participle grammar tags are not standard struct tags
type requestGrammar struct {
	Items []*requestItem `@@ ( "," @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type requestItem struct {
	Lang     string   `@Ident "/"`
	Resource string   `@Ident "/"`
	Books    []string `@Ident ( "+" @Ident )*`
}

// requestLexer tokenizes request lists. Language codes may carry subtags
// ("es-419", "ur-deva") so identifiers allow inner hyphens.
var requestLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*`},
	{Name: "Punct", Pattern: `[/,+]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var requestParser = participle.MustBuild[requestGrammar](
	participle.Lexer(requestLexer),
	participle.Elide("Whitespace"),
)

// ParseRequests parses a comma-separated list of lang/resource/book
// selections. Several books may share one prefix with "+". Book codes are
// lowercased and must be canonical.
func ParseRequests(s string) ([]ResourceRequest, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewValidation("request", "empty request list")
	}

	parsed, err := requestParser.ParseString("", s)
	if err != nil {
		pe := errors.NewParse("resource request", "", fmt.Sprintf("%q: %v", s, err))
		pe.Err = err
		return nil, pe
	}

	var out []ResourceRequest
	for _, item := range parsed.Items {
		for _, book := range item.Books {
			code := strings.ToLower(book)
			if _, ok := Lookup(code); !ok {
				return nil, errors.NewValidation("book", fmt.Sprintf("unknown book code %q", book))
			}
			out = append(out, ResourceRequest{
				LangCode:     item.Lang,
				ResourceType: strings.ToLower(item.Resource),
				BookCode:     code,
			})
		}
	}
	return out, nil
}

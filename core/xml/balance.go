package xml

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// voidElements never take an end tag in HTML.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// BalanceError reports the first tag that breaks element nesting.
type BalanceError struct {
	Offset int    // Byte offset of the offending tag
	Tag    string // Offending tag, e.g. "</div>"
	Open   string // Element still open at that point, if any
}

func (e *BalanceError) Error() string {
	switch {
	case e.Open != "" && e.Tag == "":
		return fmt.Sprintf("<%s> at byte %d is never closed", e.Open, e.Offset)
	case e.Open != "":
		return fmt.Sprintf("unexpected %s at byte %d, <%s> is still open", e.Tag, e.Offset, e.Open)
	}
	return fmt.Sprintf("unexpected %s at byte %d", e.Tag, e.Offset)
}

type tagToken struct {
	end    bool
	name   string
	offset int
}

// CheckBalance verifies that every element of an HTML document is closed,
// in order. Void elements are skipped unless the document closes them
// explicitly somewhere, since layout templates may reuse their names as
// containers.
func CheckBalance(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var tags []tagToken
	closed := make(map[string]bool)
	z := html.NewTokenizer(bytes.NewReader(data))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return z.Err()
		}
		size := len(z.Raw())
		if tt == html.StartTagToken || tt == html.EndTagToken {
			name, _ := z.TagName()
			tag := tagToken{end: tt == html.EndTagToken, name: string(name), offset: offset}
			tags = append(tags, tag)
			if tag.end {
				closed[tag.name] = true
			}
		}
		offset += size
	}

	var stack []tagToken
	for _, tag := range tags {
		if voidElements[tag.name] && !closed[tag.name] {
			continue
		}
		if !tag.end {
			stack = append(stack, tag)
			continue
		}
		if len(stack) == 0 {
			return &BalanceError{Offset: tag.offset, Tag: "</" + tag.name + ">"}
		}
		top := stack[len(stack)-1]
		if top.name != tag.name {
			return &BalanceError{Offset: tag.offset, Tag: "</" + tag.name + ">", Open: top.name}
		}
		stack = stack[:len(stack)-1]
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &BalanceError{Offset: top.offset, Open: top.name}
	}
	return nil
}

// Package xml inspects assembled documents with XPath. HTML input is parsed
// with golang.org/x/net/html, converted to well-formed XML and queried
// through xmlquery, so outline and link checks work on any fragment
// sequence the assembler produced.
//
// Security Notes:
//   - The converted XML never carries a DOCTYPE or entity declarations:
//     text and attribute values are escaped during conversion, so no
//     entity expansion reaches the XML decoder.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document represents a parsed document.
type Document struct {
	root *xmlquery.Node
}

// Node represents a document node (element, text, attribute, etc.).
type Node struct {
	node *xmlquery.Node
}

// rootElement wraps the converted fragments so the XML has a single root.
const rootElement = "document"

// xmlName matches element and attribute names that are valid XML names
// without a namespace prefix.
var xmlName = regexp.MustCompile(`^[A-Za-z_][-A-Za-z0-9_.]*$`)

// ParseHTML parses an HTML document or a concatenation of HTML fragments.
func ParseHTML(r io.Reader) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<" + rootElement + ">")
	for _, n := range nodes {
		writeXML(&buf, n)
	}
	buf.WriteString("</" + rootElement + ">")

	root, err := xmlquery.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("converting HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// writeXML serializes an HTML node as well-formed XML. Elements whose name
// is not a plain XML name are unwrapped; comments and doctypes are dropped.
func writeXML(w *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		xml.EscapeText(w, []byte(n.Data))

	case html.ElementNode:
		if !xmlName.MatchString(n.Data) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				writeXML(w, c)
			}
			return
		}
		w.WriteString("<")
		w.WriteString(n.Data)
		seen := make(map[string]bool, len(n.Attr))
		for _, a := range n.Attr {
			if a.Namespace != "" || !xmlName.MatchString(a.Key) || strings.HasPrefix(a.Key, "xmlns") || seen[a.Key] {
				continue
			}
			seen[a.Key] = true
			w.WriteString(" ")
			w.WriteString(a.Key)
			w.WriteString(`="`)
			xml.EscapeText(w, []byte(a.Val))
			w.WriteString(`"`)
		}
		w.WriteString(">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeXML(w, c)
		}
		w.WriteString("</")
		w.WriteString(n.Data)
		w.WriteString(">")
	}
}

// Root returns the element wrapping the document content.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes := xmlquery.QuerySelectorAll(d.root, compiled)
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node,
// or nil.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node := xmlquery.QuerySelector(d.root, compiled)
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// XHTML returns the converted document content as XML, without the
// wrapping root element.
func (d *Document) XHTML() string {
	root := d.Root()
	if root == nil {
		return ""
	}
	return root.InnerXML()
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// InnerXML returns the inner XML of the node.
func (n *Node) InnerXML() string {
	if n.node == nil {
		return ""
	}
	var buf bytes.Buffer
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		buf.WriteString(child.OutputXML(true))
	}
	return buf.String()
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Attributes returns all attributes of the node.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}

	attrs := make(map[string]string)
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of a specific attribute.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

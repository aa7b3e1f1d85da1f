package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ParseError signals a malformed feed document. Fatal to the sync run.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("feed parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseFeed parses a feed document into its entries. Namespace prefixes
// are stripped so the same path works regardless of upstream prefix
// choices. A document with no entry collection parses to an empty slice.
// maxEntries > 0 truncates the result to bound downstream cost; entries
// past the cap are picked up on the next cycle once earlier ones settle.
func ParseFeed(r io.Reader, maxEntries int) ([]RawEntry, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var rootEl *xmlquery.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			rootEl = c
			break
		}
	}
	if rootEl == nil {
		return nil, &ParseError{Err: fmt.Errorf("document has no root element")}
	}

	root := convert(rootEl)
	entries := root.All("entry")
	if len(entries) == 0 {
		return []RawEntry{}, nil
	}
	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries, nil
}

// convert flattens an element into a Node: attributes keyed by local name,
// child elements grouped by local name, text content concatenated.
func convert(el *xmlquery.Node) *Node {
	n := &Node{}

	if len(el.Attr) > 0 {
		n.Attrs = make(map[string]string, len(el.Attr))
		for _, a := range el.Attr {
			n.Attrs[a.Name.Local] = a.Value
		}
	}

	var text strings.Builder
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			n.add(c.Data, convert(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}
	n.Text = strings.TrimSpace(text.String())

	return n
}

package feed

import "strings"

// Node is one element of the parsed feed tree. The upstream document has
// no stable schema, so entries stay as generic nested nodes until field
// extraction; only the extracted types are strongly typed.
//
// Attributes are merged into the child namespace: looking up a name first
// tries nested elements, then falls back to an attribute of the same name,
// so callers never care which encoding the upstream chose.
type Node struct {
	Text  string
	Attrs map[string]string
	kids  map[string][]*Node
}

// RawEntry is one feed entry in its native nested form. Transient; it only
// exists while a sync run is processing the fetched document.
type RawEntry = *Node

// All returns every occurrence of a child name. A single nested element, a
// repeated element and a same-named attribute all come back as a list.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	if kids := n.kids[name]; len(kids) > 0 {
		return kids
	}
	if v, ok := n.Attrs[name]; ok {
		return []*Node{{Text: v}}
	}
	return nil
}

// First walks a nested path taking the first occurrence at every step.
// Returns nil as soon as any step is absent.
func (n *Node) First(path ...string) *Node {
	cur := n
	for _, name := range path {
		kids := cur.All(name)
		if len(kids) == 0 {
			return nil
		}
		cur = kids[0]
	}
	return cur
}

// Value returns the trimmed text at a nested path, or "" when the path is
// absent.
func (n *Node) Value(path ...string) string {
	found := n.First(path...)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text)
}

// ToMap renders the node as plain maps and strings for audit storage.
// Leaf nodes collapse to their text; repeated children become lists.
// Attributes keep an "@" prefix so they stay distinguishable from elements.
func (n *Node) ToMap() any {
	if n == nil {
		return nil
	}
	if len(n.kids) == 0 && len(n.Attrs) == 0 {
		return n.Text
	}

	out := make(map[string]any, len(n.kids)+len(n.Attrs)+1)
	for k, v := range n.Attrs {
		out["@"+k] = v
	}
	for name, kids := range n.kids {
		if len(kids) == 1 {
			out[name] = kids[0].ToMap()
			continue
		}
		list := make([]any, 0, len(kids))
		for _, kid := range kids {
			list = append(list, kid.ToMap())
		}
		out[name] = list
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		out["#text"] = text
	}
	return out
}

func (n *Node) add(name string, child *Node) {
	if n.kids == nil {
		n.kids = make(map[string][]*Node)
	}
	n.kids[name] = append(n.kids[name], child)
}

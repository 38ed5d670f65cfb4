package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// NodeKind tags a Node.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Node is a generic XML node. Element names keep their namespace prefix as
// written, e.g. "xsi:type".
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*Node
}

// Element creates an element node.
func Element(name string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Name: name, Children: children}
}

// Leaf creates an element holding only text; empty text renders self-closed.
func Leaf(name, text string) *Node {
	n := Element(name)
	if text != "" {
		n.Children = []*Node{{Kind: TextNode, Text: text}}
	}
	return n
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first child element called name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child element called name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Content concatenates the direct text children of n.
func (n *Node) Content() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Kind == TextNode {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Attrs = append([]xml.Attr(nil), n.Attrs...)
	out.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out.Children[i] = c.Clone()
	}
	return &out
}

// String renders n with LF line endings and no byte-order mark.
func (n *Node) String() string {
	var p printer
	p.node(n, 0)
	return p.String()
}

// Document is a parsed skeleton or rendered output.
type Document struct {
	Prolog []*Node
	Root   *Node
	Epilog []*Node
}

func (d *Document) clone() *Document {
	out := &Document{Root: d.Root.Clone()}
	for _, n := range d.Prolog {
		out.Prolog = append(out.Prolog, n.Clone())
	}
	for _, n := range d.Epilog {
		out.Epilog = append(out.Epilog, n.Clone())
	}
	return out
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Parse reads an already decoded UTF-8 document. Whitespace-only text between
// sibling elements is indentation and is dropped; it is regenerated on output.
// Text that is an element's only content, and anything inside mixed content,
// is kept as written.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	// The input is UTF-8 by the time it gets here whatever the declaration says.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }

	doc := &Document{}
	var stack []*Node
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedSkeleton, err)
		}

		var n *Node
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{Kind: ElementNode, Name: qualified(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, xml.Attr{Name: a.Name, Value: a.Value})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("%w: second root element <%s>", ErrMalformedSkeleton, el.Name)
				}
				doc.Root = el
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, el)
			}
			stack = append(stack, el)
			continue
		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformedSkeleton, name)
			}
			stack = stack[:len(stack)-1]
			continue
		case xml.CharData:
			if len(stack) == 0 {
				if isBlank(string(t)) {
					continue
				}
				return nil, fmt.Errorf("%w: text outside the root element", ErrMalformedSkeleton)
			}
			n = &Node{Kind: TextNode, Text: string(t)}
		case xml.Comment:
			n = &Node{Kind: CommentNode, Text: string(t)}
		case xml.ProcInst:
			n = &Node{Kind: ProcInstNode, Name: t.Target, Text: string(t.Inst)}
		case xml.Directive:
			n = &Node{Kind: DirectiveNode, Text: string(t)}
		default:
			continue
		}

		switch {
		case len(stack) > 0:
			top := stack[len(stack)-1]
			top.Children = append(top.Children, n)
		case doc.Root == nil:
			doc.Prolog = append(doc.Prolog, n)
		default:
			doc.Epilog = append(doc.Epilog, n)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: <%s> is never closed", ErrMalformedSkeleton, stack[len(stack)-1].Name)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedSkeleton)
	}
	dropIndentation(doc.Root)
	return doc, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// mixed reports whether n holds text that is more than indentation.
func (n *Node) mixed() bool {
	for _, c := range n.Children {
		if c.Kind == TextNode && !isBlank(c.Text) {
			return true
		}
	}
	return false
}

// dropIndentation removes blank text from elements whose content is markup
// only. Mixed content and its whole subtree are left untouched.
func dropIndentation(n *Node) {
	if n.Kind != ElementNode || n.mixed() {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind != TextNode {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		// Blank text is the element's whole content.
		return
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
	for _, c := range n.Children {
		dropIndentation(c)
	}
}

// slot is the position of an element inside its parent. A nil parent means
// the document root.
type slot struct {
	parent *Node
	index  int
}

// locate finds every element called name, in document order.
func (d *Document) locate(name string) []slot {
	var out []slot
	if d.Root.Name == name {
		out = append(out, slot{})
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		for i, c := range n.Children {
			if c.Kind != ElementNode {
				continue
			}
			if c.Name == name {
				out = append(out, slot{parent: n, index: i})
			}
			walk(c)
		}
	}
	walk(d.Root)
	return out
}

func (d *Document) at(s slot) *Node {
	if s.parent == nil {
		return d.Root
	}
	return s.parent.Children[s.index]
}

func (d *Document) set(s slot, n *Node) {
	if s.parent == nil {
		d.Root = n
		return
	}
	s.parent.Children[s.index] = n
}

// section returns the single element called name.
func (d *Document) section(name string) (slot, error) {
	found := d.locate(name)
	switch len(found) {
	case 0:
		return slot{}, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
	case 1:
		return found[0], nil
	}
	return slot{}, fmt.Errorf("%w: %s appears %d times", ErrDuplicateSection, name, len(found))
}

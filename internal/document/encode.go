package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const indentUnit = "  "

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeText escapes character data the way the target format expects:
// ampersands and both angle brackets.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// printer writes the LF form of a tree.
type printer struct {
	strings.Builder
}

func (p *printer) document(d *Document) {
	for _, n := range d.Prolog {
		p.node(n, 0)
	}
	p.node(d.Root, 0)
	for _, n := range d.Epilog {
		p.node(n, 0)
	}
}

func (p *printer) node(n *Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch n.Kind {
	case ElementNode:
		p.WriteString(indent)
		p.WriteString("<")
		p.WriteString(n.Name)
		p.attrs(n)
		switch {
		case len(n.Children) == 0:
			p.WriteString(" />\n")
		case n.hasText():
			// Text content is written exactly as held, children included.
			p.WriteString(">")
			for _, c := range n.Children {
				p.inline(c)
			}
			p.WriteString("</" + n.Name + ">\n")
		default:
			p.WriteString(">\n")
			for _, c := range n.Children {
				p.node(c, depth+1)
			}
			p.WriteString(indent + "</" + n.Name + ">\n")
		}
	case TextNode:
		p.WriteString(indent + EscapeText(n.Text) + "\n")
	case CommentNode:
		p.WriteString(indent + "<!--" + n.Text + "-->\n")
	case ProcInstNode:
		if n.Name == "xml" {
			// Output is always re-encoded as UTF-8.
			p.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
			return
		}
		p.WriteString(indent + "<?" + n.Name + " " + n.Text + "?>\n")
	case DirectiveNode:
		p.WriteString(indent + "<!" + n.Text + ">\n")
	}
}

func (p *printer) attrs(n *Node) {
	for _, a := range n.Attrs {
		fmt.Fprintf(p, ` %s="%s"`, qualified(a.Name), attrEscaper.Replace(a.Value))
	}
}

// inline writes n without indentation or line breaks of its own.
func (p *printer) inline(n *Node) {
	switch n.Kind {
	case ElementNode:
		p.WriteString("<" + n.Name)
		p.attrs(n)
		if len(n.Children) == 0 {
			p.WriteString(" />")
			return
		}
		p.WriteString(">")
		for _, c := range n.Children {
			p.inline(c)
		}
		p.WriteString("</" + n.Name + ">")
	case TextNode:
		p.WriteString(EscapeText(n.Text))
	case CommentNode:
		p.WriteString("<!--" + n.Text + "-->")
	case ProcInstNode:
		p.WriteString("<?" + n.Name + " " + n.Text + "?>")
	case DirectiveNode:
		p.WriteString("<!" + n.Text + ">")
	}
}

func (n *Node) hasText() bool {
	for _, c := range n.Children {
		if c.Kind == TextNode {
			return true
		}
	}
	return false
}

// Bytes serializes d with a UTF-8 byte-order mark and CRLF line endings.
func (d *Document) Bytes() ([]byte, error) {
	var p printer
	p.document(d)
	out, _, err := transform.Bytes(transform.Chain(crlf{}, unicode.UTF8BOM.NewEncoder()), []byte(p.String()))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

// crlf rewrites LF and bare CR as CRLF and passes existing CRLF through.
type crlf struct {
	transform.NopResetter
}

func (crlf) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c != '\r' && c != '\n' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		consumed := 1
		if c == '\r' {
			if nSrc+1 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				consumed = 2
			}
		}
		if nDst+2 > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst], dst[nDst+1] = '\r', '\n'
		nDst += 2
		nSrc += consumed
	}
	return nDst, nSrc, nil
}

package deluge

import (
	"bytes"
	"strings"
)

type attr struct {
	name  string
	value string
}

// element is a minimal ordered XML tree. An element holds either text or
// children, never both.
type element struct {
	name     string
	attrs    []attr
	children []*element
	text     string
}

func newElement(name string, attrs ...attr) *element {
	return &element{name: name, attrs: attrs}
}

func (e *element) add(children ...*element) *element {
	e.children = append(e.children, children...)
	return e
}

func a(name, value string) attr {
	return attr{name: name, value: value}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\t", "&#x9;",
	"\n", "&#xA;",
	"\r", "&#xD;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// write renders e the way the firmware does: each attribute on its own line
// one level deeper than the tag, children indented by one tab.
func (e *element) write(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("\t", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.name)
	for _, at := range e.attrs {
		buf.WriteByte('\n')
		buf.WriteString(indent)
		buf.WriteByte('\t')
		buf.WriteString(at.name)
		buf.WriteString(`="`)
		buf.WriteString(attrEscaper.Replace(at.value))
		buf.WriteByte('"')
	}

	switch {
	case e.text != "":
		buf.WriteByte('>')
		buf.WriteString(textEscaper.Replace(e.text))
	case len(e.children) == 0:
		buf.WriteString(" />\n")
		return
	default:
		buf.WriteString(">\n")
		for _, child := range e.children {
			child.write(buf, depth+1)
		}
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(e.name)
	buf.WriteString(">\n")
}

package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// HTMLNode is the marker interface for the structural nodes the html-rewrite
// pass introduces when partitioning raw text inside an HTML-content template
// (spec.md §4.5). desugar-html is the inverse: it collapses these back into
// RawTextNode for backends that cannot consume HTML structure.
type HTMLNode interface {
	Node
	htmlNode()
}

type htmlBase struct{ base }

func (*htmlBase) htmlNode() {}

// TagOpenNode is an opening tag, e.g. <div class="x">. Attrs are owned
// children so print directives inside attribute values still run through the
// normal expression passes.
type TagOpenNode struct {
	htmlBase
	Name       string
	Attrs      []*AttributeNode
	SelfClosed bool
}

func NewTagOpen(gen idgen.Generator, span source.Span, name string, attrs []*AttributeNode) *TagOpenNode {
	n := &TagOpenNode{htmlBase: htmlBase{base: newBase(gen, span)}, Name: name, Attrs: attrs}
	for _, a := range attrs {
		adopt(n, a)
	}
	return n
}

func (*TagOpenNode) Kind() Kind { return KindTagOpen }

func (n *TagOpenNode) Children() []Node {
	out := make([]Node, len(n.Attrs))
	for i, a := range n.Attrs {
		out[i] = a
	}
	return out
}

func (n *TagOpenNode) ReplaceChild(old, replacement Node) bool {
	repl, ok := replacement.(*AttributeNode)
	if !ok {
		return false
	}
	for i, a := range n.Attrs {
		if Node(a) == old {
			n.Attrs[i] = repl
			adopt(n, repl)
			return true
		}
	}
	return false
}

func (n *TagOpenNode) RemoveChild(target Node) bool {
	for i, a := range n.Attrs {
		if Node(a) == target {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// TagCloseNode is a closing tag, e.g. </div>.
type TagCloseNode struct {
	htmlBase
	Name string
}

func NewTagClose(gen idgen.Generator, span source.Span, name string) *TagCloseNode {
	return &TagCloseNode{htmlBase: htmlBase{base: newBase(gen, span)}, Name: name}
}

func (*TagCloseNode) Kind() Kind                  { return KindTagClose }
func (*TagCloseNode) Children() []Node            { return nil }
func (*TagCloseNode) ReplaceChild(_, _ Node) bool { return false }
func (*TagCloseNode) RemoveChild(_ Node) bool     { return false }

// AttributeNode is `name="value"` (or a bare boolean attribute with Value nil).
type AttributeNode struct {
	htmlBase
	Name  string
	Value *AttrValueNode
}

func NewAttribute(gen idgen.Generator, span source.Span, name string, value *AttrValueNode) *AttributeNode {
	n := &AttributeNode{htmlBase: htmlBase{base: newBase(gen, span)}, Name: name, Value: value}
	adopt(n, value)
	return n
}

func (*AttributeNode) Kind() Kind { return KindAttribute }

func (n *AttributeNode) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

func (n *AttributeNode) ReplaceChild(old, replacement Node) bool {
	if Node(n.Value) != old {
		return false
	}
	repl, ok := replacement.(*AttrValueNode)
	if !ok {
		return false
	}
	n.Value = repl
	adopt(n, repl)
	return true
}

func (n *AttributeNode) RemoveChild(target Node) bool {
	if Node(n.Value) != target {
		return false
	}
	n.Value = nil
	return true
}

// AttrValueNode holds the ordered content of an attribute value: raw text and
// print/command children interleaved (e.g. `"item-{$id}"`).
type AttrValueNode struct {
	htmlBase
	Content []Node
}

func NewAttrValue(gen idgen.Generator, span source.Span, content []Node) *AttrValueNode {
	n := &AttrValueNode{htmlBase: htmlBase{base: newBase(gen, span)}, Content: content}
	for _, c := range content {
		adopt(n, c)
	}
	return n
}

func (*AttrValueNode) Kind() Kind { return KindAttrValue }

func (n *AttrValueNode) Children() []Node {
	out := make([]Node, len(n.Content))
	copy(out, n.Content)
	return out
}

func (n *AttrValueNode) ReplaceChild(old, replacement Node) bool {
	for i, c := range n.Content {
		if c == old {
			n.Content[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *AttrValueNode) RemoveChild(target Node) bool {
	for i, c := range n.Content {
		if c == target {
			n.Content = append(n.Content[:i], n.Content[i+1:]...)
			return true
		}
	}
	return false
}

// SelfClosedTagNode is a void/self-closing element, e.g. <br/>.
type SelfClosedTagNode struct {
	htmlBase
	Name  string
	Attrs []*AttributeNode
}

func NewSelfClosedTag(gen idgen.Generator, span source.Span, name string, attrs []*AttributeNode) *SelfClosedTagNode {
	n := &SelfClosedTagNode{htmlBase: htmlBase{base: newBase(gen, span)}, Name: name, Attrs: attrs}
	for _, a := range attrs {
		adopt(n, a)
	}
	return n
}

func (*SelfClosedTagNode) Kind() Kind { return KindSelfClosedTag }

func (n *SelfClosedTagNode) Children() []Node {
	out := make([]Node, len(n.Attrs))
	for i, a := range n.Attrs {
		out[i] = a
	}
	return out
}

func (n *SelfClosedTagNode) ReplaceChild(old, replacement Node) bool {
	repl, ok := replacement.(*AttributeNode)
	if !ok {
		return false
	}
	for i, a := range n.Attrs {
		if Node(a) == old {
			n.Attrs[i] = repl
			adopt(n, repl)
			return true
		}
	}
	return false
}

func (n *SelfClosedTagNode) RemoveChild(target Node) bool {
	for i, a := range n.Attrs {
		if Node(a) == target {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

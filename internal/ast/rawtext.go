package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// RawTextNode is a run of literal template source with no commands in it.
// combine-consecutive-raw-text merges adjacent siblings of this kind into
// one, covering their spans with source.Span.Cover (spec.md §4.5,
// SPEC_FULL.md §6).
type RawTextNode struct {
	base
	Text string
}

func NewRawText(gen idgen.Generator, span source.Span, text string) *RawTextNode {
	return &RawTextNode{base: newBase(gen, span), Text: text}
}

func (*RawTextNode) Kind() Kind                  { return KindRawText }
func (*RawTextNode) Children() []Node            { return nil }
func (*RawTextNode) ReplaceChild(_, _ Node) bool { return false }
func (*RawTextNode) RemoveChild(_ Node) bool     { return false }

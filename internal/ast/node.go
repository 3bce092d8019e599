// Package ast defines the mutable tree the pass pipeline rewrites (spec.md
// §3). Node kinds form a closed tagged union per family (Command, Expr,
// HTML); every concrete type embeds base for id/span/parent bookkeeping and
// implements Node, so generic passes (combine-raw-text, the optimizer, the
// desugarer) can walk and rewrite any family without a type switch, while
// passes that care about one family narrow through the family marker
// interfaces (Command, Expr, HTMLNode).
package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// Kind tags every node for fast dispatch without a type switch. It is a
// closed set: adding a node kind means adding a case here and in every
// exhaustive switch that claims to cover Kind.
type Kind uint8

const (
	KindFile Kind = iota
	KindTemplate
	KindRawText
	KindTagOpen
	KindTagClose
	KindAttribute
	KindAttrValue
	KindSelfClosedTag
	KindMsg
	KindCall
	KindFor
	KindIf
	KindSwitch
	KindLet
	KindPrint
	KindVelog
	KindPlaceholder
	KindVarRef
	KindLiteral
	KindGlobalRef
	KindBinaryExpr
	KindUnaryExpr
	KindFieldAccess
	KindListLiteral
	KindMapLiteral
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindTemplate:
		return "Template"
	case KindRawText:
		return "RawText"
	case KindTagOpen:
		return "TagOpen"
	case KindTagClose:
		return "TagClose"
	case KindAttribute:
		return "Attribute"
	case KindAttrValue:
		return "AttrValue"
	case KindSelfClosedTag:
		return "SelfClosedTag"
	case KindMsg:
		return "Msg"
	case KindCall:
		return "Call"
	case KindFor:
		return "For"
	case KindIf:
		return "If"
	case KindSwitch:
		return "Switch"
	case KindLet:
		return "Let"
	case KindPrint:
		return "Print"
	case KindVelog:
		return "Velog"
	case KindPlaceholder:
		return "Placeholder"
	case KindVarRef:
		return "VarRef"
	case KindLiteral:
		return "Literal"
	case KindGlobalRef:
		return "GlobalRef"
	case KindBinaryExpr:
		return "BinaryExpr"
	case KindUnaryExpr:
		return "UnaryExpr"
	case KindFieldAccess:
		return "FieldAccess"
	case KindListLiteral:
		return "ListLiteral"
	case KindMapLiteral:
		return "MapLiteral"
	default:
		return "Unknown"
	}
}

// Node is the uniform interface every AST node implements (spec.md §3). The
// unexported remember method keeps the union closed to this package: only
// types defined here can be a Node, the same way a sealed class hierarchy
// would in a language with one.
type Node interface {
	ID() idgen.ID
	Kind() Kind
	Span() source.Span
	SetSpan(source.Span)
	Parent() Node
	// Children returns the node's owned children in document order. The
	// returned slice is a fresh copy; mutating it does not affect the tree.
	Children() []Node
	// ReplaceChild swaps old for replacement in this node's child list and
	// repairs replacement's parent pointer. It reports whether old was found.
	ReplaceChild(old, replacement Node) bool
	// RemoveChild deletes target from this node's child list. It reports
	// whether target was found.
	RemoveChild(target Node) bool

	remember()
}

// base is embedded by every concrete node type and supplies the id/span/
// parent bookkeeping spec.md §3 requires of every node.
type base struct {
	id     idgen.ID
	span   source.Span
	parent Node
}

func (b *base) ID() idgen.ID          { return b.id }
func (b *base) Span() source.Span     { return b.span }
func (b *base) SetSpan(sp source.Span) { b.span = sp }
func (b *base) Parent() Node          { return b.parent }
func (b *base) setParent(p Node)      { b.parent = p }
func (b *base) remember()             {}

// newBase allocates a base with a fresh id from gen and the given span. Concrete
// constructors call this first so every node, including ones synthesized
// mid-pipeline, gets a unique id (spec.md §4.2).
func newBase(gen idgen.Generator, span source.Span) base {
	return base{id: gen.Next(), span: span}
}

// adopt sets child's parent to owner. Every constructor and every
// ReplaceChild/append-child helper must call this so the parent pointer
// invariant (spec.md §3, §8) never drifts from the actual child-list
// membership.
func adopt(owner Node, child Node) {
	if child == nil {
		return
	}
	switch c := child.(type) {
	case *FileNode:
		c.setParent(owner)
	case *TemplateNode:
		c.setParent(owner)
	case *RawTextNode:
		c.setParent(owner)
	case *TagOpenNode:
		c.setParent(owner)
	case *TagCloseNode:
		c.setParent(owner)
	case *AttributeNode:
		c.setParent(owner)
	case *AttrValueNode:
		c.setParent(owner)
	case *SelfClosedTagNode:
		c.setParent(owner)
	case *MsgNode:
		c.setParent(owner)
	case *CallNode:
		c.setParent(owner)
	case *ForNode:
		c.setParent(owner)
	case *IfNode:
		c.setParent(owner)
	case *SwitchNode:
		c.setParent(owner)
	case *LetNode:
		c.setParent(owner)
	case *PrintNode:
		c.setParent(owner)
	case *VelogNode:
		c.setParent(owner)
	case *PlaceholderNode:
		c.setParent(owner)
	case *VarRefNode:
		c.setParent(owner)
	case *LiteralNode:
		c.setParent(owner)
	case *GlobalRefNode:
		c.setParent(owner)
	case *BinaryExprNode:
		c.setParent(owner)
	case *UnaryExprNode:
		c.setParent(owner)
	case *FieldAccessNode:
		c.setParent(owner)
	case *ListLiteralNode:
		c.setParent(owner)
	case *MapLiteralNode:
		c.setParent(owner)
	}
}

package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// Type is the result of resolve-types (spec.md §4.5). UnknownType is assigned
// to any expression whose children already carry an error, so later passes
// can short-circuit instead of cascading diagnostics (spec.md §7).
type Type struct {
	Name    string
	Unknown bool
}

// UnknownType is the sentinel assigned when type resolution gives up on a
// subtree because a child already failed.
var UnknownType = Type{Name: "?", Unknown: true}

// Expr is the marker interface for the expression family. Every expression
// node carries a ResolvedType slot filled in by resolve-types; it is the zero
// Type (not Unknown) until that pass runs.
type Expr interface {
	Node
	ResolvedType() Type
	SetResolvedType(Type)
	exprNode()
}

type exprBase struct {
	base
	typ Type
}

func (e *exprBase) ResolvedType() Type        { return e.typ }
func (e *exprBase) SetResolvedType(t Type)    { e.typ = t }
func (e *exprBase) exprNode()                 {}

// LiteralKind distinguishes the primitive literal forms.
type LiteralKind uint8

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralFloat
	LiteralString
)

// LiteralNode is a constant value written directly in an expression.
type LiteralNode struct {
	exprBase
	LitKind LiteralKind
	Raw     string // source text, e.g. "42", "\"hi\"", "true"
}

func NewLiteral(gen idgen.Generator, span source.Span, kind LiteralKind, raw string) *LiteralNode {
	return &LiteralNode{exprBase: exprBase{base: newBase(gen, span)}, LitKind: kind, Raw: raw}
}

func (*LiteralNode) Kind() Kind                             { return KindLiteral }
func (*LiteralNode) Children() []Node                       { return nil }
func (*LiteralNode) ReplaceChild(_, _ Node) bool            { return false }
func (*LiteralNode) RemoveChild(_ Node) bool                { return false }

// VarRefNode references a local variable: a param, prop, let-bound, or
// for-loop-bound name. Decl is filled in by resolve-names; nil until then.
type VarRefNode struct {
	exprBase
	Name string
	Decl Node // the declaring LetNode/ForNode/param site, set by resolve-names
}

func NewVarRef(gen idgen.Generator, span source.Span, name string) *VarRefNode {
	return &VarRefNode{exprBase: exprBase{base: newBase(gen, span)}, Name: name}
}

func (*VarRefNode) Kind() Kind                  { return KindVarRef }
func (*VarRefNode) Children() []Node            { return nil }
func (*VarRefNode) ReplaceChild(_, _ Node) bool { return false }
func (*VarRefNode) RemoveChild(_ Node) bool     { return false }

// GlobalRefNode references a compile-time global by dotted name. The
// global-rewrite pass replaces these with LiteralNodes once resolved
// (spec.md §4.5).
type GlobalRefNode struct {
	exprBase
	Name string
}

func NewGlobalRef(gen idgen.Generator, span source.Span, name string) *GlobalRefNode {
	return &GlobalRefNode{exprBase: exprBase{base: newBase(gen, span)}, Name: name}
}

func (*GlobalRefNode) Kind() Kind                  { return KindGlobalRef }
func (*GlobalRefNode) Children() []Node            { return nil }
func (*GlobalRefNode) ReplaceChild(_, _ Node) bool { return false }
func (*GlobalRefNode) RemoveChild(_ Node) bool     { return false }

// BinaryExprNode is a binary operator expression, e.g. $a + $b.
type BinaryExprNode struct {
	exprBase
	Op          string
	Left, Right Expr
}

func NewBinaryExpr(gen idgen.Generator, span source.Span, op string, left, right Expr) *BinaryExprNode {
	n := &BinaryExprNode{exprBase: exprBase{base: newBase(gen, span)}, Op: op, Left: left, Right: right}
	adopt(n, left)
	adopt(n, right)
	return n
}

func (*BinaryExprNode) Kind() Kind { return KindBinaryExpr }

func (n *BinaryExprNode) Children() []Node {
	out := make([]Node, 0, 2)
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

func (n *BinaryExprNode) ReplaceChild(old, replacement Node) bool {
	repl, ok := asExpr(replacement)
	if !ok {
		return false
	}
	switch {
	case n.Left == old:
		n.Left = repl
	case n.Right == old:
		n.Right = repl
	default:
		return false
	}
	adopt(n, repl)
	return true
}

func (n *BinaryExprNode) RemoveChild(target Node) bool {
	switch {
	case n.Left == target:
		n.Left = nil
	case n.Right == target:
		n.Right = nil
	default:
		return false
	}
	return true
}

// UnaryExprNode is a unary operator expression, e.g. -$a or not $a.
type UnaryExprNode struct {
	exprBase
	Op      string
	Operand Expr
}

func NewUnaryExpr(gen idgen.Generator, span source.Span, op string, operand Expr) *UnaryExprNode {
	n := &UnaryExprNode{exprBase: exprBase{base: newBase(gen, span)}, Op: op, Operand: operand}
	adopt(n, operand)
	return n
}

func (*UnaryExprNode) Kind() Kind { return KindUnaryExpr }

func (n *UnaryExprNode) Children() []Node {
	if n.Operand == nil {
		return nil
	}
	return []Node{n.Operand}
}

func (n *UnaryExprNode) ReplaceChild(old, replacement Node) bool {
	if n.Operand != old {
		return false
	}
	repl, ok := asExpr(replacement)
	if !ok {
		return false
	}
	n.Operand = repl
	adopt(n, repl)
	return true
}

func (n *UnaryExprNode) RemoveChild(target Node) bool {
	if n.Operand != target {
		return false
	}
	n.Operand = nil
	return true
}

// FieldAccessNode is a `.field` access on a base expression.
type FieldAccessNode struct {
	exprBase
	Base  Expr
	Field string
}

func NewFieldAccess(gen idgen.Generator, span source.Span, base_ Expr, field string) *FieldAccessNode {
	n := &FieldAccessNode{exprBase: exprBase{base: newBase(gen, span)}, Base: base_, Field: field}
	adopt(n, base_)
	return n
}

func (*FieldAccessNode) Kind() Kind { return KindFieldAccess }

func (n *FieldAccessNode) Children() []Node {
	if n.Base == nil {
		return nil
	}
	return []Node{n.Base}
}

func (n *FieldAccessNode) ReplaceChild(old, replacement Node) bool {
	if n.Base != old {
		return false
	}
	repl, ok := asExpr(replacement)
	if !ok {
		return false
	}
	n.Base = repl
	adopt(n, repl)
	return true
}

func (n *FieldAccessNode) RemoveChild(target Node) bool {
	if n.Base != target {
		return false
	}
	n.Base = nil
	return true
}

// ListLiteralNode is a `[a, b, c]` literal.
type ListLiteralNode struct {
	exprBase
	Items []Expr
}

func NewListLiteral(gen idgen.Generator, span source.Span, items []Expr) *ListLiteralNode {
	n := &ListLiteralNode{exprBase: exprBase{base: newBase(gen, span)}, Items: items}
	for _, it := range items {
		adopt(n, it)
	}
	return n
}

func (*ListLiteralNode) Kind() Kind { return KindListLiteral }

func (n *ListLiteralNode) Children() []Node {
	out := make([]Node, len(n.Items))
	for i, it := range n.Items {
		out[i] = it
	}
	return out
}

func (n *ListLiteralNode) ReplaceChild(old, replacement Node) bool {
	repl, ok := asExpr(replacement)
	if !ok {
		return false
	}
	for i, it := range n.Items {
		if Node(it) == old {
			n.Items[i] = repl
			adopt(n, repl)
			return true
		}
	}
	return false
}

func (n *ListLiteralNode) RemoveChild(target Node) bool {
	for i, it := range n.Items {
		if Node(it) == target {
			n.Items = append(n.Items[:i], n.Items[i+1:]...)
			return true
		}
	}
	return false
}

// MapEntry is one key/value pair of a MapLiteralNode.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLiteralNode is a `[k1: v1, k2: v2]` map literal.
type MapLiteralNode struct {
	exprBase
	Entries []MapEntry
}

func NewMapLiteral(gen idgen.Generator, span source.Span, entries []MapEntry) *MapLiteralNode {
	n := &MapLiteralNode{exprBase: exprBase{base: newBase(gen, span)}, Entries: entries}
	for _, e := range entries {
		adopt(n, e.Key)
		adopt(n, e.Value)
	}
	return n
}

func (*MapLiteralNode) Kind() Kind { return KindMapLiteral }

func (n *MapLiteralNode) Children() []Node {
	out := make([]Node, 0, len(n.Entries)*2)
	for _, e := range n.Entries {
		if e.Key != nil {
			out = append(out, e.Key)
		}
		if e.Value != nil {
			out = append(out, e.Value)
		}
	}
	return out
}

func (n *MapLiteralNode) ReplaceChild(old, replacement Node) bool {
	repl, ok := asExpr(replacement)
	if !ok {
		return false
	}
	for i := range n.Entries {
		switch old {
		case Node(n.Entries[i].Key):
			n.Entries[i].Key = repl
			adopt(n, repl)
			return true
		case Node(n.Entries[i].Value):
			n.Entries[i].Value = repl
			adopt(n, repl)
			return true
		}
	}
	return false
}

func (n *MapLiteralNode) RemoveChild(target Node) bool {
	for i := range n.Entries {
		switch target {
		case Node(n.Entries[i].Key):
			n.Entries[i].Key = nil
			return true
		case Node(n.Entries[i].Value):
			n.Entries[i].Value = nil
			return true
		}
	}
	return false
}

func asExpr(n Node) (Expr, bool) {
	e, ok := n.(Expr)
	return e, ok
}

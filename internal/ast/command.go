package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// Command is the marker interface for control-flow and call nodes: the
// template-body constructs that are neither raw text nor bare expressions
// (spec.md §3).
type Command interface {
	Node
	commandNode()
}

type cmdBase struct{ base }

func (*cmdBase) commandNode() {}

// MsgNode wraps translatable content. Desc and Meaning feed the translation
// console; Body is the mixed raw-text/placeholder/command body that
// message-placeholder-insertion rewrites in place (spec.md §4.5).
type MsgNode struct {
	cmdBase
	Desc     string
	Meaning  string
	Hidden   bool
	Body []Node
}

func NewMsg(gen idgen.Generator, span source.Span, desc, meaning string, children []Node) *MsgNode {
	n := &MsgNode{cmdBase: cmdBase{base: newBase(gen, span)}, Desc: desc, Meaning: meaning, Body: children}
	for _, c := range children {
		adopt(n, c)
	}
	return n
}

func (*MsgNode) Kind() Kind { return KindMsg }

func (n *MsgNode) Children() []Node {
	out := make([]Node, len(n.Body))
	copy(out, n.Body)
	return out
}

func (n *MsgNode) ReplaceChild(old, replacement Node) bool {
	for i, c := range n.Body {
		if c == old {
			n.Body[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *MsgNode) RemoveChild(target Node) bool {
	for i, c := range n.Body {
		if c == target {
			n.Body = append(n.Body[:i], n.Body[i+1:]...)
			return true
		}
	}
	return false
}

// CallParam is one `{param name: expr /}` or block-form `{param name}...{/param}`
// argument to a CallNode.
type CallParam struct {
	Name    string
	Value   Expr   // set for the inline form, nil for the block form
	Content []Node // set for the block form, nil for the inline form
}

// CallNode invokes another template by its fully qualified or partial name.
// Callee stays the source text; CrossTemplateChecks looks it up in the
// registry (registry.LookupInNamespace) without rewriting it.
type CallNode struct {
	cmdBase
	Callee string
	Data   Expr // non-nil for `data="all"`/`data="$expr"`, nil otherwise
	Params []CallParam
}

func NewCall(gen idgen.Generator, span source.Span, callee string, data Expr, params []CallParam) *CallNode {
	n := &CallNode{cmdBase: cmdBase{base: newBase(gen, span)}, Callee: callee, Data: data, Params: params}
	adopt(n, data)
	for _, p := range params {
		adopt(n, p.Value)
		for _, c := range p.Content {
			adopt(n, c)
		}
	}
	return n
}

func (*CallNode) Kind() Kind { return KindCall }

func (n *CallNode) Children() []Node {
	out := make([]Node, 0, len(n.Params)+1)
	if n.Data != nil {
		out = append(out, n.Data)
	}
	for _, p := range n.Params {
		if p.Value != nil {
			out = append(out, p.Value)
		}
		out = append(out, p.Content...)
	}
	return out
}

func (n *CallNode) ReplaceChild(old, replacement Node) bool {
	if n.Data == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.Data = repl
		adopt(n, repl)
		return true
	}
	for i := range n.Params {
		p := &n.Params[i]
		if p.Value != nil && Node(p.Value) == old {
			repl, ok := asExpr(replacement)
			if !ok {
				return false
			}
			p.Value = repl
			adopt(n, repl)
			return true
		}
		for j, c := range p.Content {
			if c == old {
				p.Content[j] = replacement
				adopt(n, replacement)
				return true
			}
		}
	}
	return false
}

func (n *CallNode) RemoveChild(target Node) bool {
	if n.Data != nil && Node(n.Data) == target {
		n.Data = nil
		return true
	}
	for i := range n.Params {
		p := &n.Params[i]
		if p.Value != nil && Node(p.Value) == target {
			p.Value = nil
			return true
		}
		for j, c := range p.Content {
			if c == target {
				p.Content = append(p.Content[:j], p.Content[j+1:]...)
				return true
			}
		}
	}
	return false
}

// ForNode is a `{for $x in expr}...{ifempty}...{/for}` loop.
type ForNode struct {
	cmdBase
	VarName string
	List    Expr
	Body    []Node
	Empty   []Node // ifempty branch, nil if absent
}

func NewFor(gen idgen.Generator, span source.Span, varName string, list Expr, body, empty []Node) *ForNode {
	n := &ForNode{cmdBase: cmdBase{base: newBase(gen, span)}, VarName: varName, List: list, Body: body, Empty: empty}
	adopt(n, list)
	for _, c := range body {
		adopt(n, c)
	}
	for _, c := range empty {
		adopt(n, c)
	}
	return n
}

func (*ForNode) Kind() Kind { return KindFor }

func (n *ForNode) Children() []Node {
	out := make([]Node, 0, len(n.Body)+len(n.Empty)+1)
	if n.List != nil {
		out = append(out, n.List)
	}
	out = append(out, n.Body...)
	out = append(out, n.Empty...)
	return out
}

func (n *ForNode) ReplaceChild(old, replacement Node) bool {
	if n.List == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.List = repl
		adopt(n, repl)
		return true
	}
	for i, c := range n.Body {
		if c == old {
			n.Body[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	for i, c := range n.Empty {
		if c == old {
			n.Empty[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *ForNode) RemoveChild(target Node) bool {
	if n.List != nil && Node(n.List) == target {
		n.List = nil
		return true
	}
	for i, c := range n.Body {
		if c == target {
			n.Body = append(n.Body[:i], n.Body[i+1:]...)
			return true
		}
	}
	for i, c := range n.Empty {
		if c == target {
			n.Empty = append(n.Empty[:i], n.Empty[i+1:]...)
			return true
		}
	}
	return false
}

// IfBranch is one `{if expr}`/`{elseif expr}` arm.
type IfBranch struct {
	Cond Expr
	Body []Node
}

// IfNode is an `{if}...{elseif}...{else}...{/if}` chain.
type IfNode struct {
	cmdBase
	Branches []IfBranch
	Else     []Node // nil if no {else}
}

func NewIf(gen idgen.Generator, span source.Span, branches []IfBranch, els []Node) *IfNode {
	n := &IfNode{cmdBase: cmdBase{base: newBase(gen, span)}, Branches: branches, Else: els}
	for _, b := range branches {
		adopt(n, b.Cond)
		for _, c := range b.Body {
			adopt(n, c)
		}
	}
	for _, c := range els {
		adopt(n, c)
	}
	return n
}

func (*IfNode) Kind() Kind { return KindIf }

func (n *IfNode) Children() []Node {
	out := make([]Node, 0)
	for _, b := range n.Branches {
		if b.Cond != nil {
			out = append(out, b.Cond)
		}
		out = append(out, b.Body...)
	}
	out = append(out, n.Else...)
	return out
}

func (n *IfNode) ReplaceChild(old, replacement Node) bool {
	for i := range n.Branches {
		b := &n.Branches[i]
		if b.Cond != nil && Node(b.Cond) == old {
			repl, ok := asExpr(replacement)
			if !ok {
				return false
			}
			b.Cond = repl
			adopt(n, repl)
			return true
		}
		for j, c := range b.Body {
			if c == old {
				b.Body[j] = replacement
				adopt(n, replacement)
				return true
			}
		}
	}
	for i, c := range n.Else {
		if c == old {
			n.Else[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *IfNode) RemoveChild(target Node) bool {
	for i := range n.Branches {
		b := &n.Branches[i]
		if b.Cond != nil && Node(b.Cond) == target {
			b.Cond = nil
			return true
		}
		for j, c := range b.Body {
			if c == target {
				b.Body = append(b.Body[:j], b.Body[j+1:]...)
				return true
			}
		}
	}
	for i, c := range n.Else {
		if c == target {
			n.Else = append(n.Else[:i], n.Else[i+1:]...)
			return true
		}
	}
	return false
}

// SwitchCase is one `{case v1, v2}` arm.
type SwitchCase struct {
	Values []Expr
	Body   []Node
}

// SwitchNode is a `{switch expr}{case ...}{default}{/switch}` statement.
type SwitchNode struct {
	cmdBase
	Subject Expr
	Cases   []SwitchCase
	Default []Node
}

func NewSwitch(gen idgen.Generator, span source.Span, subject Expr, cases []SwitchCase, def []Node) *SwitchNode {
	n := &SwitchNode{cmdBase: cmdBase{base: newBase(gen, span)}, Subject: subject, Cases: cases, Default: def}
	adopt(n, subject)
	for _, c := range cases {
		for _, v := range c.Values {
			adopt(n, v)
		}
		for _, b := range c.Body {
			adopt(n, b)
		}
	}
	for _, c := range def {
		adopt(n, c)
	}
	return n
}

func (*SwitchNode) Kind() Kind { return KindSwitch }

func (n *SwitchNode) Children() []Node {
	out := make([]Node, 0)
	if n.Subject != nil {
		out = append(out, n.Subject)
	}
	for _, c := range n.Cases {
		for _, v := range c.Values {
			out = append(out, v)
		}
		out = append(out, c.Body...)
	}
	out = append(out, n.Default...)
	return out
}

func (n *SwitchNode) ReplaceChild(old, replacement Node) bool {
	if n.Subject == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.Subject = repl
		adopt(n, repl)
		return true
	}
	for i := range n.Cases {
		c := &n.Cases[i]
		for j, v := range c.Values {
			if Node(v) == old {
				repl, ok := asExpr(replacement)
				if !ok {
					return false
				}
				c.Values[j] = repl
				adopt(n, repl)
				return true
			}
		}
		for j, b := range c.Body {
			if b == old {
				c.Body[j] = replacement
				adopt(n, replacement)
				return true
			}
		}
	}
	for i, c := range n.Default {
		if c == old {
			n.Default[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *SwitchNode) RemoveChild(target Node) bool {
	if n.Subject != nil && Node(n.Subject) == target {
		n.Subject = nil
		return true
	}
	for i := range n.Cases {
		c := &n.Cases[i]
		for j, v := range c.Values {
			if Node(v) == target {
				c.Values = append(c.Values[:j], c.Values[j+1:]...)
				return true
			}
		}
		for j, b := range c.Body {
			if b == target {
				c.Body = append(c.Body[:j], c.Body[j+1:]...)
				return true
			}
		}
	}
	for i, c := range n.Default {
		if c == target {
			n.Default = append(n.Default[:i], n.Default[i+1:]...)
			return true
		}
	}
	return false
}

// LetNode binds a local: either `{let $x: expr /}` (Value set) or the block
// form `{let $x kind="html"}...{/let}` (Content set).
type LetNode struct {
	cmdBase
	Name        string
	Value       Expr
	Content     []Node
	ContentKind ContentKind
}

func NewLet(gen idgen.Generator, span source.Span, name string, value Expr, content []Node, kind ContentKind) *LetNode {
	n := &LetNode{cmdBase: cmdBase{base: newBase(gen, span)}, Name: name, Value: value, Content: content, ContentKind: kind}
	adopt(n, value)
	for _, c := range content {
		adopt(n, c)
	}
	return n
}

func (*LetNode) Kind() Kind { return KindLet }

func (n *LetNode) Children() []Node {
	out := make([]Node, 0, len(n.Content)+1)
	if n.Value != nil {
		out = append(out, n.Value)
	}
	out = append(out, n.Content...)
	return out
}

func (n *LetNode) ReplaceChild(old, replacement Node) bool {
	if n.Value == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.Value = repl
		adopt(n, repl)
		return true
	}
	for i, c := range n.Content {
		if c == old {
			n.Content[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *LetNode) RemoveChild(target Node) bool {
	if n.Value != nil && Node(n.Value) == target {
		n.Value = nil
		return true
	}
	for i, c := range n.Content {
		if c == target {
			n.Content = append(n.Content[:i], n.Content[i+1:]...)
			return true
		}
	}
	return false
}

// PrintDirective is one `|directive:arg1,arg2` applied to a PrintNode.
type PrintDirective struct {
	Name string
	Args []Expr
}

// PrintNode is a `{$expr|directive}` output command.
type PrintNode struct {
	cmdBase
	Value      Expr
	Directives []PrintDirective
}

func NewPrint(gen idgen.Generator, span source.Span, value Expr, directives []PrintDirective) *PrintNode {
	n := &PrintNode{cmdBase: cmdBase{base: newBase(gen, span)}, Value: value, Directives: directives}
	adopt(n, value)
	for _, d := range directives {
		for _, a := range d.Args {
			adopt(n, a)
		}
	}
	return n
}

func (*PrintNode) Kind() Kind { return KindPrint }

func (n *PrintNode) Children() []Node {
	out := make([]Node, 0, 1)
	if n.Value != nil {
		out = append(out, n.Value)
	}
	for _, d := range n.Directives {
		for _, a := range d.Args {
			out = append(out, a)
		}
	}
	return out
}

func (n *PrintNode) ReplaceChild(old, replacement Node) bool {
	if n.Value == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.Value = repl
		adopt(n, repl)
		return true
	}
	for i := range n.Directives {
		d := &n.Directives[i]
		for j, a := range d.Args {
			if Node(a) == old {
				repl, ok := asExpr(replacement)
				if !ok {
					return false
				}
				d.Args[j] = repl
				adopt(n, repl)
				return true
			}
		}
	}
	return false
}

func (n *PrintNode) RemoveChild(target Node) bool {
	if n.Value != nil && Node(n.Value) == target {
		n.Value = nil
		return true
	}
	for i := range n.Directives {
		d := &n.Directives[i]
		for j, a := range d.Args {
			if Node(a) == target {
				d.Args = append(d.Args[:j], d.Args[j+1:]...)
				return true
			}
		}
	}
	return false
}

// VelogNode is a `{velog expr}...{/velog}` visibility-logging block.
type VelogNode struct {
	cmdBase
	LoggingExpr Expr
	Body        []Node
}

func NewVelog(gen idgen.Generator, span source.Span, loggingExpr Expr, body []Node) *VelogNode {
	n := &VelogNode{cmdBase: cmdBase{base: newBase(gen, span)}, LoggingExpr: loggingExpr, Body: body}
	adopt(n, loggingExpr)
	for _, c := range body {
		adopt(n, c)
	}
	return n
}

func (*VelogNode) Kind() Kind { return KindVelog }

func (n *VelogNode) Children() []Node {
	out := make([]Node, 0, len(n.Body)+1)
	if n.LoggingExpr != nil {
		out = append(out, n.LoggingExpr)
	}
	out = append(out, n.Body...)
	return out
}

func (n *VelogNode) ReplaceChild(old, replacement Node) bool {
	if n.LoggingExpr == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.LoggingExpr = repl
		adopt(n, repl)
		return true
	}
	for i, c := range n.Body {
		if c == old {
			n.Body[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *VelogNode) RemoveChild(target Node) bool {
	if n.LoggingExpr != nil && Node(n.LoggingExpr) == target {
		n.LoggingExpr = nil
		return true
	}
	for i, c := range n.Body {
		if c == target {
			n.Body = append(n.Body[:i], n.Body[i+1:]...)
			return true
		}
	}
	return false
}

// PlaceholderNode wraps one piece of MsgNode content that message-placeholder-
// insertion has promoted to a named placeholder (spec.md §4.5's "msg +
// placeholder" scenario). ExampleText seeds the translation console.
type PlaceholderNode struct {
	cmdBase
	Name        string
	ExampleText string
	Content     []Node
}

func NewPlaceholder(gen idgen.Generator, span source.Span, name, example string, content []Node) *PlaceholderNode {
	n := &PlaceholderNode{cmdBase: cmdBase{base: newBase(gen, span)}, Name: name, ExampleText: example, Content: content}
	for _, c := range content {
		adopt(n, c)
	}
	return n
}

func (*PlaceholderNode) Kind() Kind { return KindPlaceholder }

func (n *PlaceholderNode) Children() []Node {
	out := make([]Node, len(n.Content))
	copy(out, n.Content)
	return out
}

func (n *PlaceholderNode) ReplaceChild(old, replacement Node) bool {
	for i, c := range n.Content {
		if c == old {
			n.Content[i] = replacement
			adopt(n, replacement)
			return true
		}
	}
	return false
}

func (n *PlaceholderNode) RemoveChild(target Node) bool {
	for i, c := range n.Content {
		if c == target {
			n.Content = append(n.Content[:i], n.Content[i+1:]...)
			return true
		}
	}
	return false
}

package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// Visibility controls whether a template may be called from outside its namespace
// (spec.md §4.4's cross-template visibility check).
type Visibility uint8

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
	VisibilityLegacyDeprecatedPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityLegacyDeprecatedPublic:
		return "legacydeprecatedpublic"
	default:
		return "public"
	}
}

// AutoescapeMode selects how the (stubbed) autoescaper treats a template's
// print commands.
type AutoescapeMode uint8

const (
	AutoescapeStrict AutoescapeMode = iota
	AutoescapeContextual
	AutoescapeFalse
)

// ContentKind is the declared output kind of a template, let-block, or
// param-block (`kind="html"`, `kind="attributes"`, ...). It drives which
// contextual autoescaping rules apply.
type ContentKind uint8

const (
	ContentKindHTML ContentKind = iota
	ContentKindText
	ContentKindAttributes
	ContentKindJS
	ContentKindCSS
	ContentKindURI
	ContentKindTrustedResourceURI
)

func (k ContentKind) String() string {
	switch k {
	case ContentKindText:
		return "text"
	case ContentKindAttributes:
		return "attributes"
	case ContentKindJS:
		return "js"
	case ContentKindCSS:
		return "css"
	case ContentKindURI:
		return "uri"
	case ContentKindTrustedResourceURI:
		return "trusted_resource_uri"
	default:
		return "html"
	}
}

// TemplateKind distinguishes a plain `{template}` from an element
// `{template kind="html"}` declared with the `element` stereotype, whose
// @param/@prop duplicate-declaration rule is stricter (SPEC_FULL.md §4).
type TemplateKind uint8

const (
	TemplateKindBasic TemplateKind = iota
	TemplateKindElement
)

// ParamDecl is one `@param` header declaration.
type ParamDecl struct {
	Name     string
	TypeName string
	Optional bool
	Span     source.Span
}

// PropDecl is one `@prop` header declaration, only legal on element
// templates (SPEC_FULL.md §4, generalizing the one worked example in the
// distilled spec).
type PropDecl struct {
	Name     string
	TypeName string
	Optional bool
	Span     source.Span
}

// TemplateNode is one `{template .name}...{/template}` or
// `{deltemplate name}...{/deltemplate}` declaration. Name is the local,
// undotted name as written; the registry computes the fully qualified name
// from the owning FileNode's namespace (spec.md §4.3).
type TemplateNode struct {
	cmdBaseTemplate
	Name            string
	TplKind         TemplateKind
	Visibility      Visibility
	Autoescape      AutoescapeMode
	ContentKind     ContentKind
	Params          []ParamDecl
	Props           []PropDecl
	RequiredCSS     []string
	IsDelegate      bool
	DelegateVariant Expr // nil unless IsDelegate and a variant was given
	DelegatePriority int
	Body            []Node
}

// cmdBaseTemplate exists only so TemplateNode does not satisfy Command: a
// template declaration is not itself a control-flow command, it is a
// top-level declaration owned by a FileNode.
type cmdBaseTemplate struct{ base }

func NewTemplate(gen idgen.Generator, span source.Span, name string, tplKind TemplateKind, body []Node) *TemplateNode {
	n := &TemplateNode{cmdBaseTemplate: cmdBaseTemplate{base: newBase(gen, span)}, Name: name, TplKind: tplKind, Body: body}
	for _, c := range body {
		adopt(n, c)
	}
	return n
}

func (*TemplateNode) Kind() Kind { return KindTemplate }

func (n *TemplateNode) Children() []Node {
	out := make([]Node, 0, len(n.Body)+1)
	if n.DelegateVariant != nil {
		out = append(out, n.DelegateVariant)
	}
	out = append(out, n.Body...)
	return out
}

func (n *TemplateNode) ReplaceChild(old, replacement Node) bool {
	if n.DelegateVariant != nil && Node(n.DelegateVariant) == old {
		repl, ok := asExpr(replacement)
		if !ok {
			return false
		}
		n.DelegateVariant = repl
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

func (n *TemplateNode) RemoveChild(target Node) bool {
	if n.DelegateVariant != nil && Node(n.DelegateVariant) == target {
		n.DelegateVariant = nil
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

// FQN returns the template's fully qualified name given its owning file's
// namespace. Returns Name unchanged if file or file.Namespace is empty,
// matching how a namespace-less file resolves in the registry.
func (n *TemplateNode) FQN() string {
	file, _ := n.Parent().(*FileNode)
	if file == nil || file.Namespace == "" {
		return n.Name
	}
	return file.Namespace + "." + n.Name
}

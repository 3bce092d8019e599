package passes

import (
	"context"
	"fmt"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// ResolveNames assigns every VarRefNode its declaration: a template's
// @param/@prop, or a `let`/`for` binding introduced somewhere above it
// (spec.md §4.5, §8 scenarios 2 and 3). A `let`/`for` name is visible only
// within that node's own content/body subtree, never to siblings after it,
// so scoping is tracked with an explicit stack pushed and popped around
// each such subtree rather than threaded through the whole template flatly.
// A param/prop reference's Decl is the owning TemplateNode itself, since
// ParamDecl/PropDecl are plain structs, not AST nodes, and VarRefNode.Decl
// needs something addressable to point at.
type ResolveNames struct{}

func (ResolveNames) Name() pass.Name { return NameResolveNames }

func (ResolveNames) RunFile(_ context.Context, f *ast.FileNode, _ idgen.Generator, sink diag.Reporter) error {
	for _, t := range f.Templates {
		scope := map[string]ast.Node{}
		for _, p := range t.Params {
			scope[p.Name] = t
		}
		for _, p := range t.Props {
			scope[p.Name] = t
		}
		scopes := []map[string]ast.Node{scope}
		for _, c := range t.Body {
			resolveNames(c, scopes, sink)
		}
	}
	return nil
}

func resolveNames(n ast.Node, scopes []map[string]ast.Node, sink diag.Reporter) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *ast.VarRefNode:
		if decl := lookupScope(scopes, v.Name); decl != nil {
			v.Decl = decl
			return
		}
		diag.ReportError(sink, diag.SemUndefinedVariable, v.Span(),
			fmt.Sprintf("undefined variable $%s", v.Name)).Emit()
	case *ast.LetNode:
		if v.Value != nil {
			resolveNames(v.Value, scopes, sink)
		}
		inner := pushScope(scopes, v.Name, v)
		for _, c := range v.Content {
			resolveNames(c, inner, sink)
		}
	case *ast.ForNode:
		if v.List != nil {
			resolveNames(v.List, scopes, sink)
		}
		inner := pushScope(scopes, v.VarName, v)
		for _, c := range v.Body {
			resolveNames(c, inner, sink)
		}
		for _, c := range v.Empty {
			resolveNames(c, scopes, sink)
		}
	default:
		for _, c := range n.Children() {
			resolveNames(c, scopes, sink)
		}
	}
}

func lookupScope(scopes []map[string]ast.Node, name string) ast.Node {
	for i := len(scopes) - 1; i >= 0; i-- {
		if d, ok := scopes[i][name]; ok {
			return d
		}
	}
	return nil
}

func pushScope(scopes []map[string]ast.Node, name string, decl ast.Node) []map[string]ast.Node {
	next := make([]map[string]ast.Node, len(scopes), len(scopes)+1)
	copy(next, scopes)
	return append(next, map[string]ast.Node{name: decl})
}

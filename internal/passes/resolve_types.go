package passes

import (
	"context"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// ResolveExpressionTypes assigns every Expr node a Type bottom-up: a literal
// gets its primitive type, a VarRefNode inherits its declaration's type (or
// ast.UnknownType if resolve-names never found one), and every composite
// expression is ast.UnknownType the moment any child is, so one undefined
// variable produces exactly one diagnostic instead of a cascade through
// every expression that happens to contain it (spec.md §4.5, §8 scenario
// 2). This pass never reports — it only reads the Decl resolve-names left
// behind and propagates Unknown; the undefined-variable diagnostic was
// already emitted there.
type ResolveExpressionTypes struct{}

func (ResolveExpressionTypes) Name() pass.Name { return NameResolveTypes }

func (ResolveExpressionTypes) RunFile(_ context.Context, f *ast.FileNode, _ idgen.Generator, _ diag.Reporter) error {
	for _, t := range f.Templates {
		typeNode(t)
	}
	return nil
}

func typeNode(n ast.Node) {
	for _, c := range n.Children() {
		typeNode(c)
	}
	e, ok := n.(ast.Expr)
	if !ok {
		return
	}
	switch v := e.(type) {
	case *ast.LiteralNode:
		v.SetResolvedType(literalType(v.LitKind))
	case *ast.VarRefNode:
		v.SetResolvedType(varRefType(v))
	case *ast.GlobalRefNode:
		v.SetResolvedType(ast.Type{Name: "any"})
	case *ast.BinaryExprNode:
		v.SetResolvedType(combineTypes(v.Left, v.Right))
	case *ast.UnaryExprNode:
		v.SetResolvedType(combineTypes(v.Operand))
	case *ast.FieldAccessNode:
		v.SetResolvedType(combineTypes(v.Base))
	case *ast.ListLiteralNode:
		v.SetResolvedType(combineTypes(v.Items...))
	case *ast.MapLiteralNode:
		parts := make([]ast.Expr, 0, len(v.Entries)*2)
		for _, entry := range v.Entries {
			parts = append(parts, entry.Key, entry.Value)
		}
		v.SetResolvedType(combineTypes(parts...))
	}
}

func literalType(kind ast.LiteralKind) ast.Type {
	switch kind {
	case ast.LiteralBool:
		return ast.Type{Name: "bool"}
	case ast.LiteralInt:
		return ast.Type{Name: "int"}
	case ast.LiteralFloat:
		return ast.Type{Name: "float"}
	case ast.LiteralString:
		return ast.Type{Name: "string"}
	default:
		return ast.Type{Name: "null"}
	}
}

func varRefType(v *ast.VarRefNode) ast.Type {
	if v.Decl == nil {
		return ast.UnknownType
	}
	switch d := v.Decl.(type) {
	case *ast.TemplateNode:
		for _, p := range d.Params {
			if p.Name == v.Name {
				return namedOrAny(p.TypeName)
			}
		}
		for _, p := range d.Props {
			if p.Name == v.Name {
				return namedOrAny(p.TypeName)
			}
		}
		return ast.Type{Name: "any"}
	case *ast.LetNode:
		if d.Value != nil {
			return d.Value.ResolvedType()
		}
		return ast.Type{Name: d.ContentKind.String()}
	default:
		return ast.Type{Name: "any"}
	}
}

func namedOrAny(name string) ast.Type {
	if name == "" {
		return ast.Type{Name: "any"}
	}
	return ast.Type{Name: name}
}

// combineTypes is Unknown if any operand is Unknown or absent, else a plain
// "any" — resolve-expression-types tracks enough to short-circuit
// cascading diagnostics, not a full structural type system.
func combineTypes(exprs ...ast.Expr) ast.Type {
	for _, e := range exprs {
		if e == nil {
			continue
		}
		if e.ResolvedType().Unknown {
			return ast.UnknownType
		}
	}
	return ast.Type{Name: "any"}
}

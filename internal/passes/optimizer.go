package passes

import (
	"context"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// Optimizer folds constant control flow and removes branches that can never
// execute: `{if true}...{/if}` collapses to its body, `{if false}...{/if}`
// branches are dropped, and a `{switch}` over a literal subject with only
// literal case values collapses to the matching case (or the default)
// (spec.md §4.5, scenario 1 in §8). It is a pure rewrite with no
// diagnostics and must be idempotent: a second run over its own output is a
// no-op, since nothing it leaves behind is foldable again.
type Optimizer struct{}

func (Optimizer) Name() pass.Name { return NameOptimizer }

func (Optimizer) RunFile(_ context.Context, f *ast.FileNode, _ idgen.Generator, _ diag.Reporter) error {
	for _, t := range f.Templates {
		optimizeChildren(t)
	}
	return nil
}

func optimizeChildren(n ast.Node) {
	for _, c := range n.Children() {
		optimizeChildren(c)
	}
	switch v := n.(type) {
	case *ast.IfNode:
		if repl, collapse := foldIf(v); collapse {
			if owner := v.Parent(); owner != nil {
				ast.SpliceChild(owner, v, repl)
			}
		}
	case *ast.SwitchNode:
		if repl, collapse := foldSwitch(v); collapse {
			if owner := v.Parent(); owner != nil {
				ast.SpliceChild(owner, v, repl)
			}
		}
	}
}

// foldIf drops statically-false branches and, if the first surviving branch
// is statically true or every branch turned out false, reports the
// replacement body and collapse=true. A statically-true branch that follows
// a non-literal one becomes the else, and the branches after it are dropped.
// collapse=false with a non-nil mutation to v.Branches means the node
// survives but with dead branches already pruned.
func foldIf(v *ast.IfNode) (replacement []ast.Node, collapse bool) {
	kept := make([]ast.IfBranch, 0, len(v.Branches))
	for _, b := range v.Branches {
		if val, ok := literalBool(b.Cond); ok {
			if !val {
				continue
			}
			if len(kept) == 0 {
				return b.Body, true
			}
			v.Branches = kept
			v.Else = b.Body
			return nil, false
		}
		kept = append(kept, b)
	}
	if len(kept) == len(v.Branches) {
		return nil, false
	}
	v.Branches = kept
	if len(kept) == 0 {
		return v.Else, true
	}
	return nil, false
}

// foldSwitch collapses a `{switch}` only when the subject and every case
// value are literals, so the winning arm (or the default) is knowable
// without runtime information.
func foldSwitch(v *ast.SwitchNode) (replacement []ast.Node, collapse bool) {
	subject, ok := v.Subject.(*ast.LiteralNode)
	if !ok {
		return nil, false
	}
	for _, c := range v.Cases {
		for _, val := range c.Values {
			lit, ok := val.(*ast.LiteralNode)
			if !ok {
				return nil, false
			}
			if lit.LitKind == subject.LitKind && lit.Raw == subject.Raw {
				return c.Body, true
			}
		}
	}
	return v.Default, true
}

func literalBool(e ast.Expr) (value bool, ok bool) {
	lit, isLit := e.(*ast.LiteralNode)
	if !isLit || lit.LitKind != ast.LiteralBool {
		return false, false
	}
	return lit.Raw == "true", true
}

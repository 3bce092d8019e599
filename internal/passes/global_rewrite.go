package passes

import (
	"context"
	"fmt"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// Global is one compile-time global's value, as configured outside the
// template source (spec.md §4.5's "substitutes compile-time globals with
// literals per a configured mapping").
type Global struct {
	Kind ast.LiteralKind
	Raw  string
}

// GlobalRewrite replaces every GlobalRefNode with the LiteralNode its
// configured value denotes. A reference to a name not in Globals is left in
// place; whether that is reported depends on AllowUnknown, which the
// `allow_unknown_globals` option controls (spec.md §6) — the substitution
// itself is not optional, only the diagnostic for a miss is. Any pass later
// in the pipeline that forbids unknown globals outright must be sequenced
// after this one (spec.md §4.5).
type GlobalRewrite struct {
	Globals      map[string]Global
	AllowUnknown bool
}

func (GlobalRewrite) Name() pass.Name { return NameGlobalRewrite }

func (g GlobalRewrite) RunFile(_ context.Context, f *ast.FileNode, gen idgen.Generator, sink diag.Reporter) error {
	for _, t := range f.Templates {
		rewriteGlobals(t, g.Globals, g.AllowUnknown, gen, sink)
	}
	return nil
}

func rewriteGlobals(n ast.Node, globals map[string]Global, allowUnknown bool, gen idgen.Generator, sink diag.Reporter) {
	for _, c := range n.Children() {
		rewriteGlobals(c, globals, allowUnknown, gen, sink)
	}
	gr, ok := n.(*ast.GlobalRefNode)
	if !ok {
		return
	}
	owner := gr.Parent()
	if owner == nil {
		return
	}
	val, found := globals[gr.Name]
	if !found {
		if !allowUnknown {
			diag.ReportError(sink, diag.SemUnknownGlobal, gr.Span(),
				fmt.Sprintf("unknown global %s", gr.Name)).Emit()
		}
		return
	}
	lit := ast.NewLiteral(gen, gr.Span(), val.Kind, val.Raw)
	owner.ReplaceChild(gr, lit)
}

package passes

import (
	"strings"

	"context"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// DesugarHTML is html-rewrite's inverse: it collapses TagOpenNode/
// TagCloseNode/SelfClosedTagNode/AttributeNode structure back into plain
// RawTextNode, for a backend that only understands raw markup text. It
// runs only when a project's desugar_html_nodes option requests it
// (default true, spec.md §6) — that gating lives in which passes
// internal/config wires into the pipeline, not in this pass itself, which
// is unconditionally safe to run whenever HTML structure is present.
type DesugarHTML struct{}

func (DesugarHTML) Name() pass.Name { return NameDesugarHTML }

func (DesugarHTML) RunFile(_ context.Context, f *ast.FileNode, gen idgen.Generator, _ diag.Reporter) error {
	for _, t := range f.Templates {
		desugarSubtree(t, gen)
	}
	return nil
}

func desugarSubtree(owner ast.Node, gen idgen.Generator) {
	for _, c := range owner.Children() {
		switch v := c.(type) {
		case *ast.TagOpenNode:
			ast.SpliceChild(owner, c, []ast.Node{ast.NewRawText(gen, v.Span(), renderTagOpen(v))})
		case *ast.TagCloseNode:
			ast.SpliceChild(owner, c, []ast.Node{ast.NewRawText(gen, v.Span(), "</"+v.Name+">")})
		case *ast.SelfClosedTagNode:
			ast.SpliceChild(owner, c, []ast.Node{ast.NewRawText(gen, v.Span(), renderSelfClosed(v))})
		default:
			desugarSubtree(c, gen)
		}
	}
}

func renderTagOpen(v *ast.TagOpenNode) string {
	return "<" + v.Name + renderAttrs(v.Attrs) + ">"
}

func renderSelfClosed(v *ast.SelfClosedTagNode) string {
	return "<" + v.Name + renderAttrs(v.Attrs) + "/>"
}

func renderAttrs(attrs []*ast.AttributeNode) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		if a.Value == nil {
			continue
		}
		b.WriteString(`="`)
		for _, c := range a.Value.Content {
			if rt, ok := c.(*ast.RawTextNode); ok {
				b.WriteString(rt.Text)
			}
		}
		b.WriteByte('"')
	}
	return b.String()
}

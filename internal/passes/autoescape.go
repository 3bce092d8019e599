package passes

import (
	"context"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
	"soyc/internal/registry"
)

// escapeDirectiveFor maps a template's declared content kind to the print
// directive that makes output safe for that context. This is deliberately
// a fixed table, not a contextual parser walking surrounding HTML structure
// (spec.md §4.5 describes autoescape as an opaque stub pass; a real
// context-sensitive escaper is out of scope here, SPEC_FULL.md §6).
var escapeDirectiveFor = map[ast.ContentKind]string{
	ast.ContentKindHTML:               "escapeHtml",
	ast.ContentKindText:               "escapeHtml",
	ast.ContentKindAttributes:         "escapeHtmlAttribute",
	ast.ContentKindJS:                 "escapeJsString",
	ast.ContentKindCSS:                "escapeCssString",
	ast.ContentKindURI:                "escapeUri",
	ast.ContentKindTrustedResourceURI: "escapeUri",
}

// Autoescape is the pipeline's escaping pass. Its input invariant is that
// html-rewrite and resolve-expression-types have already run (unless the
// project disabled both); its output invariant is that every PrintNode's
// directive chain ends with an escaping directive appropriate to its
// template's declared ContentKind, unless autoescape is AutoescapeFalse for
// that template. It does not split a contextual template into per-context
// variants: every template gets the fixed-table directive for its declared
// ContentKind, and SemAutoescapeRequired is reported only for a PrintNode
// whose content kind has no entry in escapeDirectiveFor (spec.md §4.5, §9's
// listed simplification).
type Autoescape struct{}

func (Autoescape) Name() pass.Name { return NameAutoescape }

func (Autoescape) RunFileset(_ context.Context, files []*ast.FileNode, _ *registry.Registry, _ idgen.Generator, sink diag.Reporter) error {
	for _, f := range files {
		for _, t := range f.Templates {
			if t.Autoescape == ast.AutoescapeFalse {
				continue
			}
			escapeTemplate(t, t.ContentKind, sink)
		}
	}
	return nil
}

func escapeTemplate(n ast.Node, kind ast.ContentKind, sink diag.Reporter) {
	if let, ok := n.(*ast.LetNode); ok {
		kind = let.ContentKind
	}
	if p, ok := n.(*ast.PrintNode); ok {
		ensureEscaped(p, kind, sink)
	}
	for _, c := range n.Children() {
		escapeTemplate(c, kind, sink)
	}
}

func ensureEscaped(p *ast.PrintNode, kind ast.ContentKind, sink diag.Reporter) {
	for _, d := range p.Directives {
		if len(d.Name) >= 6 && d.Name[:6] == "escape" {
			return
		}
		if d.Name == "noAutoescape" {
			return
		}
	}
	want, ok := escapeDirectiveFor[kind]
	if !ok {
		diag.ReportError(sink, diag.SemAutoescapeRequired, p.Span(),
			"no escaping directive is known for this content kind").Emit()
		return
	}
	p.Directives = append(p.Directives, ast.PrintDirective{Name: want})
}

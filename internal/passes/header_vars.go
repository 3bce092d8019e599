package passes

import (
	"context"
	"fmt"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// HeaderVarCheck rejects a template whose header declares the same @param
// or @prop name twice or the same name as both @param and @prop, and rejects
// any @prop on a non-element template (spec.md §8 scenario 5; the duplicate
// checks run on every template, generalized by SPEC_FULL.md §4 from the one
// param/prop example the distillation showed).
type HeaderVarCheck struct{}

func (HeaderVarCheck) Name() pass.Name { return NameHeaderVars }

func (HeaderVarCheck) RunFile(_ context.Context, f *ast.FileNode, _ idgen.Generator, sink diag.Reporter) error {
	for _, t := range f.Templates {
		seen := map[string]ast.ParamDecl{}
		for _, p := range t.Params {
			if first, dup := seen[p.Name]; dup {
				diag.ReportError(sink, diag.SemDuplicateHeaderVar, p.Span,
					fmt.Sprintf("param %q is declared twice in %s", p.Name, t.Name)).
					WithNote(first.Span, "first declared here").Emit()
				continue
			}
			seen[p.Name] = p
		}
		if t.TplKind != ast.TemplateKindElement && len(t.Props) > 0 {
			diag.ReportError(sink, diag.SemDuplicateHeaderVar, t.Props[0].Span,
				fmt.Sprintf("@prop is only legal on an element template, %s is not one", t.Name)).Emit()
		}
		seenProps := map[string]ast.PropDecl{}
		for _, p := range t.Props {
			if first, dup := seenProps[p.Name]; dup {
				diag.ReportError(sink, diag.SemDuplicateHeaderVar, p.Span,
					fmt.Sprintf("prop %q is declared twice in %s", p.Name, t.Name)).
					WithNote(first.Span, "first declared here").Emit()
				continue
			}
			seenProps[p.Name] = p
			// Attached to the @param site, not the @prop site: param/prop share
			// one declaration namespace, and the param was declared first in
			// the one worked example spec.md §8 scenario 5 gives (SPEC_FULL.md §4).
			if param, clash := seen[p.Name]; clash {
				diag.ReportError(sink, diag.SemDuplicateHeaderVar, param.Span,
					fmt.Sprintf("%q is declared as both @param and @prop in %s", p.Name, t.Name)).
					WithNote(p.Span, "also declared as @prop here").Emit()
			}
		}
	}
	return nil
}

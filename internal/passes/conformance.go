package passes

import (
	"context"
	"fmt"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
	"soyc/internal/source"
)

// Policy is the configured allow/deny surface Conformance checks against:
// attribute and tag names a project has decided templates may never use
// (e.g. "onclick" inline handlers, a deprecated custom element). It is pure
// configuration, not AST-derived, and is supplied by whoever assembles the
// pass.ConfigBuilder (spec.md §4.5, §6).
type Policy struct {
	BannedAttributes []string
	BannedTags       []string
}

// Conformance is a pure inspector: it reads the tree html-rewrite already
// produced and reports violations of Policy, but never rewrites anything.
type Conformance struct {
	Policy Policy
}

func (Conformance) Name() pass.Name { return NameConformance }

func (c Conformance) RunFile(_ context.Context, f *ast.FileNode, _ idgen.Generator, sink diag.Reporter) error {
	bannedAttrs := toSet(c.Policy.BannedAttributes)
	bannedTags := toSet(c.Policy.BannedTags)
	for _, t := range f.Templates {
		checkConformance(t, bannedAttrs, bannedTags, sink)
	}
	return nil
}

func checkConformance(n ast.Node, bannedAttrs, bannedTags map[string]bool, sink diag.Reporter) {
	switch v := n.(type) {
	case *ast.TagOpenNode:
		reportBannedTag(v.Name, v.Span(), bannedTags, sink)
		reportBannedAttrs(v.Attrs, bannedAttrs, sink)
	case *ast.SelfClosedTagNode:
		reportBannedTag(v.Name, v.Span(), bannedTags, sink)
		reportBannedAttrs(v.Attrs, bannedAttrs, sink)
	}
	for _, c := range n.Children() {
		checkConformance(c, bannedAttrs, bannedTags, sink)
	}
}

func reportBannedTag(name string, span source.Span, bannedTags map[string]bool, sink diag.Reporter) {
	if bannedTags[name] {
		diag.ReportError(sink, diag.SemBannedAttribute, span,
			fmt.Sprintf("tag <%s> is banned by conformance policy", name)).Emit()
	}
}

func reportBannedAttrs(attrs []*ast.AttributeNode, banned map[string]bool, sink diag.Reporter) {
	for _, a := range attrs {
		if banned[a.Name] {
			diag.ReportError(sink, diag.SemBannedAttribute, a.Span(),
				fmt.Sprintf("attribute %q is banned by conformance policy", a.Name)).Emit()
		}
	}
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		out[it] = true
	}
	return out
}

package passes

import (
	"context"
	"fmt"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
	"soyc/internal/registry"
)

// CrossTemplateChecks runs once the registry exists, so it can check things
// one file can't check about itself: a `{call}` site resolves to a real
// template, a private template is only called from its own namespace, and the
// params passed at the call site are a subset of what the callee declares
// (spec.md §4.5; duplicate-FQN and delegate-priority conflicts are already
// caught by registry.Build, so this pass does not repeat them).
type CrossTemplateChecks struct{}

func (CrossTemplateChecks) Name() pass.Name { return NameCrossTemplateChecks }

func (CrossTemplateChecks) RunFileset(_ context.Context, files []*ast.FileNode, reg *registry.Registry, _ idgen.Generator, sink diag.Reporter) error {
	for _, f := range files {
		for _, t := range f.Templates {
			checkCallSites(t, f, reg, sink)
		}
	}
	return nil
}

func checkCallSites(n ast.Node, f *ast.FileNode, reg *registry.Registry, sink diag.Reporter) {
	if call, ok := n.(*ast.CallNode); ok {
		checkOneCall(call, f, reg, sink)
	}
	for _, c := range n.Children() {
		checkCallSites(c, f, reg, sink)
	}
}

func checkOneCall(call *ast.CallNode, f *ast.FileNode, reg *registry.Registry, sink diag.Reporter) {
	callee, ok := reg.LookupInNamespace(f.Namespace, call.Callee)
	if !ok {
		diag.ReportError(sink, diag.SemUnresolvedTemplate, call.Span(),
			fmt.Sprintf("call to undefined template %q", call.Callee)).Emit()
		return
	}
	if callee.Visibility == ast.VisibilityPrivate {
		calleeFile, _ := callee.Parent().(*ast.FileNode)
		if calleeFile == nil || calleeFile.Namespace != f.Namespace {
			diag.ReportError(sink, diag.SemVisibilityViolation, call.Span(),
				fmt.Sprintf("%q is private to namespace %q and cannot be called from %q", callee.Name, calleeFile.Namespace, f.Namespace)).Emit()
		}
	}
	if call.Data != nil {
		return // data="all"/data="$expr" supplies every param; nothing more to check
	}
	declared := map[string]bool{}
	for _, p := range callee.Params {
		declared[p.Name] = true
	}
	for _, p := range call.Params {
		if !declared[p.Name] {
			diag.ReportError(sink, diag.SemCallSiteParamMismatch, call.Span(),
				fmt.Sprintf("%q passes param %q which %q does not declare", call.Callee, p.Name, callee.Name)).Emit()
		}
	}
	for _, p := range callee.Params {
		if p.Optional {
			continue
		}
		if !callSuppliesParam(call, p.Name) {
			diag.ReportError(sink, diag.SemCallSiteParamMismatch, call.Span(),
				fmt.Sprintf("%q does not pass required param %q of %q", call.Callee, p.Name, callee.Name)).Emit()
		}
	}
}

func callSuppliesParam(call *ast.CallNode, name string) bool {
	for _, p := range call.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

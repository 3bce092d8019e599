package config_test

import (
	"context"
	"testing"

	"soyc/internal/ast"
	"soyc/internal/config"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
	"soyc/internal/registry"
	"soyc/internal/source"
)

func newGen() *idgen.Sequential { return idgen.NewSequential() }

func newSink() (*diag.Bag, diag.Reporter) {
	bag := diag.NewBag(100)
	return bag, diag.BagReporter{Bag: bag}
}

// run builds a Manager from opts and runs it over files, failing the test
// on any construction error.
func run(t *testing.T, opts config.Options, files []*ast.FileNode, gen idgen.Generator, sink diag.Reporter) (*registry.Registry, pass.Status, pass.Timings) {
	t.Helper()
	m, err := config.Build(opts)
	if err != nil {
		t.Fatalf("config.Build: %v", err)
	}
	return m.Run(context.Background(), files, gen, sink)
}

// scenario 1: {if true}hi{/if} folds to a single raw-text node "hi" after
// optimization, with zero diagnostics (spec.md §8 scenario 1).
func TestScenarioOptimizerFoldsLiteralIf(t *testing.T) {
	gen := newGen()
	bag, sink := newSink()

	hi := ast.NewRawText(gen, source.Span{}, "hi")
	cond := ast.NewLiteral(gen, source.Span{}, ast.LiteralBool, "true")
	ifNode := ast.NewIf(gen, source.Span{}, []ast.IfBranch{{Cond: cond, Body: []ast.Node{hi}}}, nil)
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{ifNode})
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	reg, status, _ := run(t, config.Defaults(), []*ast.FileNode{file}, gen, sink)
	if status != pass.StatusComplete {
		t.Fatalf("status = %v, want StatusComplete", status)
	}
	if _, ok := reg.Lookup("ns.foo"); !ok {
		t.Fatalf("registry missing ns.foo")
	}
	if bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %d: %+v", bag.Len(), bag.Items())
	}
	if len(tpl.Body) != 1 {
		t.Fatalf("template body: want 1 node, got %d", len(tpl.Body))
	}
	rt, ok := tpl.Body[0].(*ast.RawTextNode)
	if !ok {
		t.Fatalf("template body[0] = %T, want *ast.RawTextNode", tpl.Body[0])
	}
	if rt.Text != "hi" {
		t.Fatalf("template body text = %q, want %q", rt.Text, "hi")
	}
}

// scenario 2: an undefined $x reference produces exactly one diagnostic at
// $x's span, and resolve-types still runs without cascading (spec.md §8
// scenario 2).
func TestScenarioUndefinedVariableNoCascade(t *testing.T) {
	gen := newGen()
	bag, sink := newSink()

	xref := ast.NewVarRef(gen, source.Span{Start: 10, End: 12}, "x")
	print := ast.NewPrint(gen, source.Span{}, xref, nil)
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{print})
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	run(t, config.Defaults(), []*ast.FileNode{file}, gen, sink)

	var undefined []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.SemUndefinedVariable {
			undefined = append(undefined, d)
		}
	}
	if len(undefined) != 1 {
		t.Fatalf("want exactly one SemUndefinedVariable diagnostic, got %d: %+v", len(undefined), bag.Items())
	}
	if undefined[0].Primary != xref.Span() {
		t.Fatalf("diagnostic span = %v, want %v", undefined[0].Primary, xref.Span())
	}
	if xref.ResolvedType() != ast.UnknownType {
		t.Fatalf("resolved type = %+v, want UnknownType", xref.ResolvedType())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.SemUndefinedVariable {
			t.Fatalf("unexpected cascading diagnostic: %+v", d)
		}
	}
}

// scenario 3: a ContinuationRule stopping after ResolveNames means every
// later pass (including ResolveExpressionTypes) never runs, so only the
// one diagnostic ResolveNames itself raises is ever reported (spec.md §8
// scenario 3).
func TestScenarioStopAfterResolveNames(t *testing.T) {
	gen := newGen()
	bag, sink := newSink()

	xref := ast.NewVarRef(gen, source.Span{}, "x")
	print := ast.NewPrint(gen, source.Span{}, xref, nil)
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{print})
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	opts := config.Defaults()
	opts.PassContinuationRules = map[string]config.ContinuationDirective{
		"ResolveNames": config.DirectiveStopAfter,
	}

	_, status, _ := run(t, opts, []*ast.FileNode{file}, gen, sink)
	if status != pass.StatusStoppedEarly {
		t.Fatalf("status = %v, want StatusStoppedEarly", status)
	}
	if bag.Len() != 1 {
		t.Fatalf("want exactly one diagnostic, got %d: %+v", bag.Len(), bag.Items())
	}
	if bag.Items()[0].Code != diag.SemUndefinedVariable {
		t.Fatalf("diagnostic code = %v, want SemUndefinedVariable", bag.Items()[0].Code)
	}
	if xref.ResolvedType() != (ast.Type{}) {
		t.Fatalf("resolve-types ran despite the stop rule: type = %+v", xref.ResolvedType())
	}
}

// scenario 4: two templates sharing a namespace and name produce exactly
// one duplicate-template diagnostic on the second, and the registry keeps
// the first (spec.md §8 scenario 4).
func TestScenarioDuplicateTemplate(t *testing.T) {
	gen := newGen()
	bag, sink := newSink()

	first := ast.NewTemplate(gen, source.Span{Start: 0, End: 10}, "foo", ast.TemplateKindBasic, nil)
	second := ast.NewTemplate(gen, source.Span{Start: 20, End: 30}, "foo", ast.TemplateKindBasic, nil)
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{first, second})

	reg, _, _ := run(t, config.Defaults(), []*ast.FileNode{file}, gen, sink)

	var dup []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.SemDuplicateTemplate {
			dup = append(dup, d)
		}
	}
	if len(dup) != 1 {
		t.Fatalf("want exactly one SemDuplicateTemplate diagnostic, got %d: %+v", len(dup), bag.Items())
	}
	if dup[0].Primary != second.Span() {
		t.Fatalf("diagnostic attached to span %v, want the second declaration's span %v", dup[0].Primary, second.Span())
	}
	got, ok := reg.Lookup("ns.foo")
	if !ok {
		t.Fatalf("registry missing ns.foo")
	}
	if got != first {
		t.Fatalf("registry kept the second declaration, want the first")
	}
}

// scenario 5: an element template declaring the same name as both @param
// and @prop produces exactly one diagnostic, attached to the @param site
// (spec.md §8 scenario 5).
func TestScenarioParamPropCollision(t *testing.T) {
	gen := newGen()
	bag, sink := newSink()

	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindElement, nil)
	tpl.Params = []ast.ParamDecl{{Name: "s", TypeName: "bool", Span: source.Span{Start: 1, End: 2}}}
	tpl.Props = []ast.PropDecl{{Name: "s", TypeName: "bool", Span: source.Span{Start: 10, End: 11}}}
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	run(t, config.Defaults(), []*ast.FileNode{file}, gen, sink)

	var dup []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.SemDuplicateHeaderVar {
			dup = append(dup, d)
		}
	}
	if len(dup) != 1 {
		t.Fatalf("want exactly one SemDuplicateHeaderVar diagnostic, got %d: %+v", len(dup), bag.Items())
	}
	if dup[0].Primary != tpl.Params[0].Span {
		t.Fatalf("diagnostic attached to %v, want the @param span %v", dup[0].Primary, tpl.Params[0].Span)
	}
}

// scenario 6: {msg desc="x"}Hello {$name}{/msg} gets $name wrapped in a
// stably-named placeholder whose identity survives the rest of the
// pipeline, including the optimizer (spec.md §8 scenario 6).
func TestScenarioMessagePlaceholderSurvivesPipeline(t *testing.T) {
	gen := newGen()
	_, sink := newSink()

	hello := ast.NewRawText(gen, source.Span{}, "Hello ")
	nameRef := ast.NewVarRef(gen, source.Span{}, "name")
	print := ast.NewPrint(gen, source.Span{}, nameRef, nil)
	msg := ast.NewMsg(gen, source.Span{}, "x", "", []ast.Node{hello, print})
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{msg})
	tpl.Params = []ast.ParamDecl{{Name: "name", TypeName: "string"}}
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	run(t, config.Defaults(), []*ast.FileNode{file}, gen, sink)

	if len(msg.Body) != 2 {
		t.Fatalf("msg body: want 2 nodes after placeholder insertion, got %d", len(msg.Body))
	}
	rt, ok := msg.Body[0].(*ast.RawTextNode)
	if !ok || rt.Text != "Hello " {
		t.Fatalf("msg body[0] = %#v, want raw text %q", msg.Body[0], "Hello ")
	}
	ph, ok := msg.Body[1].(*ast.PlaceholderNode)
	if !ok {
		t.Fatalf("msg body[1] = %T, want *ast.PlaceholderNode", msg.Body[1])
	}
	if ph.Name != "NAME" {
		t.Fatalf("placeholder name = %q, want %q", ph.Name, "NAME")
	}
	if len(ph.Content) != 1 || ph.Content[0] != ast.Node(print) {
		t.Fatalf("placeholder content lost the original print node across the pipeline")
	}
}

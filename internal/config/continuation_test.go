package config_test

import (
	"testing"

	"soyc/internal/ast"
	"soyc/internal/config"
	"soyc/internal/pass"
	"soyc/internal/source"
)

// An unknown pass name in a continuation rule must fail at config.Build,
// not surface later as a silently-ignored rule.
func TestBuildRejectsUnknownContinuationPassName(t *testing.T) {
	opts := config.Defaults()
	opts.PassContinuationRules = map[string]config.ContinuationDirective{
		"ThisPassDoesNotExist": config.DirectiveStopBefore,
	}
	if _, err := config.Build(opts); err == nil {
		t.Fatal("want an error for an unknown continuation pass name, got nil")
	}
}

// STOP_AFTER_PASS on pass P and STOP_BEFORE_PASS on P's successor must stop
// the pipeline at exactly the same point, through the real configured
// pipeline rather than the abstract pass.ConfigBuilder test doubles.
func TestStopAfterAndStopBeforeSuccessorAreEquivalent(t *testing.T) {
	gen := newGen()

	buildFile := func() *ast.FileNode {
		xref := ast.NewVarRef(gen, source.Span{}, "x")
		print := ast.NewPrint(gen, source.Span{}, xref, nil)
		tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{print})
		return ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})
	}

	stopAfterBag, stopAfterSink := newSink()
	optsAfter := config.Defaults()
	optsAfter.PassContinuationRules = map[string]config.ContinuationDirective{
		"ResolveNames": config.DirectiveStopAfter,
	}
	_, statusAfter, _ := run(t, optsAfter, []*ast.FileNode{buildFile()}, gen, stopAfterSink)

	stopBeforeBag, stopBeforeSink := newSink()
	optsBefore := config.Defaults()
	optsBefore.PassContinuationRules = map[string]config.ContinuationDirective{
		"ResolveExpressionTypes": config.DirectiveStopBefore,
	}
	_, statusBefore, _ := run(t, optsBefore, []*ast.FileNode{buildFile()}, gen, stopBeforeSink)

	if statusAfter != pass.StatusStoppedEarly || statusBefore != pass.StatusStoppedEarly {
		t.Fatalf("status = %v / %v, want both StatusStoppedEarly", statusAfter, statusBefore)
	}
	if stopAfterBag.Len() != stopBeforeBag.Len() {
		t.Fatalf("diagnostic counts diverge: %d vs %d", stopAfterBag.Len(), stopBeforeBag.Len())
	}
	for i := range stopAfterBag.Items() {
		if stopAfterBag.Items()[i].Code != stopBeforeBag.Items()[i].Code {
			t.Fatalf("diagnostic %d code diverges: %v vs %v", i, stopAfterBag.Items()[i].Code, stopBeforeBag.Items()[i].Code)
		}
	}
}

// STOP_AFTER_PASS naming the last pass in the pipeline is accepted as a
// no-op: the run still completes.
func TestStopAfterLastPassIsNoOp(t *testing.T) {
	gen := newGen()
	bag, sink := newSink()

	hi := ast.NewRawText(gen, source.Span{}, "hi")
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{hi})
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	opts := config.Defaults()
	opts.PassContinuationRules = map[string]config.ContinuationDirective{
		"Autoescape": config.DirectiveStopAfter,
	}
	_, status, _ := run(t, opts, []*ast.FileNode{file}, gen, sink)
	if status != pass.StatusComplete {
		t.Fatalf("status = %v, want StatusComplete for a stop-after rule on the last pass", status)
	}
	if bag.Len() != 0 {
		t.Fatalf("want zero diagnostics, got %d", bag.Len())
	}
}

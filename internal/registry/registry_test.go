package registry

import (
	"testing"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBuildIndexesTemplatesByFQN(t *testing.T) {
	gen := idgen.NewSequential()
	tpl := ast.NewTemplate(gen, sp(0, 10), "greet", ast.TemplateKindBasic, nil)
	file := ast.NewFile(gen, sp(0, 10), "a.soy", "example", []*ast.TemplateNode{tpl})

	bag := diag.NewBag(16)
	r := Build([]*ast.FileNode{file}, diag.BagReporter{Bag: bag})

	got, ok := r.Lookup("example.greet")
	if !ok || got != tpl {
		t.Fatalf("expected to resolve example.greet, got %v, %v", got, ok)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestBuildReportsDuplicateTemplateFirstWins(t *testing.T) {
	gen := idgen.NewSequential()
	first := ast.NewTemplate(gen, sp(0, 10), "greet", ast.TemplateKindBasic, nil)
	second := ast.NewTemplate(gen, sp(20, 30), "greet", ast.TemplateKindBasic, nil)
	file := ast.NewFile(gen, sp(0, 30), "a.soy", "example", []*ast.TemplateNode{first, second})

	bag := diag.NewBag(16)
	r := Build([]*ast.FileNode{file}, diag.BagReporter{Bag: bag})

	got, ok := r.Lookup("example.greet")
	if !ok || got != first {
		t.Fatalf("expected the first declaration to win, got %v", got)
	}
	if !bag.HasErrors() {
		t.Fatal("expected a duplicate-template diagnostic")
	}
	items := bag.Items()
	if items[0].Code != diag.SemDuplicateTemplate {
		t.Fatalf("expected SemDuplicateTemplate, got %v", items[0].Code)
	}
}

func TestResolveDelegatePicksHighestPriority(t *testing.T) {
	gen := idgen.NewSequential()
	low := ast.NewTemplate(gen, sp(0, 5), "widget", ast.TemplateKindBasic, nil)
	low.IsDelegate = true
	low.DelegatePriority = 0

	high := ast.NewTemplate(gen, sp(10, 15), "widget", ast.TemplateKindBasic, nil)
	high.IsDelegate = true
	high.DelegatePriority = 1

	file := ast.NewFile(gen, sp(0, 15), "a.soy", "example", []*ast.TemplateNode{low, high})

	bag := diag.NewBag(16)
	r := Build([]*ast.FileNode{file}, diag.BagReporter{Bag: bag})

	got, ok := r.ResolveDelegate("widget", "")
	if !ok || got != high {
		t.Fatalf("expected the higher-priority delegate to win, got %v", got)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestAmbiguousDefaultDelegatesAtSamePriorityAreFlagged(t *testing.T) {
	gen := idgen.NewSequential()
	a := ast.NewTemplate(gen, sp(0, 5), "widget", ast.TemplateKindBasic, nil)
	a.IsDelegate = true
	b := ast.NewTemplate(gen, sp(10, 15), "widget", ast.TemplateKindBasic, nil)
	b.IsDelegate = true
	file := ast.NewFile(gen, sp(0, 15), "a.soy", "example", []*ast.TemplateNode{a, b})

	bag := diag.NewBag(16)
	Build([]*ast.FileNode{file}, diag.BagReporter{Bag: bag})

	if !bag.HasErrors() {
		t.Fatal("expected an ambiguous-default-delegate diagnostic")
	}
	if bag.Items()[0].Code != diag.SemMultipleDefaultDelegate {
		t.Fatalf("expected SemMultipleDefaultDelegate, got %v", bag.Items()[0].Code)
	}
}

package passes_test

import (
	"context"
	"testing"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/passes"
	"soyc/internal/source"
)

// Optimizer is a pure rewrite: running it again over its own output must
// not change the tree further (spec.md §8's idempotence property).
func TestOptimizerIsIdempotent(t *testing.T) {
	gen := idgen.NewSequential()
	bag := diag.NewBag(10)
	sink := diag.BagReporter{Bag: bag}

	hi := ast.NewRawText(gen, source.Span{}, "hi")
	bye := ast.NewRawText(gen, source.Span{}, "bye")
	cond := ast.NewLiteral(gen, source.Span{}, ast.LiteralBool, "false")
	ifNode := ast.NewIf(gen, source.Span{}, []ast.IfBranch{{Cond: cond, Body: []ast.Node{hi}}}, []ast.Node{bye})
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{ifNode})
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	opt := passes.Optimizer{}
	if err := opt.RunFile(context.Background(), file, gen, sink); err != nil {
		t.Fatalf("first RunFile: %v", err)
	}
	firstPass := snapshotTexts(tpl.Body)

	if err := opt.RunFile(context.Background(), file, gen, sink); err != nil {
		t.Fatalf("second RunFile: %v", err)
	}
	secondPass := snapshotTexts(tpl.Body)

	if len(firstPass) != len(secondPass) {
		t.Fatalf("tree shape changed on second run: %v vs %v", firstPass, secondPass)
	}
	for i := range firstPass {
		if firstPass[i] != secondPass[i] {
			t.Fatalf("node %d changed on second run: %q vs %q", i, firstPass[i], secondPass[i])
		}
	}
}

// CombineConsecutiveRawText is a pure rewrite: a second run over already-
// combined text must not merge anything further or change node identity.
func TestCombineConsecutiveRawTextIsIdempotent(t *testing.T) {
	gen := idgen.NewSequential()
	bag := diag.NewBag(10)
	sink := diag.BagReporter{Bag: bag}

	a := ast.NewRawText(gen, source.Span{}, "a")
	b := ast.NewRawText(gen, source.Span{}, "b")
	c := ast.NewRawText(gen, source.Span{}, "c")
	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{a, b, c})
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	p := passes.CombineConsecutiveRawText{}
	if err := p.RunFile(context.Background(), file, gen, sink); err != nil {
		t.Fatalf("first RunFile: %v", err)
	}
	if len(tpl.Body) != 1 {
		t.Fatalf("want 1 merged node, got %d", len(tpl.Body))
	}
	merged, ok := tpl.Body[0].(*ast.RawTextNode)
	if !ok || merged.Text != "abc" {
		t.Fatalf("merged node = %#v, want raw text %q", tpl.Body[0], "abc")
	}

	if err := p.RunFile(context.Background(), file, gen, sink); err != nil {
		t.Fatalf("second RunFile: %v", err)
	}
	if len(tpl.Body) != 1 || tpl.Body[0] != ast.Node(merged) {
		t.Fatalf("second run changed the already-merged node")
	}
}

func snapshotTexts(body []ast.Node) []string {
	out := make([]string, 0, len(body))
	for _, n := range body {
		if rt, ok := n.(*ast.RawTextNode); ok {
			out = append(out, rt.Text)
			continue
		}
		out = append(out, "<non-text>")
	}
	return out
}

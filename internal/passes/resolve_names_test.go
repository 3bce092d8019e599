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

// A for-loop's bound variable must resolve inside the loop body but must
// not leak into a sibling statement that follows the loop.
func TestResolveNamesForBindingDoesNotLeakToSibling(t *testing.T) {
	gen := idgen.NewSequential()
	bag := diag.NewBag(10)
	sink := diag.BagReporter{Bag: bag}

	items := ast.NewVarRef(gen, source.Span{}, "items")
	inLoop := ast.NewVarRef(gen, source.Span{}, "item")
	forNode := ast.NewFor(gen, source.Span{}, "item", items, []ast.Node{ast.NewPrint(gen, source.Span{}, inLoop, nil)}, nil)

	afterLoop := ast.NewVarRef(gen, source.Span{}, "item")
	printAfter := ast.NewPrint(gen, source.Span{}, afterLoop, nil)

	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{forNode, printAfter})
	tpl.Params = []ast.ParamDecl{{Name: "items", TypeName: "list"}}
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	p := passes.ResolveNames{}
	if err := p.RunFile(context.Background(), file, gen, sink); err != nil {
		t.Fatalf("RunFile: %v", err)
	}

	if inLoop.Decl != ast.Node(forNode) {
		t.Fatalf("loop-bound $item did not resolve to the ForNode")
	}
	var undefined int
	for _, d := range bag.Items() {
		if d.Code == diag.SemUndefinedVariable {
			undefined++
		}
	}
	if undefined != 1 {
		t.Fatalf("want exactly one undefined-variable diagnostic for the leaked sibling reference, got %d", undefined)
	}
	if afterLoop.Decl != nil {
		t.Fatalf("sibling $item resolved against the loop binding, want it to stay unresolved")
	}
}

// A let binding shadows an outer param of the same name only within its own
// content subtree.
func TestResolveNamesLetShadowsWithinSubtreeOnly(t *testing.T) {
	gen := idgen.NewSequential()
	bag := diag.NewBag(10)
	sink := diag.BagReporter{Bag: bag}

	innerRef := ast.NewVarRef(gen, source.Span{}, "x")
	letNode := ast.NewLet(gen, source.Span{}, "x", ast.NewLiteral(gen, source.Span{}, ast.LiteralInt, "1"),
		[]ast.Node{ast.NewPrint(gen, source.Span{}, innerRef, nil)}, ast.ContentKindText)

	outerRef := ast.NewVarRef(gen, source.Span{}, "x")
	printOuter := ast.NewPrint(gen, source.Span{}, outerRef, nil)

	tpl := ast.NewTemplate(gen, source.Span{}, "foo", ast.TemplateKindBasic, []ast.Node{letNode, printOuter})
	tpl.Params = []ast.ParamDecl{{Name: "x", TypeName: "int"}}
	file := ast.NewFile(gen, source.Span{}, "a.soy", "ns", []*ast.TemplateNode{tpl})

	p := passes.ResolveNames{}
	if err := p.RunFile(context.Background(), file, gen, sink); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("want zero diagnostics, got %d: %+v", bag.Len(), bag.Items())
	}
	if innerRef.Decl != ast.Node(letNode) {
		t.Fatalf("inner $x resolved to %v, want the let binding", innerRef.Decl)
	}
	if outerRef.Decl != ast.Node(tpl) {
		t.Fatalf("outer $x resolved to %v, want the template's @param", outerRef.Decl)
	}
}

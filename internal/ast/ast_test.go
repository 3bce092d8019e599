package ast

import (
	"testing"

	"soyc/internal/idgen"
	"soyc/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

// buildSample constructs a small file with one template:
//
//	{template .greet}
//	  {if $show}Hello, {$name}!{/if}
//	{/template}
func buildSample(gen idgen.Generator) *FileNode {
	name := NewVarRef(gen, sp(10, 15), "name")
	show := NewVarRef(gen, sp(3, 8), "show")
	hello := NewRawText(gen, sp(20, 27), "Hello, ")
	bang := NewRawText(gen, sp(30, 31), "!")
	print := NewPrint(gen, sp(27, 30), name, nil)
	ifNode := NewIf(gen, sp(0, 31), []IfBranch{
		{Cond: show, Body: []Node{hello, print, bang}},
	}, nil)
	tpl := NewTemplate(gen, sp(0, 40), "greet", TemplateKindBasic, []Node{ifNode})
	return NewFile(gen, sp(0, 40), "greet.soy", "example", []*TemplateNode{tpl})
}

func TestParentPointersMatchChildMembership(t *testing.T) {
	gen := idgen.NewSequential()
	file := buildSample(gen)

	var walk func(n Node)
	walk = func(n Node) {
		for _, c := range n.Children() {
			if c.Parent() != n {
				t.Fatalf("child %v (kind %v) has parent %v, want %v", c.ID(), c.Kind(), c.Parent(), n)
			}
			walk(c)
		}
	}
	walk(file)
}

func TestIDsAreUniquePerFileset(t *testing.T) {
	gen := idgen.NewSequential()
	file := buildSample(gen)

	seen := make(map[idgen.ID]bool)
	Walk(file, func(n Node) bool {
		if seen[n.ID()] {
			t.Fatalf("duplicate id %v on kind %v", n.ID(), n.Kind())
		}
		seen[n.ID()] = true
		return true
	})
	if len(seen) < 7 {
		t.Fatalf("expected at least 7 distinct nodes, got %d", len(seen))
	}
}

func TestReplaceChildRepairsParent(t *testing.T) {
	gen := idgen.NewSequential()
	left := NewLiteral(gen, sp(0, 1), LiteralInt, "1")
	right := NewLiteral(gen, sp(2, 3), LiteralInt, "2")
	bin := NewBinaryExpr(gen, sp(0, 3), "+", left, right)

	replacement := NewLiteral(gen, sp(0, 1), LiteralInt, "99")
	if !bin.ReplaceChild(left, replacement) {
		t.Fatal("ReplaceChild reported not found")
	}
	if bin.Left != replacement {
		t.Fatal("Left was not updated to the replacement")
	}
	if replacement.Parent() != Node(bin) {
		t.Fatal("replacement's parent was not repaired")
	}
	if bin.ReplaceChild(left, replacement) {
		t.Fatal("ReplaceChild should report false once old is no longer a child")
	}
}

func TestRemoveChildDropsFromSlice(t *testing.T) {
	gen := idgen.NewSequential()
	a := NewRawText(gen, sp(0, 1), "a")
	b := NewRawText(gen, sp(1, 2), "b")
	c := NewRawText(gen, sp(2, 3), "c")
	attrVal := NewAttrValue(gen, sp(0, 3), []Node{a, b, c})

	if !attrVal.RemoveChild(b) {
		t.Fatal("RemoveChild reported not found")
	}
	got := attrVal.Children()
	if len(got) != 2 || got[0] != Node(a) || got[1] != Node(c) {
		t.Fatalf("unexpected children after removal: %v", got)
	}
}

func TestCloneAllocatesFreshIDsAndPreservesShape(t *testing.T) {
	gen := idgen.NewSequential()
	file := buildSample(gen)

	originalIDs := make(map[idgen.ID]bool)
	Walk(file, func(n Node) bool {
		originalIDs[n.ID()] = true
		return true
	})

	clone := Clone(gen, file).(*FileNode)
	if clone.Namespace != file.Namespace || clone.Path != file.Path {
		t.Fatal("clone lost file-level fields")
	}

	cloneCount := 0
	Walk(clone, func(n Node) bool {
		cloneCount++
		if originalIDs[n.ID()] {
			t.Fatalf("clone reused id %v from the source tree", n.ID())
		}
		return true
	})

	originalCount := 0
	Walk(file, func(Node) bool { originalCount++; return true })
	if cloneCount != originalCount {
		t.Fatalf("clone has %d nodes, source has %d", cloneCount, originalCount)
	}
}

func TestSwitchCaseReplaceChildUpdatesValue(t *testing.T) {
	gen := idgen.NewSequential()
	subject := NewVarRef(gen, sp(0, 1), "x")
	v1 := NewLiteral(gen, sp(2, 3), LiteralInt, "1")
	sw := NewSwitch(gen, sp(0, 10), subject, []SwitchCase{
		{Values: []Expr{v1}, Body: nil},
	}, nil)

	repl := NewLiteral(gen, sp(2, 3), LiteralInt, "2")
	if !sw.ReplaceChild(v1, repl) {
		t.Fatal("ReplaceChild reported not found")
	}
	if sw.Cases[0].Values[0] != Expr(repl) {
		t.Fatal("case value was not updated")
	}
	if repl.Parent() != Node(sw) {
		t.Fatal("replacement's parent was not set")
	}
}

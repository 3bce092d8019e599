package passes

import (
	"context"
	"fmt"
	"strings"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// InsertMessagePlaceholders wraps every non-text child of a `msg` block in a
// PlaceholderNode with a stable, human-readable name derived from what it
// wraps: a `{$name}` print gets NAME, a `<b>` tag gets START_B, and so on
// (spec.md §4.5, §8 scenario 6). Names are deduplicated within one msg by
// appending _2, _3, ... on collision; the translation console needs every
// placeholder name in a message to be unique, but names in different
// messages never collide with each other since each msg gets its own
// counter.
type InsertMessagePlaceholders struct{}

func (InsertMessagePlaceholders) Name() pass.Name { return NameMsgPlaceholders }

func (InsertMessagePlaceholders) RunFile(_ context.Context, f *ast.FileNode, gen idgen.Generator, _ diag.Reporter) error {
	for _, t := range f.Templates {
		for _, m := range findMsgs(t) {
			insertPlaceholders(m, gen)
		}
	}
	return nil
}

func findMsgs(n ast.Node) []*ast.MsgNode {
	var out []*ast.MsgNode
	if m, ok := n.(*ast.MsgNode); ok {
		out = append(out, m)
	}
	for _, c := range n.Children() {
		out = append(out, findMsgs(c)...)
	}
	return out
}

func insertPlaceholders(m *ast.MsgNode, gen idgen.Generator) {
	used := map[string]int{}
	for _, c := range append([]ast.Node(nil), m.Body...) {
		switch c.(type) {
		case *ast.RawTextNode, *ast.PlaceholderNode:
			continue
		}
		name := dedupeName(used, placeholderName(c))
		ph := ast.NewPlaceholder(gen, c.Span(), name, placeholderExample(c), []ast.Node{c})
		ast.SpliceChild(m, c, []ast.Node{ph})
	}
}

func placeholderName(c ast.Node) string {
	switch v := c.(type) {
	case *ast.PrintNode:
		switch val := v.Value.(type) {
		case *ast.VarRefNode:
			return strings.ToUpper(val.Name)
		case *ast.FieldAccessNode:
			return strings.ToUpper(val.Field)
		default:
			return "XXX"
		}
	case *ast.CallNode:
		return strings.ToUpper(lastDotSegment(v.Callee))
	case *ast.TagOpenNode:
		return "START_" + strings.ToUpper(v.Name)
	case *ast.TagCloseNode:
		return "END_" + strings.ToUpper(v.Name)
	case *ast.SelfClosedTagNode:
		return strings.ToUpper(v.Name)
	default:
		return "XXX"
	}
}

func placeholderExample(c ast.Node) string {
	if rt, ok := c.(*ast.RawTextNode); ok {
		return rt.Text
	}
	return ""
}

func lastDotSegment(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func dedupeName(used map[string]int, base string) string {
	n := used[base]
	used[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n+1)
}

package passes

import (
	"context"
	"strings"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/pass"
)

// CombineConsecutiveRawText merges adjacent raw-text siblings produced by
// earlier passes splitting or dropping nodes around them — most often the
// optimizer folding away an `{if}`/`{switch}` and leaving its surviving text
// next to its neighbor (spec.md §4.5, §8 scenarios 1 and 6). The merged
// span covers every piece merged into it (source.Span.Cover), resolving the
// "what span does a combined node get" open question by always taking the
// union rather than picking one side arbitrarily (SPEC_FULL.md §6). Must
// run last in any phase that can fragment text, and must be idempotent: a
// tree with no adjacent raw-text siblings left is a fixed point.
type CombineConsecutiveRawText struct{}

func (CombineConsecutiveRawText) Name() pass.Name { return NameCombineRawText }

func (CombineConsecutiveRawText) RunFile(_ context.Context, f *ast.FileNode, gen idgen.Generator, _ diag.Reporter) error {
	for _, t := range f.Templates {
		combineSubtree(t, gen)
	}
	return nil
}

func combineSubtree(n ast.Node, gen idgen.Generator) {
	mergeRuns(n, gen)
	for _, c := range n.Children() {
		combineSubtree(c, gen)
	}
}

func mergeRuns(owner ast.Node, gen idgen.Generator) {
	children := owner.Children()
	i := 0
	for i < len(children) {
		if _, ok := children[i].(*ast.RawTextNode); !ok {
			i++
			continue
		}
		j := i + 1
		for j < len(children) {
			if _, ok := children[j].(*ast.RawTextNode); !ok {
				break
			}
			j++
		}
		if j-i <= 1 {
			i = j
			continue
		}
		merged := mergeRawText(gen, children[i:j])
		ast.SpliceChild(owner, children[i], []ast.Node{merged})
		for k := i + 1; k < j; k++ {
			owner.RemoveChild(children[k])
		}
		children = owner.Children()
	}
}

func mergeRawText(gen idgen.Generator, run []ast.Node) *ast.RawTextNode {
	var text strings.Builder
	span := run[0].Span()
	for idx, n := range run {
		rt := n.(*ast.RawTextNode)
		text.WriteString(rt.Text)
		if idx > 0 {
			span = span.Cover(rt.Span())
		}
	}
	return ast.NewRawText(gen, span, text.String())
}

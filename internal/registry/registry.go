// Package registry builds the Template Registry between phase 1 and phase 2
// of the pass pipeline (spec.md §4.3): the map from fully-qualified template
// name to its declaration, and the per-name list of deltemplate candidates
// ordered for delegate resolution.
package registry

import (
	"sort"
	"strconv"

	"soyc/internal/ast"
	"soyc/internal/diag"
)

// Delegate is one candidate implementation of a delegate name, ranked by
// priority (highest wins), then by the order its file was given to Build,
// then by declaration order within that file (SPEC_FULL.md §4, generalizing
// Soy's delegate-priority rule).
type Delegate struct {
	Template *ast.TemplateNode
	Variant  string // "" for the default (unvarianted) candidate
	Priority int
	fileRank int
	declRank int
}

// Registry is the fileset-wide index of templates, built once between phase
// 1 and phase 2. After Build, the only sanctioned mutation is AddSynthetic,
// used by the autoescaper to register templates it splits off mid-pipeline
// (spec.md §4.3, SPEC_FULL.md §6).
type Registry struct {
	byFQN     map[string]*ast.TemplateNode
	delegates map[string][]Delegate
	fileOrder map[*ast.FileNode]int
}

// New returns an empty Registry. Most callers should use Build instead.
func New() *Registry {
	return &Registry{
		byFQN:     make(map[string]*ast.TemplateNode),
		delegates: make(map[string][]Delegate),
		fileOrder: make(map[*ast.FileNode]int),
	}
}

// Build indexes every template in files, in the order given, regardless of
// each file's ast.FileKind: a DEP or INDIRECT_DEP file is never rewritten
// by phase 1 (spec.md §4.4), but its templates must still resolve when a
// SRC file calls into them, so the registry indexes all three kinds alike.
// Build reports SemDuplicateTemplate for any FQN collision among
// non-delegate templates (first declaration wins, matching spec.md §4.3's
// registry invariant) and SemMultipleDefaultDelegate when two or more
// unvarianted delegate candidates share the top priority (SPEC_FULL.md §4).
func Build(files []*ast.FileNode, sink diag.Reporter) *Registry {
	r := New()
	for i, f := range files {
		r.fileOrder[f] = i
	}
	for _, f := range files {
		for declIdx, t := range f.Templates {
			r.index(f, t, declIdx, sink)
		}
	}
	for name := range r.delegates {
		r.rankDelegates(name)
		r.checkDelegateConflicts(name, sink)
	}
	return r
}

func (r *Registry) index(f *ast.FileNode, t *ast.TemplateNode, declIdx int, sink diag.Reporter) {
	if t.IsDelegate {
		variant := ""
		if lit, ok := t.DelegateVariant.(*ast.LiteralNode); ok {
			variant = lit.Raw
		}
		r.delegates[t.Name] = append(r.delegates[t.Name], Delegate{
			Template: t,
			Variant:  variant,
			Priority: t.DelegatePriority,
			fileRank: r.fileOrder[f],
			declRank: declIdx,
		})
		return
	}
	fqn := t.FQN()
	if existing, ok := r.byFQN[fqn]; ok {
		sink.Report(diag.SemDuplicateTemplate, diag.SevError, t.Span(),
			"template \""+fqn+"\" is already defined",
			[]diag.Note{{Msg: "first defined here", Span: existing.Span()}}, nil)
		return
	}
	r.byFQN[fqn] = t
}

func (r *Registry) rankDelegates(name string) {
	ds := r.delegates[name]
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Priority != ds[j].Priority {
			return ds[i].Priority > ds[j].Priority
		}
		if ds[i].fileRank != ds[j].fileRank {
			return ds[i].fileRank < ds[j].fileRank
		}
		return ds[i].declRank < ds[j].declRank
	})
	r.delegates[name] = ds
}

// checkDelegateConflicts flags two or more unvarianted candidates at the
// same top priority: resolution would be ambiguous (SPEC_FULL.md §4).
func (r *Registry) checkDelegateConflicts(name string, sink diag.Reporter) {
	ds := r.delegates[name]
	if len(ds) < 2 {
		return
	}
	top := ds[0].Priority
	var defaults []Delegate
	for _, d := range ds {
		if d.Priority == top && d.Variant == "" {
			defaults = append(defaults, d)
		}
	}
	if len(defaults) > 1 {
		notes := make([]diag.Note, 0, len(defaults)-1)
		for _, d := range defaults[1:] {
			notes = append(notes, diag.Note{Msg: "also defined here", Span: d.Template.Span()})
		}
		sink.Report(diag.SemMultipleDefaultDelegate, diag.SevError, defaults[0].Template.Span(),
			"multiple deltemplates named \""+name+"\" share priority "+strconv.Itoa(top)+" with no variant to disambiguate",
			notes, nil)
	}
}

// Lookup resolves a fully qualified template name to its declaration.
func (r *Registry) Lookup(fqn string) (*ast.TemplateNode, bool) {
	t, ok := r.byFQN[fqn]
	return t, ok
}

// LookupInNamespace resolves a partial (dot-prefixed) or fully qualified
// name relative to ns, the way a {call} site resolves its callee
// (spec.md §4.3).
func (r *Registry) LookupInNamespace(ns, name string) (*ast.TemplateNode, bool) {
	if len(name) > 0 && name[0] == '.' {
		if t, ok := r.byFQN[ns+name]; ok {
			return t, true
		}
	}
	return r.Lookup(name)
}

// Delegates returns the priority-ordered candidate list for a delegate name.
func (r *Registry) Delegates(name string) []Delegate {
	return r.delegates[name]
}

// ResolveDelegate returns the winning candidate for name/variant: the
// highest-priority candidate matching variant, falling back to the
// highest-priority unvarianted candidate (spec.md's delegate semantics).
func (r *Registry) ResolveDelegate(name, variant string) (*ast.TemplateNode, bool) {
	var fallback *ast.TemplateNode
	for _, d := range r.delegates[name] {
		if d.Variant == variant {
			return d.Template, true
		}
		if d.Variant == "" && fallback == nil {
			fallback = d.Template
		}
	}
	if fallback != nil {
		return fallback, true
	}
	return nil, false
}

// All returns every non-delegate template in the registry. Order is
// unspecified; callers needing determinism should sort the result.
func (r *Registry) All() []*ast.TemplateNode {
	out := make([]*ast.TemplateNode, 0, len(r.byFQN))
	for _, t := range r.byFQN {
		out = append(out, t)
	}
	return out
}

// AddSynthetic registers a template produced mid-pipeline (e.g. by the
// autoescaper) without re-running the full Build pass. The caller is
// responsible for having already called file.AddSynthetic so the tree and
// the registry agree (SPEC_FULL.md §6).
func (r *Registry) AddSynthetic(t *ast.TemplateNode) {
	if t.IsDelegate {
		r.delegates[t.Name] = append(r.delegates[t.Name], Delegate{Template: t, Priority: t.DelegatePriority})
		r.rankDelegates(t.Name)
		return
	}
	r.byFQN[t.FQN()] = t
}

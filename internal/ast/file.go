package ast

import (
	"soyc/internal/idgen"
	"soyc/internal/source"
)

// Alias is one `{alias ns.path as short}` declaration at the top of a file.
type Alias struct {
	Path  string
	Short string
}

// FileKind is a file's provenance in the fileset: whether it was given to
// the compiler as something to rewrite, or only as a dependency whose
// templates other files may call into (spec.md §6). The zero value is
// FileKindSrc, so a FileNode built without setting FileKind behaves as a
// source file.
type FileKind uint8

const (
	FileKindSrc FileKind = iota
	FileKindDep
	FileKindIndirectDep
)

func (k FileKind) String() string {
	switch k {
	case FileKindDep:
		return "dep"
	case FileKindIndirectDep:
		return "indirect_dep"
	default:
		return "src"
	}
}

// FileNode is the root of one parsed source file: a namespace declaration
// followed by zero or more template/deltemplate declarations (spec.md §3).
// It has no parent; Parent() on a FileNode is always nil.
type FileNode struct {
	base
	Path      string
	Namespace string
	Aliases   []Alias
	Templates []*TemplateNode
	FileKind  FileKind
}

func NewFile(gen idgen.Generator, span source.Span, path, namespace string, templates []*TemplateNode) *FileNode {
	n := &FileNode{base: newBase(gen, span), Path: path, Namespace: namespace, Templates: templates}
	for _, t := range templates {
		adopt(n, t)
	}
	return n
}

func (*FileNode) Kind() Kind { return KindFile }

func (n *FileNode) Children() []Node {
	out := make([]Node, len(n.Templates))
	for i, t := range n.Templates {
		out[i] = t
	}
	return out
}

func (n *FileNode) ReplaceChild(old, replacement Node) bool {
	repl, ok := replacement.(*TemplateNode)
	if !ok {
		return false
	}
	for i, t := range n.Templates {
		if Node(t) == old {
			n.Templates[i] = repl
			adopt(n, repl)
			return true
		}
	}
	return false
}

func (n *FileNode) RemoveChild(target Node) bool {
	for i, t := range n.Templates {
		if Node(t) == target {
			n.Templates = append(n.Templates[:i], n.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// AddSynthetic appends a template produced mid-pipeline (e.g. by the
// autoescaper splitting a contextual template into variants) and adopts it.
// This is the one sanctioned mutation path into a FileNode after the parse
// phase (spec.md §4.3, SPEC_FULL.md §6).
func (n *FileNode) AddSynthetic(t *TemplateNode) {
	n.Templates = append(n.Templates, t)
	adopt(n, t)
}

// Package pass defines the two pass kinds the pipeline runs (spec.md §4.4)
// and the Manager, assembled by ConfigBuilder, that sequences them
// (spec.md §4.4, §6).
package pass

import (
	"context"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/registry"
)

// Name identifies a pass for ordering, continuation rules, and progress
// reporting. It is a defined string type rather than a bare string so a
// misspelled pass name in a continuation rule is caught by Build, not by a
// runtime panic somewhere in the pipeline (SPEC_FULL.md §6).
type Name string

// FilePass runs once per file during phase 1, before the Template Registry
// exists. It may rewrite file's tree in place but must not reach into any
// other file (spec.md §4.4).
type FilePass interface {
	Name() Name
	RunFile(ctx context.Context, file *ast.FileNode, gen idgen.Generator, sink diag.Reporter) error
}

// FilesetPass runs once over the whole fileset during phase 2, after the
// registry is built, and may consult or extend it (spec.md §4.4).
type FilesetPass interface {
	Name() Name
	RunFileset(ctx context.Context, files []*ast.FileNode, reg *registry.Registry, gen idgen.Generator, sink diag.Reporter) error
}

package pass

import (
	"context"
	"testing"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/registry"
	"soyc/internal/source"
)

type recordingFilePass struct {
	name Name
	ran  *[]string
}

func (p recordingFilePass) Name() Name { return p.name }
func (p recordingFilePass) RunFile(_ context.Context, _ *ast.FileNode, _ idgen.Generator, _ diag.Reporter) error {
	*p.ran = append(*p.ran, string(p.name))
	return nil
}

type recordingFilesetPass struct {
	name Name
	ran  *[]string
}

func (p recordingFilesetPass) Name() Name { return p.name }
func (p recordingFilesetPass) RunFileset(_ context.Context, _ []*ast.FileNode, _ *registry.Registry, _ idgen.Generator, _ diag.Reporter) error {
	*p.ran = append(*p.ran, string(p.name))
	return nil
}

func TestBuildRejectsUnknownContinuationPassName(t *testing.T) {
	var ran []string
	b := NewConfigBuilder().
		AddFilePass(recordingFilePass{name: "A", ran: &ran}).
		WithContinuationRule(ContinuationRule{Pass: "DoesNotExist", Kind: StopBefore})

	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build to reject an unknown continuation pass name")
	}
}

func TestStopAfterIsEquivalentToStopBeforeSuccessor(t *testing.T) {
	gen := idgen.NewSequential()
	files := []*ast.FileNode{ast.NewFile(gen, source0(), "a.soy", "ns", nil)}
	bag := diag.NewBag(16)
	sink := diag.BagReporter{Bag: bag}

	run := func(rule ContinuationRule) []string {
		var ran []string
		b := NewConfigBuilder().
			AddFilePass(recordingFilePass{name: "A", ran: &ran}).
			AddFilePass(recordingFilePass{name: "B", ran: &ran}).
			AddFilePass(recordingFilePass{name: "C", ran: &ran}).
			WithContinuationRule(rule)
		mgr, err := b.Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		mgr.Run(context.Background(), files, gen, sink)
		return ran
	}

	stopAfterA := run(ContinuationRule{Pass: "A", Kind: StopAfter})
	stopBeforeB := run(ContinuationRule{Pass: "B", Kind: StopBefore})

	if len(stopAfterA) != len(stopBeforeB) {
		t.Fatalf("StopAfter(A) ran %v, StopBefore(B) ran %v: expected equal sets", stopAfterA, stopBeforeB)
	}
	for i := range stopAfterA {
		if stopAfterA[i] != stopBeforeB[i] {
			t.Fatalf("StopAfter(A) ran %v, StopBefore(B) ran %v: expected the same passes", stopAfterA, stopBeforeB)
		}
	}
	if len(stopAfterA) != 1 || stopAfterA[0] != "A" {
		t.Fatalf("expected only pass A to run, got %v", stopAfterA)
	}
}

func TestStopAfterLastPassRunsToCompletion(t *testing.T) {
	gen := idgen.NewSequential()
	files := []*ast.FileNode{ast.NewFile(gen, source0(), "a.soy", "ns", nil)}
	bag := diag.NewBag(16)
	sink := diag.BagReporter{Bag: bag}

	var ran []string
	b := NewConfigBuilder().
		AddFilePass(recordingFilePass{name: "A", ran: &ran}).
		AddFilesetPass(recordingFilesetPass{name: "B", ran: &ran}).
		WithContinuationRule(ContinuationRule{Pass: "B", Kind: StopAfter})
	mgr, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	_, status, _ := mgr.Run(context.Background(), files, gen, sink)
	if status != StatusComplete {
		t.Fatalf("expected StatusComplete, got %v", status)
	}
	if len(ran) != 2 {
		t.Fatalf("expected both passes to run, got %v", ran)
	}
}

type pathRecordingFilePass struct {
	paths *[]string
}

func (pathRecordingFilePass) Name() Name { return "RecordPaths" }
func (p pathRecordingFilePass) RunFile(_ context.Context, f *ast.FileNode, _ idgen.Generator, _ diag.Reporter) error {
	*p.paths = append(*p.paths, f.Path)
	return nil
}

// Phase 1 must skip DEP/INDIRECT_DEP files entirely (spec.md §4.4); the
// registry built afterward must still index their templates so a SRC file
// can call into them (spec.md §6).
func TestRunSkipsNonSrcFilesInPhaseOne(t *testing.T) {
	gen := idgen.NewSequential()

	src := ast.NewFile(gen, source0(), "a.soy", "ns", nil)

	depTpl := ast.NewTemplate(gen, source0(), "Dep", ast.TemplateKindBasic, nil)
	dep := ast.NewFile(gen, source0(), "b.soy", "ns", []*ast.TemplateNode{depTpl})
	dep.FileKind = ast.FileKindDep

	indirectTpl := ast.NewTemplate(gen, source0(), "Indirect", ast.TemplateKindBasic, nil)
	indirect := ast.NewFile(gen, source0(), "c.soy", "ns", []*ast.TemplateNode{indirectTpl})
	indirect.FileKind = ast.FileKindIndirectDep

	files := []*ast.FileNode{src, dep, indirect}

	var touched []string
	b := NewConfigBuilder().AddFilePass(pathRecordingFilePass{paths: &touched})
	mgr, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	bag := diag.NewBag(16)
	sink := diag.BagReporter{Bag: bag}
	reg, status, _ := mgr.Run(context.Background(), files, gen, sink)
	if status != StatusComplete {
		t.Fatalf("expected StatusComplete, got %v", status)
	}
	if len(touched) != 1 || touched[0] != "a.soy" {
		t.Fatalf("expected phase 1 to touch only a.soy, got %v", touched)
	}
	if _, ok := reg.Lookup("ns.Dep"); !ok {
		t.Fatal("expected the registry to still index a DEP file's templates")
	}
	if _, ok := reg.Lookup("ns.Indirect"); !ok {
		t.Fatal("expected the registry to still index an INDIRECT_DEP file's templates")
	}
}

func source0() source.Span { return source.Span{} }

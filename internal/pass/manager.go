package pass

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"soyc/internal/ast"
	"soyc/internal/diag"
	"soyc/internal/idgen"
	"soyc/internal/observ"
	"soyc/internal/registry"
	"soyc/internal/source"
	"soyc/internal/trace"
)

// Status reports how a PassManager.Run call ended, for callers deciding
// whether to proceed to codegen or bail out (spec.md §4.4, §7).
type Status uint8

const (
	// StatusComplete means every registered pass ran.
	StatusComplete Status = iota
	// StatusStoppedEarly means a ContinuationRule halted the pipeline before
	// all passes ran; inspect the returned Timings to see how far it got.
	StatusStoppedEarly
	// StatusFailed means a pass returned a non-diagnostic error (a bug in
	// the pass itself, not a finding about the input) and the run aborted.
	StatusFailed
)

// ProgressSink receives one event per pass boundary. Implementations must be
// safe to call from the goroutine PassManager.Run runs on; PassManager never
// calls it concurrently, so a sink's own internal concurrency-safety needs
// are the sink's problem, not the manager's.
type ProgressSink interface {
	OnPassStart(name Name)
	OnPassEnd(name Name, status Status)
}

// nopProgressSink discards every event; the zero value of PassManager uses
// this so callers who don't care about progress don't have to supply one.
type nopProgressSink struct{}

func (nopProgressSink) OnPassStart(Name)       {}
func (nopProgressSink) OnPassEnd(Name, Status) {}

// Manager sequences phase 1 (per-file passes) then builds the Template
// Registry then sequences phase 2 (fileset passes), honoring continuation
// rules and emitting progress/trace events at each pass boundary
// (spec.md §4.4).
type Manager struct {
	phase1     []FilePass
	phase2     []FilesetPass
	stopBefore map[Name]bool
	tracer     trace.Tracer
	progress   ProgressSink
	shard      bool // phase-1 files may run concurrently (spec.md §5)
}

// Timings is the per-pass duration report returned by Run, built on
// observ.Timer the same way the teacher's driver reports phase timings.
type Timings struct {
	Report observ.Report
}

// Run executes phase 1 over files, builds the registry, then executes
// phase 2, honoring continuation rules and stopping early if one fires.
// sink receives every diagnostic from every pass; gen mints every node id.
func (m *Manager) Run(ctx context.Context, files []*ast.FileNode, gen idgen.Generator, sink diag.Reporter) (*registry.Registry, Status, Timings) {
	timer := observ.NewTimer()
	tracer := m.tracerOrNop()

	for _, p := range m.phase1 {
		if m.stopBefore[p.Name()] {
			return registry.Build(files, sink), StatusStoppedEarly, Timings{Report: timer.Report()}
		}
		status := m.runFilePass(ctx, p, files, gen, sink, timer, tracer)
		if status == StatusFailed {
			return registry.Build(files, sink), StatusFailed, Timings{Report: timer.Report()}
		}
	}

	reg := registry.Build(files, sink)

	for _, p := range m.phase2 {
		if m.stopBefore[p.Name()] {
			return reg, StatusStoppedEarly, Timings{Report: timer.Report()}
		}
		idx := timer.Begin(string(p.Name()))
		m.progressOrNop().OnPassStart(p.Name())
		tspan := trace.Begin(tracer, trace.ScopePass, string(p.Name()), 0)
		err := p.RunFileset(ctx, files, reg, gen, sink)
		tspan.End("")
		timer.End(idx, "")
		status := StatusComplete
		if err != nil {
			sink.Report(diag.IntFatalAssertion, diag.SevError, source.Span{}, fmt.Sprintf("pass %q failed: %v", p.Name(), err), nil, nil)
			status = StatusFailed
		}
		m.progressOrNop().OnPassEnd(p.Name(), status)
		if status == StatusFailed {
			return reg, StatusFailed, Timings{Report: timer.Report()}
		}
	}

	return reg, StatusComplete, Timings{Report: timer.Report()}
}

func (m *Manager) runFilePass(ctx context.Context, p FilePass, files []*ast.FileNode, gen idgen.Generator, sink diag.Reporter, timer *observ.Timer, tracer trace.Tracer) Status {
	idx := timer.Begin(string(p.Name()))
	m.progressOrNop().OnPassStart(p.Name())
	tspan := trace.Begin(tracer, trace.ScopePass, string(p.Name()), 0)

	src := srcFiles(files)

	var err error
	if m.shard && len(src) > 1 {
		err = m.runFilePassSharded(ctx, p, src, gen, sink)
	} else {
		for _, f := range src {
			if runErr := p.RunFile(ctx, f, gen, sink); runErr != nil {
				err = runErr
				break
			}
		}
	}

	tspan.End("")
	timer.End(idx, "")
	status := StatusComplete
	if err != nil {
		sink.Report(diag.IntFatalAssertion, diag.SevError, source.Span{}, fmt.Sprintf("pass %q failed: %v", p.Name(), err), nil, nil)
		status = StatusFailed
	}
	m.progressOrNop().OnPassEnd(p.Name(), status)
	return status
}

// runFilePassSharded fans phase-1 work for a single pass across goroutines,
// one per file (spec.md §5's optional concurrency mode). Callers opting
// into this must have built Manager with an idgen.Atomic generator and a
// concurrency-safe sink (a mutex-guarded Reporter; diag.BagReporter and
// diag.DedupReporter do no locking of their own);
// Manager does not wrap the sink itself, since goroutine-safety is a
// property of what was passed in, not something the manager can retrofit.
func (m *Manager) runFilePassSharded(ctx context.Context, p FilePass, files []*ast.FileNode, gen idgen.Generator, sink diag.Reporter) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		f := f
		g.Go(func() error {
			return p.RunFile(gctx, f, gen, sink)
		})
	}
	return g.Wait()
}

// srcFiles returns the subset of files phase 1 is allowed to rewrite.
// A DEP or INDIRECT_DEP file still contributes its templates to the
// registry built after phase 1 (other files may call into it), but phase 1
// itself never rewrites or re-diagnoses it (spec.md §4.4, §6).
func srcFiles(files []*ast.FileNode) []*ast.FileNode {
	out := make([]*ast.FileNode, 0, len(files))
	for _, f := range files {
		if f.FileKind == ast.FileKindSrc {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the full ordered pipeline (phase 1 then phase 2), for a
// progress view that wants to show not-yet-started passes as queued.
func (m *Manager) Names() []Name {
	names := make([]Name, 0, len(m.phase1)+len(m.phase2))
	for _, p := range m.phase1 {
		names = append(names, p.Name())
	}
	for _, p := range m.phase2 {
		names = append(names, p.Name())
	}
	return names
}

func (m *Manager) tracerOrNop() trace.Tracer {
	if m.tracer == nil {
		return trace.Nop
	}
	return m.tracer
}

func (m *Manager) progressOrNop() ProgressSink {
	if m.progress == nil {
		return nopProgressSink{}
	}
	return m.progress
}

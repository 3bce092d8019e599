package pass

import (
	"fmt"

	"soyc/internal/trace"
)

// Configuration holds the ordered pass names of each phase. ConfigBuilder.Build
// does not produce one: it returns a Manager directly, and nothing in this
// module constructs a Configuration.
type Configuration struct {
	Phase1Names []Name
	Phase2Names []Name
}

// ConfigBuilder assembles a Manager from an ordered list of passes plus
// continuation rules, validating both at Build time rather than leaving
// unknown pass names or dangling rules to surface as confusing runtime
// behavior later (spec.md §4.4, SPEC_FULL.md §6).
type ConfigBuilder struct {
	phase1   []FilePass
	phase2   []FilesetPass
	rules    []ContinuationRule
	tracer   trace.Tracer
	progress ProgressSink
	shard    bool
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// AddFilePass appends a phase-1 pass. Passes run in the order added.
func (b *ConfigBuilder) AddFilePass(p FilePass) *ConfigBuilder {
	b.phase1 = append(b.phase1, p)
	return b
}

// AddFilesetPass appends a phase-2 pass. Passes run in the order added,
// after every phase-1 pass and after the Template Registry is built.
func (b *ConfigBuilder) AddFilesetPass(p FilesetPass) *ConfigBuilder {
	b.phase2 = append(b.phase2, p)
	return b
}

// WithContinuationRule registers a rule to stop the pipeline relative to a
// named pass. Unknown pass names are reported by Build, not here, so rules
// can be added before the passes they name.
func (b *ConfigBuilder) WithContinuationRule(r ContinuationRule) *ConfigBuilder {
	b.rules = append(b.rules, r)
	return b
}

// WithTracer attaches a trace.Tracer the Manager emits pass-boundary spans
// to. Omit to run with trace.Nop.
func (b *ConfigBuilder) WithTracer(t trace.Tracer) *ConfigBuilder {
	b.tracer = t
	return b
}

// WithProgressSink attaches a ProgressSink the Manager notifies at every
// pass boundary.
func (b *ConfigBuilder) WithProgressSink(s ProgressSink) *ConfigBuilder {
	b.progress = s
	return b
}

// WithConcurrentFilePasses opts into sharding phase-1 passes across
// goroutines, one per file (spec.md §5). Callers must also supply an
// idgen.Atomic generator and a concurrency-safe Reporter to Manager.Run.
func (b *ConfigBuilder) WithConcurrentFilePasses(enabled bool) *ConfigBuilder {
	b.shard = enabled
	return b
}

// Build validates every continuation rule against the registered pass
// names, normalizes StopAfter rules into the equivalent StopBefore rule on
// the named pass's successor, and returns a ready-to-run Manager.
//
// A StopAfter rule on the last pass in the combined phase1+phase2 sequence
// has no successor to normalize onto; it is accepted as a no-op, since
// "stop after the last pass" and "run to completion" are the same outcome.
func (b *ConfigBuilder) Build() (*Manager, error) {
	order := make([]Name, 0, len(b.phase1)+len(b.phase2))
	known := make(map[Name]bool, len(order))
	for _, p := range b.phase1 {
		if known[p.Name()] {
			return nil, fmt.Errorf("pass: duplicate pass name %q", p.Name())
		}
		known[p.Name()] = true
		order = append(order, p.Name())
	}
	for _, p := range b.phase2 {
		if known[p.Name()] {
			return nil, fmt.Errorf("pass: duplicate pass name %q", p.Name())
		}
		known[p.Name()] = true
		order = append(order, p.Name())
	}

	stopBefore := make(map[Name]bool, len(b.rules))
	for _, r := range b.rules {
		if !known[r.Pass] {
			return nil, fmt.Errorf("pass: continuation rule names unknown pass %q", r.Pass)
		}
		switch r.Kind {
		case StopBefore:
			stopBefore[r.Pass] = true
		case StopAfter:
			if succ, ok := successor(order, r.Pass); ok {
				stopBefore[succ] = true
			}
			// r.Pass is the last pass: nothing to normalize onto, and
			// running to completion already matches "stop after the last pass".
		default:
			return nil, fmt.Errorf("pass: continuation rule for %q has an unrecognized kind", r.Pass)
		}
	}

	return &Manager{
		phase1:     b.phase1,
		phase2:     b.phase2,
		stopBefore: stopBefore,
		tracer:     b.tracer,
		progress:   b.progress,
		shard:      b.shard,
	}, nil
}

func successor(order []Name, name Name) (Name, bool) {
	for i, n := range order {
		if n == name {
			if i+1 < len(order) {
				return order[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

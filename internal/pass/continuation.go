package pass

// StopKind distinguishes the two ways a continuation rule can halt the
// pipeline relative to a named pass.
type StopKind uint8

const (
	// StopBefore halts the pipeline immediately before the named pass runs.
	StopBefore StopKind = iota
	// StopAfter halts the pipeline immediately after the named pass runs.
	// ConfigBuilder.Build normalizes every StopAfter rule into an equivalent
	// StopBefore rule on the named pass's successor at construction time, so
	// PassManager itself only ever has to implement one case (spec.md §4.4,
	// SPEC_FULL.md §6: the two forms are defined to be equivalent).
	StopAfter
)

// ContinuationRule tells the manager to stop the pipeline relative to a
// named pass, instead of running every registered pass to completion. This
// is the mechanism the "stop after ResolveNames" testable property
// (spec.md §8) is built on.
type ContinuationRule struct {
	Pass Name
	Kind StopKind
}

// Package diag defines the diagnostic sink shared by every pass in the
// pipeline (spec.md §4.1).
//
// # Purpose
//
//   - Provide deterministic, accumulate-only storage for findings produced by
//     passes: a Bag preserves insertion order, supports a capped size, and
//     offers snapshot()/errors_since(marker) so a pass can early-exit a
//     per-file loop without aborting the whole run.
//   - Offer a Reporter interface so producers (passes) never couple to
//     concrete storage: BagReporter feeds a Bag, DedupReporter wraps another
//     Reporter and drops exact repeats.
//   - Model fix suggestions as structured edits a caller may materialise and
//     apply; this package never applies them itself.
//
// # Scope
//
// Package diag performs no IO or CLI integration. Its one piece of rendering
// is golden.go, which formats diagnostics as plain text for golden-test
// snapshots; the CLI's colored output lives in cmd/soyc, which depends on
// this package, never the reverse.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity — Info, Warning, or Error (severity.go).
//   - Code — a compact numeric identifier with a stable string form
//     (codes.go), partitioned into Semantic/Policy/Internal ranges per
//     spec.md §7's error taxonomy.
//   - Message — short, positional-parameter text (see internal/pass/message.go
//     for the x/text-backed formatter).
//   - Primary — the source.Span the diagnostic is anchored to.
//   - Notes — optional secondary spans/messages; each must add context, not
//     restate the message.
//   - Fixes — optional structured edits.
//
// # Fatal sink
//
// This module has no fatal ("exploding") Reporter: no Reporter here panics or
// stops the process on a report. When a pass returns an error, pass.Manager
// reports IntFatalAssertion through the run's ordinary sink and ends the run
// with StatusFailed.
package diag

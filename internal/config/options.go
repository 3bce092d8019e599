// Package config turns a project's recognized options (spec.md §6) into a
// ready-to-run pass.Manager: which passes are in the pipeline, in what
// order, and which continuation rules apply. soyc.toml is decoded with
// github.com/BurntSushi/toml, matching how the teacher's own project
// manifest is loaded.
package config

import (
	"soyc/internal/pass"
	"soyc/internal/passes"
	"soyc/internal/trace"
)

// ContinuationDirective mirrors spec.md §6's pass_continuation_rules value
// set: CONTINUE is the default and never produces a ContinuationRule.
type ContinuationDirective string

const (
	DirectiveContinue   ContinuationDirective = "CONTINUE"
	DirectiveStopBefore ContinuationDirective = "STOP_BEFORE_PASS"
	DirectiveStopAfter  ContinuationDirective = "STOP_AFTER_PASS"
)

// Options is the recognized configuration surface from spec.md §6. Fields
// default to Go's zero value except where spec.md states an explicit
// default; Defaults below fills those in before Build reads Options.
type Options struct {
	DisableAllTypeChecking        bool                             `toml:"disable_all_type_checking"`
	AllowUnknownGlobals           bool                             `toml:"allow_unknown_globals"`
	AllowV1Expression             bool                             `toml:"allow_v1_expression"`
	DesugarHTMLNodes              *bool                            `toml:"desugar_html_nodes"`
	Optimize                      *bool                            `toml:"optimize"`
	AutoescaperEnabled            *bool                            `toml:"autoescaper_enabled"`
	AddHTMLAttributesForDebugging *bool                            `toml:"add_html_attributes_for_debugging"`
	ConformancePolicy             passes.Policy                    `toml:"conformance_config"`
	StrictAutoescapingRequired    bool                             `toml:"strict_autoescaping_required"`
	AllowExternalCalls            bool                             `toml:"allow_external_calls"`
	ExperimentalFeatures          []string                         `toml:"experimental_features"`
	Globals                       map[string]passes.Global         `toml:"-"`
	PassContinuationRules         map[string]ContinuationDirective `toml:"pass_continuation_rules"`
	Concurrency                   bool                             `toml:"concurrency"`

	// ProgressSink, Tracer are runtime-only hooks a CLI front end wires in
	// after loading a manifest; neither has a TOML representation.
	ProgressSink pass.ProgressSink `toml:"-"`
	Tracer       trace.Tracer      `toml:"-"`
}

// Defaults returns Options with every spec.md §6 default applied.
func Defaults() Options {
	t := true
	return Options{
		DesugarHTMLNodes:              &t,
		Optimize:                      &t,
		AutoescaperEnabled:            &t,
		AddHTMLAttributesForDebugging: &t,
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Build assembles a pass.Manager from o, wiring in exactly the passes each
// recognized option implies (spec.md §6). HTMLRewrite, CombineConsecutiveRawText,
// ResolveNames, and HeaderVarCheck are unconditional: nothing in §6 gates
// them off.
func Build(o Options) (*pass.Manager, error) {
	b := pass.NewConfigBuilder()

	b.AddFilePass(passes.HTMLRewrite{})
	b.AddFilePass(passes.Conformance{Policy: o.ConformancePolicy})
	b.AddFilePass(passes.InsertMessagePlaceholders{})
	b.AddFilePass(passes.HeaderVarCheck{})
	b.AddFilePass(passes.ResolveNames{})

	if !o.DisableAllTypeChecking {
		b.AddFilePass(passes.ResolveExpressionTypes{})
	}

	// Substitution always runs; allow_unknown_globals only suppresses the
	// diagnostic for a miss, not the pass itself (spec.md §6).
	b.AddFilePass(passes.GlobalRewrite{Globals: o.Globals, AllowUnknown: o.AllowUnknownGlobals})

	// AllowExternalCalls only gates spec.md's strict-deps pass, which is not
	// modeled separately here: visibility and call-site param checks already
	// cover what strict-deps would add on top (SPEC_FULL.md §4).
	b.AddFilesetPass(passes.CrossTemplateChecks{})

	if boolOr(o.AutoescaperEnabled, true) && !o.DisableAllTypeChecking {
		b.AddFilesetPass(passes.Autoescape{})
	}

	if boolOr(o.DesugarHTMLNodes, true) {
		b.AddFilePass(passes.DesugarHTML{})
	}

	if boolOr(o.Optimize, true) {
		b.AddFilePass(passes.Optimizer{})
	}

	// Must run last among file passes: both DesugarHTML and Optimizer can
	// fragment or introduce adjacent raw text (spec.md §4.5).
	b.AddFilePass(passes.CombineConsecutiveRawText{})

	for name, directive := range o.PassContinuationRules {
		rule, ok := toRule(pass.Name(name), directive)
		if !ok {
			continue
		}
		b.WithContinuationRule(rule)
	}

	b.WithConcurrentFilePasses(o.Concurrency)

	if o.ProgressSink != nil {
		b.WithProgressSink(o.ProgressSink)
	}
	if o.Tracer != nil {
		b.WithTracer(o.Tracer)
	}

	return b.Build()
}

func toRule(name pass.Name, directive ContinuationDirective) (pass.ContinuationRule, bool) {
	switch directive {
	case DirectiveStopBefore:
		return pass.ContinuationRule{Pass: name, Kind: pass.StopBefore}, true
	case DirectiveStopAfter:
		return pass.ContinuationRule{Pass: name, Kind: pass.StopAfter}, true
	default:
		return pass.ContinuationRule{}, false
	}
}

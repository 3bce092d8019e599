// Package passes implements the concrete single-file and fileset passes
// spec.md §4.5 lists, wired together by the pass.ConfigBuilder assembled in
// internal/config. Each pass here is deliberately narrow: it owns one
// rewrite or one check, and the manager sequences them (spec.md §4.4).
package passes

import "soyc/internal/pass"

// Canonical pass names, referenced both when assembling a pass.ConfigBuilder
// and in ContinuationRule values (spec.md §6's configuration surface).
const (
	NameHTMLRewrite         pass.Name = "HTMLRewrite"
	NameConformance         pass.Name = "Conformance"
	NameMsgPlaceholders     pass.Name = "MessagePlaceholderInsertion"
	NameHeaderVars          pass.Name = "HeaderVarCheck"
	NameResolveNames        pass.Name = "ResolveNames"
	NameResolveTypes        pass.Name = "ResolveExpressionTypes"
	NameGlobalRewrite       pass.Name = "GlobalRewrite"
	NameCrossTemplateChecks pass.Name = "CrossTemplateChecks"
	NameAutoescape          pass.Name = "Autoescape"
	NameCombineRawText      pass.Name = "CombineConsecutiveRawText"
	NameDesugarHTML         pass.Name = "DesugarHTML"
	NameOptimizer           pass.Name = "Optimizer"
)

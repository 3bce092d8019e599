package diag

import "fmt"

// Code identifies the kind of a diagnostic. The numeric ranges group codes by
// the error taxonomy from spec.md §7: semantic, policy, and internal-assertion.
// Syntactic codes are owned by the external parser, not this package; the
// pipeline only ever constructs Semantic/Policy/Internal codes.
type Code uint16

const (
	// UnknownCode is the zero value; never emitted deliberately.
	UnknownCode Code = 0

	// Semantic: raised by passes over an otherwise well-formed tree.
	SemInfo                    Code = 3000
	SemUndefinedVariable       Code = 3001
	SemDuplicateTemplate       Code = 3002
	SemDuplicateDeclaration    Code = 3003
	SemTypeMismatch            Code = 3004
	SemUnknownGlobal           Code = 3005
	SemVisibilityViolation     Code = 3006
	SemBannedAttribute         Code = 3007
	SemDuplicateHeaderVar      Code = 3008
	SemUnresolvedTemplate      Code = 3009
	SemAmbiguousDelegate       Code = 3010
	SemMultipleDefaultDelegate Code = 3011
	SemCallArityMismatch       Code = 3012
	SemCallSiteParamMismatch   Code = 3013
	SemV1ExpressionNotAllowed  Code = 3014
	SemBadContextualUsage      Code = 3015
	SemUnsafeVelogUsage        Code = 3016
	SemStrictHTMLViolation     Code = 3017
	SemMsgPlaceholderCollision Code = 3018
	SemAutoescapeRequired      Code = 3019
	SemUnknownNamedType        Code = 3020

	// Policy: conformance and dependency-boundary violations.
	PolConformanceViolation Code = 4000
	PolStrictDepsViolation  Code = 4001

	// Internal: pipeline invariant broken. pass.Manager reports
	// IntFatalAssertion through the ordinary sink when a pass returns an
	// error; nothing in this module emits the other internal codes.
	IntInfo                    Code = 9000
	IntContinuationUnknownPass Code = 9001
	IntDuplicatePassName       Code = 9002
	IntFatalAssertion          Code = 9003
)

var codeDescription = map[Code]string{
	UnknownCode:                UnknownCode.titleFallback(),
	SemInfo:                    "Semantic information",
	SemUndefinedVariable:       "Undefined variable",
	SemDuplicateTemplate:       "Duplicate template",
	SemDuplicateDeclaration:    "Duplicate declaration",
	SemTypeMismatch:            "Type mismatch",
	SemUnknownGlobal:           "Unknown global",
	SemVisibilityViolation:     "Visibility violation",
	SemBannedAttribute:         "Banned attribute",
	SemDuplicateHeaderVar:      "Duplicate header variable",
	SemUnresolvedTemplate:      "Unresolved template reference",
	SemAmbiguousDelegate:       "Ambiguous delegate candidate",
	SemMultipleDefaultDelegate: "Multiple default delegates in group",
	SemCallArityMismatch:       "Call argument count mismatch",
	SemCallSiteParamMismatch:   "Call-site header variable mismatch",
	SemV1ExpressionNotAllowed:  "v1 expression syntax not allowed",
	SemBadContextualUsage:      "Bad contextual usage of print directive",
	SemUnsafeVelogUsage:        "Invalid visual-element-logging usage",
	SemStrictHTMLViolation:     "Strict HTML structure violation",
	SemMsgPlaceholderCollision: "Message placeholder name collision",
	SemAutoescapeRequired:      "Autoescaping required but disabled",
	SemUnknownNamedType:        "Unknown named type",
	PolConformanceViolation:    "Conformance policy violation",
	PolStrictDepsViolation:     "Strict-deps violation: external call not allowed",
	IntInfo:                    "Internal pipeline information",
	IntContinuationUnknownPass: "Continuation rule targets unknown pass",
	IntDuplicatePassName:       "Duplicate pass name in assembled pipeline",
	IntFatalAssertion:          "Internal pipeline invariant violated",
}

func (Code) titleFallback() string { return "Unknown diagnostic" }

// ID returns the stable short code identifier, e.g. "SEM3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("POL%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

// Title returns the human-oriented short description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsInternal reports whether the code belongs to the internal-assertion range.
func (c Code) IsInternal() bool {
	return c >= 9000 && c < 10000
}

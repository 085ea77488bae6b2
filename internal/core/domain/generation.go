package domain

import "strings"

// OutcomeKind classifies the result of a bounded generation call.
type OutcomeKind string

const (
	OutcomeSuccess     OutcomeKind = "success"
	OutcomeTimeout     OutcomeKind = "timeout"      // hard deadline hit, result discarded
	OutcomeRateLimited OutcomeKind = "rate_limited" // provider rejected for throughput
	OutcomeTransient   OutcomeKind = "transient"    // provider-side timeout, likely recoverable
	OutcomeUnknown     OutcomeKind = "unknown"
)

// Outcome is the tagged result of a generation attempt.
// Answer is only meaningful when Kind is OutcomeSuccess.
type Outcome struct {
	Kind   OutcomeKind
	Answer string
}

// Success wraps generated answer text in a successful outcome.
func Success(answer string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Answer: answer}
}

// classifyRule maps an error-message substring to an outcome kind.
type classifyRule struct {
	substring string
	kind      OutcomeKind
}

// classifyRules are evaluated in order of declaration. This is best-effort
// substring matching against opaque provider error text, not an exhaustive
// taxonomy: upstream wording changes can break it, so the table stays small
// and easy to swap.
var classifyRules = []classifyRule{
	{"rate limit", OutcomeRateLimited},
	{"timeout", OutcomeTransient},
}

// ClassifyGenerationError maps a generation error to a non-success outcome
// kind by scanning the ordered rule table. Unmatched errors are unknown.
func ClassifyGenerationError(err error) OutcomeKind {
	if err == nil {
		return OutcomeUnknown
	}
	msg := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		if strings.Contains(msg, rule.substring) {
			return rule.kind
		}
	}
	return OutcomeUnknown
}

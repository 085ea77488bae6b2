package domain

// Replies holds every fixed user-facing message the pipeline can emit.
// The end user never sees a raw failure; each failure mode maps to exactly
// one of these strings.
type Replies struct {
	EmptyQuery   string // query was empty or whitespace
	Unavailable  string // index could not be built
	Timeout      string // generation exceeded the wall-clock budget
	RateLimited  string // provider rejected the call for throughput
	Transient    string // provider-side timeout
	UnknownError string // anything else the provider raised
	Fallback     string // outermost recovery, nothing more specific applies

	// NoContext substitutes for retrieved passages when search fails;
	// generation still proceeds with this degraded context.
	NoContext string

	BookingSaved string
	Pricing      string
	UrgentSaved  string
}

// DefaultReplies builds the fixed reply set around the operator's support
// contact string.
func DefaultReplies(supportContact string) Replies {
	return Replies{
		EmptyQuery:   "Please provide a question.",
		Unavailable:  "Sorry, the service is unavailable right now. Contact support: " + supportContact,
		Timeout:      "The response timed out. Please try again.",
		RateLimited:  "The system is busy right now, try again in a minute.",
		Transient:    "That query needs more time than allowed. Try simplifying your question.",
		UnknownError: "A temporary error occurred, please try again.",
		Fallback:     "Sorry, something went wrong. Contact support: " + supportContact,
		NoContext:    "No information is available right now.",
		BookingSaved: "Great! Your booking request is recorded. Our team will reach out within the hour. Contact: " + supportContact,
		Pricing: "To estimate cost we first establish:\n" +
			"- The kind of intelligence required (fixed replies or LLM)\n" +
			"- The number of scenarios / smart responses\n" +
			"- Additional integrations (CRM, spreadsheets, WhatsApp)\n" +
			"- Monthly support and follow-up\n\n" +
			"Book a consultation or contact us: " + supportContact,
		UrgentSaved: "Understood, this is urgent! We will reach out to you right away: " + supportContact,
	}
}

// ForOutcome returns the fixed reply for a non-success generation outcome.
func (r Replies) ForOutcome(kind OutcomeKind) string {
	switch kind {
	case OutcomeTimeout:
		return r.Timeout
	case OutcomeRateLimited:
		return r.RateLimited
	case OutcomeTransient:
		return r.Transient
	default:
		return r.UnknownError
	}
}

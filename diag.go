package sie

// Outcome says what happened to a record line that did not decode cleanly.
type Outcome string

const (
	// OutcomeSkipped marks a line with too few or unusable fields for
	// its tag.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeRecoveryExhausted marks a #RES line that matched none of
	// the recovery strategies.
	OutcomeRecoveryExhausted Outcome = "recovery_exhausted"
	// OutcomeDropped marks data that was recognized but has nowhere to
	// go, such as an #SRU code for an account not yet seen.
	OutcomeDropped Outcome = "dropped"
	// OutcomeUnrecognized marks a tag this parser has no decoder for.
	OutcomeUnrecognized Outcome = "unrecognized"
	// OutcomeTruncated marks input the line scanner could not finish,
	// such as a single line exceeding the buffer cap. Everything decoded
	// before that point is kept.
	OutcomeTruncated Outcome = "truncated"
)

// Diagnostic is one per-line event collected during a parse. Diagnostics
// never abort the parse; the caller decides whether a file that produced
// them is acceptable.
type Diagnostic struct {
	Line    int     `json:"line"`
	Tag     string  `json:"tag"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

func (p *parser) diag(tag string, outcome Outcome, message string) {
	d := Diagnostic{Line: p.line, Tag: tag, Outcome: outcome, Message: message}
	p.ledger.Diagnostics = append(p.ledger.Diagnostics, d)
	p.log.Warn("record diagnostic",
		"line", d.Line, "tag", d.Tag, "outcome", string(d.Outcome), "message", d.Message)
}

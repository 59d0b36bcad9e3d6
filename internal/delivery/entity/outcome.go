package entity

// OutcomeKind tags a delivery outcome.
type OutcomeKind int

const (
	OutcomeAccepted OutcomeKind = iota + 1
	OutcomeRejected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "ACCEPTED"
	case OutcomeRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the result of one delivery attempt of one chunk.
//
// Accepted outcomes carry the receiver counters; Inserted and SkippedOld are
// always present, the other counters are informational. Rejected outcomes
// carry the HTTP status (0 when no response arrived), a bounded body preview,
// and a Cause matching ErrTransportFailure or ErrMalformedResponse.
type Outcome struct {
	Kind OutcomeKind

	Inserted   int
	SkippedOld int
	Deduped    int
	Failed     int
	Total      int

	StatusCode  int
	BodyPreview string
	Cause       error
}

// Accepted builds an accepted outcome.
func Accepted(inserted, skippedOld int) Outcome {
	return Outcome{Kind: OutcomeAccepted, Inserted: inserted, SkippedOld: skippedOld}
}

// Rejected builds a rejected outcome.
func Rejected(statusCode int, bodyPreview string, cause error) Outcome {
	return Outcome{Kind: OutcomeRejected, StatusCode: statusCode, BodyPreview: bodyPreview, Cause: cause}
}

// IsAccepted reports whether the receiver accepted the chunk.
func (o Outcome) IsAccepted() bool {
	return o.Kind == OutcomeAccepted
}

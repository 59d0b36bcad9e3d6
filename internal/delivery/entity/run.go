package entity

// RunState holds the counters of one delivery run.
type RunState struct {
	Seen     int
	Inserted int
	Failed   int
}

// StopReason is the state of a run: running, or the reason it stopped.
type StopReason int

const (
	StopRunning StopReason = iota
	StopSourceExhausted
	StopEarlyExit
)

func (s StopReason) String() string {
	switch s {
	case StopSourceExhausted:
		return "SOURCE_EXHAUSTED"
	case StopEarlyExit:
		return "EARLY_EXIT"
	default:
		return "RUNNING"
	}
}

// Stopped reports whether the run reached a terminal state.
func (s StopReason) Stopped() bool {
	return s != StopRunning
}

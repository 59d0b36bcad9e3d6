package usecase

import "github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"

// DefaultSkippedOldThreshold is the skipped-as-old count above which an
// accepted chunk with no inserted rows stops the run.
const DefaultSkippedOldThreshold = 100

// Accountant owns the counters of a run and decides when it stops.
type Accountant struct {
	state     entity.RunState
	reason    entity.StopReason
	threshold int
}

// NewAccountant returns an accountant for a new run. A threshold below 1
// falls back to DefaultSkippedOldThreshold.
func NewAccountant(threshold int) *Accountant {
	if threshold < 1 {
		threshold = DefaultSkippedOldThreshold
	}
	return &Accountant{threshold: threshold}
}

// Record accounts for one delivered chunk of chunkSize rows and returns the
// run state afterwards. Once stopped, further calls change nothing.
//
// An accepted chunk with zero inserted rows and more than threshold rows
// skipped as old means the rest of the source is already downstream: the
// run stops with StopEarlyExit.
func (a *Accountant) Record(outcome entity.Outcome, chunkSize int) entity.StopReason {
	if a.reason.Stopped() {
		return a.reason
	}

	a.state.Seen += chunkSize

	if !outcome.IsAccepted() {
		a.state.Failed += chunkSize
		return a.reason
	}

	a.state.Inserted += outcome.Inserted
	if outcome.Inserted == 0 && outcome.SkippedOld > a.threshold {
		a.reason = entity.StopEarlyExit
	}

	return a.reason
}

// Finish marks the source as exhausted unless the run already stopped.
func (a *Accountant) Finish() entity.StopReason {
	if !a.reason.Stopped() {
		a.reason = entity.StopSourceExhausted
	}
	return a.reason
}

// State returns a copy of the run counters.
func (a *Accountant) State() entity.RunState {
	return a.state
}

// Reason returns the current run state.
func (a *Accountant) Reason() entity.StopReason {
	return a.reason
}

package usecase

import (
	"fmt"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
)

// Report is the final account of a delivery run.
type Report struct {
	RunID     string
	State     entity.RunState
	Reason    entity.StopReason
	Chunks    int
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the run took.
func (r Report) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// String renders the one-line summary printed at the end of a run.
func (r Report) String() string {
	return fmt.Sprintf("Done. Total rows: %d, Uploaded: %d, Failed: %d",
		r.State.Seen, r.State.Inserted, r.State.Failed)
}

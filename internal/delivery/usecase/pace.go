package usecase

import (
	"context"
	"time"
)

// DefaultDelay is the pause between two successive chunk requests.
const DefaultDelay = 200 * time.Millisecond

// Pacer spaces out chunk requests by a fixed delay.
type Pacer struct {
	delay time.Duration
}

// NewPacer returns a pacer; a delay <= 0 disables pacing.
func NewPacer(delay time.Duration) Pacer {
	return Pacer{delay: delay}
}

// Wait blocks for the delay or until ctx is done, whichever comes first.
func (p Pacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkglog"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkguid"
)

// DefaultChunkSize is the number of rows sent per request.
const DefaultChunkSize = 150

// Transport delivers one encoded chunk and classifies the reply.
type Transport interface {
	Send(ctx context.Context, payload []byte) entity.Outcome
}

type Clock interface {
	Now() time.Time
}

// Waiter blocks between two chunk requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

type Dependency struct {
	Transport Transport
	Clock     Clock
	ID        pkguid.StringID
	// Pacer overrides the fixed-delay pacer built from Delay.
	Pacer     Waiter

	ChunkSize           int
	Delay               time.Duration
	SkippedOldThreshold int
}

type Usecase struct {
	transport Transport
	clock     Clock
	id        pkguid.StringID
	pacer     Waiter

	chunkSize int
	delay     time.Duration
	threshold int
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	id := dep.ID
	if id == nil {
		id = pkguid.NewUUID()
	}

	var pacer Waiter = NewPacer(dep.Delay)
	if dep.Pacer != nil {
		pacer = dep.Pacer
	}

	chunkSize := dep.ChunkSize
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}

	threshold := dep.SkippedOldThreshold
	if threshold < 1 {
		threshold = DefaultSkippedOldThreshold
	}

	return &Usecase{
		transport: dep.Transport,
		clock:     clock,
		id:        id,
		pacer:     pacer,
		chunkSize: chunkSize,
		delay:     dep.Delay,
		threshold: threshold,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Run delivers records chunk by chunk, one request at a time, until the
// source is exhausted or the early-stop policy fires.
//
// Rejected chunks are counted and the run goes on. An encoding error, a
// source read error, or cancellation of ctx aborts the run; the returned
// report then holds the counters reached so far.
func (u *Usecase) Run(ctx context.Context, records iter.Seq2[entity.Record, error]) (Report, error) {
	if u.transport == nil {
		return Report{}, errors.New("delivery: missing transport")
	}

	runID := u.id.Generate()
	ctx = pkglog.SetCorrelationID(ctx, runID)

	acct := NewAccountant(u.threshold)
	report := Report{RunID: runID, StartedAt: u.clock.Now()}

	finish := func(err error) (Report, error) {
		report.State = acct.State()
		report.Reason = acct.Reason()
		report.EndedAt = u.clock.Now()

		attrs := []any{
			"reason", report.Reason.String(),
			"chunks", report.Chunks,
			"seen", report.State.Seen,
			"inserted", report.State.Inserted,
			"failed", report.State.Failed,
			"duration_ms", report.Duration().Milliseconds(),
		}
		if err != nil {
			slog.ErrorContext(ctx, "delivery aborted", append(attrs, "error", err)...)
		} else {
			slog.InfoContext(ctx, "delivery finished", attrs...)
		}

		return report, err
	}

	slog.InfoContext(ctx, "delivery started",
		"chunk_size", u.chunkSize,
		"delay_ms", u.delay.Milliseconds(),
		"skipped_old_threshold", u.threshold,
	)

	var header []string
	for chunk, err := range Batch(records, u.chunkSize) {
		if err != nil {
			return finish(fmt.Errorf("read records: %w", err))
		}

		if report.Chunks > 0 {
			if err := u.pacer.Wait(ctx); err != nil {
				return finish(err)
			}
		}
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		if header == nil {
			header = chunk.Records[0].Fields
		}

		payload, err := Encode(header, chunk)
		if err != nil {
			return finish(err)
		}

		outcome := u.transport.Send(ctx, payload)
		report.Chunks++
		logOutcome(ctx, chunk, outcome)

		if acct.Record(outcome, chunk.Len()) == entity.StopEarlyExit {
			slog.InfoContext(ctx, "early stop: receiver already has the remaining rows",
				"chunk", chunk.Seq,
				"skipped_old", outcome.SkippedOld,
			)
			return finish(nil)
		}
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	acct.Finish()
	return finish(nil)
}

func logOutcome(ctx context.Context, chunk entity.Chunk, outcome entity.Outcome) {
	if outcome.IsAccepted() {
		slog.InfoContext(ctx, "chunk accepted",
			"chunk", chunk.Seq,
			"rows", chunk.Len(),
			"inserted", outcome.Inserted,
			"skipped_old", outcome.SkippedOld,
			"deduped", outcome.Deduped,
			"failed", outcome.Failed,
		)
		return
	}

	slog.WarnContext(ctx, "chunk rejected",
		"chunk", chunk.Seq,
		"rows", chunk.Len(),
		"status", outcome.StatusCode,
		"body", outcome.BodyPreview,
		"error", outcome.Cause,
	)
}

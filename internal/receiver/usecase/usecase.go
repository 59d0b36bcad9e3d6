package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgcsv"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgerror"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/entity"
)

// DefaultMaxAge is how old a message may be and still be stored.
const DefaultMaxAge = 150 * 24 * time.Hour

const msgInvalidCSV = "invalid csv body"

var errNoRows = errors.New("csv needs header + at least 1 row")

type Store interface {
	// Save stores msg unless a message with the same ID exists, in which
	// case it only touches it and reports deduped.
	Save(ctx context.Context, msg entity.Message) (deduped bool, err error)
	List(ctx context.Context, filter ListFilter) ([]entity.Message, int, error)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store  Store
	Clock  Clock
	MaxAge time.Duration
}

type Usecase struct {
	store  Store
	clock  Clock
	maxAge time.Duration
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	maxAge := dep.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	return &Usecase{
		store:  dep.Store,
		clock:  clock,
		maxAge: maxAge,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Ingest stores every row of a csv body. Rows older than the max age are
// skipped, rows already stored are deduplicated, and rows the store cannot
// take are counted as failed. The body is rejected as a whole only when it
// is not csv or has no data row.
func (u *Usecase) Ingest(ctx context.Context, r io.Reader) (entity.IngestResult, error) {
	if u.store == nil {
		return entity.IngestResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	header, rows, err := readRows(r)
	if err != nil {
		return entity.IngestResult{}, err
	}

	now := u.clock.Now()
	oldest := now.Add(-u.maxAge)
	result := entity.IngestResult{Total: len(rows)}

	for _, values := range rows {
		msg := u.toMessage(newRow(header, values), now)
		if msg.SentAt.Before(oldest) {
			result.SkippedOld++
			continue
		}

		deduped, err := u.store.Save(ctx, msg)
		if err != nil {
			slog.WarnContext(ctx, "failed to store message", "id", msg.ID, "error", err)
			result.Failed++
			continue
		}

		if deduped {
			result.Deduped++
		} else {
			result.Inserted++
		}
	}

	slog.InfoContext(ctx, "csv ingested",
		"total", result.Total,
		"inserted", result.Inserted,
		"deduped", result.Deduped,
		"skipped_old", result.SkippedOld,
		"failed", result.Failed,
	)

	return result, nil
}

// readRows decodes the whole body before anything is stored, so a broken
// body stores nothing.
func readRows(r io.Reader) ([]string, [][]string, error) {
	header, records, err := pkgcsv.Read(r)
	if err != nil {
		return nil, nil, pkgerror.NewInvalidFormat(msgInvalidCSV)
	}

	var rows [][]string
	for row, err := range records {
		if err != nil {
			return nil, nil, pkgerror.NewInvalidFormat(msgInvalidCSV)
		}
		if pkgcsv.Blank(row) {
			continue
		}
		rows = append(rows, row)
	}

	if header == nil || len(rows) == 0 {
		return nil, nil, pkgerror.NewInvalidInput(errNoRows)
	}

	return header, rows, nil
}

func (u *Usecase) toMessage(r row, now time.Time) entity.Message {
	subject := r.pickOr(aliasSubject, defaultSubject)
	body := stripQuotedEmail(r.pickOr(aliasBodyText, ""))
	listserv := r.pickOr(aliasListserv, defaultListserv)
	sentAt := parseSentAt(r.pickOr(aliasSentAt, ""), now)
	providerID := strings.TrimSpace(r.pickOr(aliasMessageID, ""))
	thread := threadKey(subject)

	return entity.Message{
		ID:                messageID(providerID, listserv, sentAt, thread, body),
		ProviderMessageID: providerID,
		Source:            r.pickOr(aliasSource, defaultSource),
		Listserv:          listserv,
		FromEmail:         r.pickOr(aliasFromEmail, ""),
		FromName:          r.pickOr(aliasFromName, ""),
		ReplyTo:           r.pickOr(aliasReplyTo, ""),
		Subject:           subject,
		BodyText:          body,
		BodyHTML:          r.pickOr(aliasBodyHTML, ""),
		ThreadKey:         thread,
		SentAt:            sentAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// List returns a newest-first page of stored messages.
func (u *Usecase) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if u.store == nil {
		return ListResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if filter.Limit < 1 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	messages, total, err := u.store.List(ctx, filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("list messages: %w", err)
	}

	return ListResult{
		Messages: messages,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
		Total:    total,
	}, nil
}

package inbound

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgerror"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgrouter"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/usecase"
)

const (
	headerSecret = "X-Webhook-Secret"

	maxBodyBytes = 10 << 20

	msgTooLarge   = "csv body too large"
	msgUnreadable = "unreadable request body"
)

type HTTPEndpoint struct {
	uc      uc
	secret  string
	maxBody int64
}

// Webhook ingests a csv body. Its reply shape is fixed by the uploader, so
// it is written directly instead of through the router envelope.
func (h *HTTPEndpoint) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.authorized(r) {
		writeWebhookError(ctx, w, pkgerror.NewUnauthorized())
		return
	}

	if !pkgrouter.IsCSV(r.Header.Get("Content-Type")) {
		writeWebhookError(ctx, w, pkgerror.NewInvalidInput(errors.New("expected content-type text/csv")))
		return
	}

	// a body cut short must not be ingested as if the last row were complete
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeWebhookError(ctx, w, pkgerror.NewTooLarge(msgTooLarge))
			return
		}
		writeWebhookError(ctx, w, pkgerror.NewInvalidFormat(msgUnreadable))
		return
	}

	result, err := h.uc.Ingest(ctx, bytes.NewReader(body))
	if err != nil {
		writeWebhookError(ctx, w, err)
		return
	}

	pkgrouter.WriteJSON(w, WebhookResponse{
		OK:         true,
		Mode:       "csv_via_webhook",
		Inserted:   result.Inserted,
		Deduped:    result.Deduped,
		Failed:     result.Failed,
		SkippedOld: result.SkippedOld,
		Total:      result.Total,
	}, http.StatusOK)
}

func (h *HTTPEndpoint) authorized(r *http.Request) bool {
	got := r.Header.Get(headerSecret)
	if got == "" || h.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

func writeWebhookError(ctx context.Context, w http.ResponseWriter, err error) {
	perr := pkgerror.As(err)
	msg := perr.Msg()
	if perr.Code() == pkgerror.CodeInternal {
		slog.ErrorContext(ctx, "webhook ingest failed", "error", err)
		msg = "internal error"
	}

	pkgrouter.WriteJSON(w, WebhookError{OK: false, Error: msg}, perr.StatusCode())
}

func (h *HTTPEndpoint) Emails(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()

	limit, err := parseNonNegative(query.Get("limit"), "limit")
	if err != nil {
		return nil, err
	}
	offset, err := parseNonNegative(query.Get("offset"), "offset")
	if err != nil {
		return nil, err
	}
	since, err := parseEpoch(query.Get("since"), "since")
	if err != nil {
		return nil, err
	}
	until, err := parseEpoch(query.Get("until"), "until")
	if err != nil {
		return nil, err
	}

	result, err := h.uc.List(ctx, usecase.ListFilter{
		Query:  strings.TrimSpace(query.Get("q")),
		Since:  since,
		Until:  until,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	emails := make([]Email, 0, len(result.Messages))
	for _, msg := range result.Messages {
		emails = append(emails, toHTTPEmail(msg))
	}

	return EmailsResponse{
		Emails: emails,
		limit:  result.Limit,
		offset: result.Offset,
		total:  result.Total,
	}, nil
}

func parseNonNegative(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, pkgerror.NewInvalidInput(errors.New("invalid " + name))
	}
	return value, nil
}

func parseEpoch(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, pkgerror.NewInvalidInput(errors.New("invalid " + name))
	}
	return time.Unix(sec, 0).UTC(), nil
}

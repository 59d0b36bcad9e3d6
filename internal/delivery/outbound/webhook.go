package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/usecase"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkglog"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgrouter"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkguid"
)

const (
	// HeaderSecret carries the shared secret checked by the receiver.
	HeaderSecret = "X-Webhook-Secret"

	DefaultTimeout      = 60 * time.Second
	DefaultPreviewLimit = 300

	// maxReplyBytes bounds how much of a reply is read.
	maxReplyBytes = 1 << 20
)

var errMissingEndpoint = errors.New("webhook: endpoint is required")

type Config struct {
	Endpoint     string
	Secret       string
	Timeout      time.Duration
	PreviewLimit int

	// Client overrides the http client; Timeout is ignored when set.
	Client *http.Client
}

// Webhook posts encoded chunks to the ingestion endpoint.
type Webhook struct {
	endpoint     string
	secret       string
	previewLimit int
	client       *http.Client
	ids          pkguid.NumberID
}

// reply is the counters part of the receiver's JSON answer. Pointers tell a
// missing counter apart from a zero one.
type reply struct {
	Inserted   *int `json:"inserted"`
	SkippedOld *int `json:"skippedOld"`
	Deduped    int  `json:"deduped"`
	Failed     int  `json:"failed"`
	Total      int  `json:"total"`
}

func NewWebhook(cfg Config, ids pkguid.NumberID) (*Webhook, error) {
	if cfg.Endpoint == "" {
		return nil, errMissingEndpoint
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := cfg.PreviewLimit
	if limit < 1 {
		limit = DefaultPreviewLimit
	}

	return &Webhook{
		endpoint:     cfg.Endpoint,
		secret:       cfg.Secret,
		previewLimit: limit,
		client:       client,
		ids:          ids,
	}, nil
}

// Send posts one payload and classifies the reply. It never retries and
// never returns an error: every failure is a rejected outcome.
func (w *Webhook) Send(ctx context.Context, payload []byte) entity.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return entity.Rejected(0, w.preview(err.Error()), fmt.Errorf("%w: %v", entity.ErrTransportFailure, err))
	}

	req.Header.Set("Content-Type", usecase.ContentType)
	req.Header.Set(HeaderSecret, w.secret)
	if pkglog.HasCorrelationID(ctx) {
		req.Header.Set(pkgrouter.HeaderCorrelationID, pkglog.GetCorrelationID(ctx))
	}
	if w.ids != nil {
		req.Header.Set(pkgrouter.HeaderRequestID, strconv.FormatInt(w.ids.Generate(), 10))
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return entity.Rejected(0, w.preview(err.Error()), fmt.Errorf("%w: %v", entity.ErrTransportFailure, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return entity.Rejected(resp.StatusCode, w.preview(err.Error()), fmt.Errorf("%w: read reply: %v", entity.ErrTransportFailure, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.Rejected(resp.StatusCode, w.preview(string(body)), fmt.Errorf("%w: status %d", entity.ErrTransportFailure, resp.StatusCode))
	}

	var rep reply
	if err := json.Unmarshal(body, &rep); err != nil {
		return entity.Rejected(resp.StatusCode, w.preview(string(body)), fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err))
	}
	if rep.Inserted == nil || rep.SkippedOld == nil {
		return entity.Rejected(resp.StatusCode, w.preview(string(body)), fmt.Errorf("%w: missing inserted or skippedOld", entity.ErrMalformedResponse))
	}

	out := entity.Accepted(*rep.Inserted, *rep.SkippedOld)
	out.Deduped = rep.Deduped
	out.Failed = rep.Failed
	out.Total = rep.Total
	out.StatusCode = resp.StatusCode

	return out
}

func (w *Webhook) preview(s string) string {
	return Preview(s, w.previewLimit)
}

// Preview returns at most limit runes of s.
func Preview(s string, limit int) string {
	if limit < 1 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

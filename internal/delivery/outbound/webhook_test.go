package outbound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/source"
	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/usecase"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkglog"
)

type counterID struct {
	mu sync.Mutex
	n  int64
}

func (c *counterID) Generate() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

type fixedID string

func (id fixedID) Generate() string {
	return string(id)
}

func newTestWebhook(t *testing.T, url string) *Webhook {
	t.Helper()
	w, err := NewWebhook(Config{Endpoint: url, Secret: "s3cret", Timeout: 2 * time.Second}, &counterID{})
	if err != nil {
		t.Fatalf("new webhook: %v", err)
	}
	return w
}

func TestSendAccepted(t *testing.T) {
	var got http.Header
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"mode":"csv_via_webhook","inserted":2,"deduped":1,"failed":0,"skippedOld":3,"total":6}`)
	}))
	defer srv.Close()

	ctx := pkglog.SetCorrelationID(context.Background(), "run-7")
	out := newTestWebhook(t, srv.URL).Send(ctx, []byte("Title\na\n"))

	if !out.IsAccepted() {
		t.Fatalf("expected accepted, got %+v", out)
	}
	if out.Inserted != 2 || out.SkippedOld != 3 || out.Deduped != 1 || out.Total != 6 {
		t.Fatalf("unexpected counters %+v", out)
	}
	if body != "Title\na\n" {
		t.Fatalf("unexpected body %q", body)
	}
	if got.Get("Content-Type") != "text/csv" {
		t.Fatalf("unexpected content type %q", got.Get("Content-Type"))
	}
	if got.Get("X-Webhook-Secret") != "s3cret" {
		t.Fatalf("secret header not sent")
	}
	if got.Get("X-Correlation-ID") != "run-7" {
		t.Fatalf("expected run id as correlation id, got %q", got.Get("X-Correlation-ID"))
	}
	if got.Get("X-Request-ID") != "1" {
		t.Fatalf("expected request id 1, got %q", got.Get("X-Request-ID"))
	}
}

func TestSendZeroCountersAreAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"inserted":0,"skippedOld":0}`)
	}))
	defer srv.Close()

	out := newTestWebhook(t, srv.URL).Send(context.Background(), []byte("x"))
	if !out.IsAccepted() || out.Inserted != 0 || out.SkippedOld != 0 {
		t.Fatalf("expected accepted zero counters, got %+v", out)
	}
}

func TestSendRejectedStatus(t *testing.T) {
	long := strings.Repeat("é", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, long)
	}))
	defer srv.Close()

	out := newTestWebhook(t, srv.URL).Send(context.Background(), []byte("x"))

	if out.IsAccepted() || out.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected rejected 500, got %+v", out)
	}
	if !errors.Is(out.Cause, entity.ErrTransportFailure) || errors.Is(out.Cause, entity.ErrMalformedResponse) {
		t.Fatalf("unexpected cause %v", out.Cause)
	}
	if out.BodyPreview != strings.Repeat("é", DefaultPreviewLimit) {
		t.Fatalf("expected preview of %d runes, got %d bytes", DefaultPreviewLimit, len(out.BodyPreview))
	}
}

func TestSendMalformedReply(t *testing.T) {
	bodies := []string{
		`not json`,
		`{"ok":true}`,
		`{"inserted":3}`,
		`{"inserted":"3","skippedOld":0}`,
		``,
	}

	for _, b := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, b)
		}))

		out := newTestWebhook(t, srv.URL).Send(context.Background(), []byte("x"))
		srv.Close()

		if out.IsAccepted() {
			t.Fatalf("body %q: expected rejected, got %+v", b, out)
		}
		if out.StatusCode != http.StatusOK {
			t.Fatalf("body %q: expected status 200, got %d", b, out.StatusCode)
		}
		if !errors.Is(out.Cause, entity.ErrMalformedResponse) || !errors.Is(out.Cause, entity.ErrTransportFailure) {
			t.Fatalf("body %q: unexpected cause %v", b, out.Cause)
		}
	}
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	out := newTestWebhook(t, url).Send(context.Background(), []byte("x"))

	if out.IsAccepted() || out.StatusCode != 0 {
		t.Fatalf("expected rejected with status 0, got %+v", out)
	}
	if out.BodyPreview == "" || !errors.Is(out.Cause, entity.ErrTransportFailure) {
		t.Fatalf("expected error text and transport failure, got %+v", out)
	}
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	w, err := NewWebhook(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("new webhook: %v", err)
	}

	out := w.Send(context.Background(), []byte("x"))
	if out.IsAccepted() || out.StatusCode != 0 || !errors.Is(out.Cause, entity.ErrTransportFailure) {
		t.Fatalf("expected timeout to be a transport failure, got %+v", out)
	}
}

func TestNewWebhookRequiresEndpoint(t *testing.T) {
	if _, err := NewWebhook(Config{}, nil); err == nil {
		t.Fatalf("expected error without endpoint")
	}
}

func TestPreview(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"日本語テキスト", 3, "日本語"},
		{"", 3, ""},
		{"abc", 0, "abc"},
	}

	for _, tc := range cases {
		if got := Preview(tc.in, tc.limit); got != tc.want {
			t.Fatalf("Preview(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

// TestDeliverThroughWebhook drives a full run against a receiver that
// inserts every row it gets.
func TestDeliverThroughWebhook(t *testing.T) {
	var mu sync.Mutex
	var sizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_, chunk, err := source.Decode(b)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		mu.Lock()
		sizes = append(sizes, chunk.Len())
		mu.Unlock()

		fmt.Fprintf(w, `{"ok":true,"inserted":%d,"skippedOld":0}`, chunk.Len())
	}))
	defer srv.Close()

	var doc strings.Builder
	doc.WriteString("Title,Date,Creator,Link,Description\n")
	for i := 1; i <= 320; i++ {
		fmt.Fprintf(&doc, "post %d,2025-01-02,a@b.edu,https://x/%d,\"body, %d\"\n", i, i, i)
	}
	_, records, err := source.Read(strings.NewReader(doc.String()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	uc := usecase.New(usecase.Dependency{
		Transport: newTestWebhook(t, srv.URL),
		ID:        fixedID("run-e2e"),
		ChunkSize: 150,
	})

	report, err := uc.Run(context.Background(), records)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !reflect.DeepEqual(sizes, []int{150, 150, 20}) {
		t.Fatalf("expected chunk sizes [150 150 20], got %v", sizes)
	}
	want := entity.RunState{Seen: 320, Inserted: 320, Failed: 0}
	if report.State != want || report.Reason != entity.StopSourceExhausted {
		t.Fatalf("unexpected report %+v", report)
	}
}

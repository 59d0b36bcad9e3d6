package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
)

// trackedBody records how much of a request body has been read.
type trackedBody struct {
	r    io.Reader
	read int
}

func (b *trackedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.read += n
	return n, err
}

func (b *trackedBody) Close() error { return nil }

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			t.Fatalf("bad log line %q: %v", raw, err)
		}
		if line["msg"] == msg {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestLoggingStreamsCSVBodies(t *testing.T) {
	logs := captureLogs(t)

	doc := strings.Repeat("title,body\n", 20000)
	body := &trackedBody{r: strings.NewReader(doc)}

	readBefore := -1
	var got []byte
	h := middlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		readBefore = body.read
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/webhook/email", body)
	req.Header.Set("Content-Type", "text/csv")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if readBefore != 0 {
		t.Fatalf("csv body must reach the handler unread, %d bytes were read before", readBefore)
	}
	if string(got) != doc {
		t.Fatalf("handler got %d bytes, want %d", len(got), len(doc))
	}

	sent := logLines(t, logs, "response sent")
	if len(sent) != 1 {
		t.Fatalf("expected one response log, got %d", len(sent))
	}
	counted, ok := sent[0]["request_body"].(map[string]any)
	if !ok {
		t.Fatalf("expected request_body counters, got %v", sent[0])
	}
	if counted["bytes"] != float64(len(doc)) || counted["lines"] != float64(20000) {
		t.Fatalf("unexpected counters %v", counted)
	}
}

func TestLoggingKeepsFullLargeBody(t *testing.T) {
	logs := captureLogs(t)

	doc := strings.Repeat("x", maxLoggedBodyBytes+100)

	var got []byte
	h := middlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/anything", strings.NewReader(doc))
	req.Header.Set("Content-Type", "text/plain")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if string(got) != doc {
		t.Fatalf("handler got %d bytes, want %d", len(got), len(doc))
	}

	received := logLines(t, logs, "request received")
	if len(received) != 1 {
		t.Fatalf("expected one request log, got %d", len(received))
	}
	logged, ok := received[0]["body"].(map[string]any)
	if !ok || logged["truncated"] != true {
		t.Fatalf("expected truncated body in log, got %v", received[0]["body"])
	}
	if s, _ := logged["body"].(string); len(s) != maxLoggedBodyBytes {
		t.Fatalf("expected %d logged bytes, got %d", maxLoggedBodyBytes, len(s))
	}
}

func TestLoggingRejectsUnreadableBody(t *testing.T) {
	captureLogs(t)

	called := false
	h := middlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	body := io.MultiReader(strings.NewReader(`{"a":`), iotest.ErrReader(io.ErrUnexpectedEOF))
	req := httptest.NewRequest(http.MethodPost, "/anything", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Fatalf("handler must not run on an unreadable body")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestIsCSV(t *testing.T) {
	cases := map[string]bool{
		"text/csv":                 true,
		"Text/CSV; charset=utf-8":  true,
		"application/octet-stream": true,
		"application/json":         false,
		"":                         false,
	}
	for ct, want := range cases {
		if got := IsCSV(ct); got != want {
			t.Fatalf("IsCSV(%q) = %v, want %v", ct, got, want)
		}
	}
}

package entity

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecordGetAndMatches(t *testing.T) {
	header := []string{"Title", "Date"}
	rec := Record{Fields: header, Values: []string{"hello", "2025-01-01"}}

	if v, ok := rec.Get("Date"); !ok || v != "2025-01-01" {
		t.Fatalf("expected Date value, got %q %v", v, ok)
	}
	if _, ok := rec.Get("Link"); ok {
		t.Fatalf("expected missing field")
	}
	if !rec.Matches([]string{"Title", "Date"}) {
		t.Fatalf("expected record to match its header")
	}
	if rec.Matches([]string{"Date", "Title"}) {
		t.Fatalf("expected order to matter")
	}

	short := Record{Fields: header, Values: []string{"only"}}
	if short.Matches(header) {
		t.Fatalf("expected short row not to match")
	}
}

func TestMalformedResponseIsTransportFailure(t *testing.T) {
	err := fmt.Errorf("chunk 3: %w", ErrMalformedResponse)

	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse")
	}
	if !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("expected malformed response to count as transport failure")
	}
	if errors.Is(ErrTransportFailure, ErrMalformedResponse) {
		t.Fatalf("plain transport failure must not be malformed")
	}
}

func TestStopReasonString(t *testing.T) {
	if StopRunning.Stopped() {
		t.Fatalf("running must not be stopped")
	}
	if !StopEarlyExit.Stopped() || StopEarlyExit.String() != "EARLY_EXIT" {
		t.Fatalf("unexpected early exit state")
	}
	if got := OutcomeRejected.String(); got != "REJECTED" {
		t.Fatalf("unexpected outcome kind string %q", got)
	}
}

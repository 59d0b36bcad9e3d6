package pkglog

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "[invalid_chain_id]" {
		t.Fatalf("expected invalid chain id, got %q", got)
	}
	if HasCorrelationID(ctx) {
		t.Fatalf("expected no correlation id on empty context")
	}

	ctx = SetCorrelationID(ctx, "cid-123")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("expected cid-123, got %q", got)
	}
	if !HasCorrelationID(ctx) {
		t.Fatalf("expected correlation id to be present")
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Fatalf("expected no request id, got %q", got)
	}

	ctx = SetRequestID(ctx, "1849302345871360000")
	if got := GetRequestID(ctx); got != "1849302345871360000" {
		t.Fatalf("expected request id, got %q", got)
	}
}

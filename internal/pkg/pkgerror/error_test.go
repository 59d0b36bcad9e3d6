package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeValidation.String(); got != "ERROR_TYPE_VALIDATION" {
		t.Fatalf("unexpected validation string: %q", got)
	}
	if got := TypeBusiness.String(); got != "ERROR_TYPE_BUSINESS" {
		t.Fatalf("unexpected business string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeString(t *testing.T) {
	if got := CodeUnauthorized.String(); got != "ERROR_CODE_UNAUTHORIZED" {
		t.Fatalf("unexpected unauthorized string: %q", got)
	}
	if got := CodeTooLarge.String(); got != "ERROR_CODE_TOO_LARGE" {
		t.Fatalf("unexpected too large string: %q", got)
	}
	if got := Code(99).String(); got != "ERROR_CODE_INTERNAL" {
		t.Fatalf("unexpected default code string: %q", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	root := errors.New("boom")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Msg(); got != "Internal server error" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
}

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
		msg  string
	}{
		{NewUnauthorized(), http.StatusUnauthorized, "unauthorized"},
		{NewInvalidFormat("csv needs header + at least 1 row"), http.StatusBadRequest, "csv needs header + at least 1 row"},
		{NewInvalidInput(errors.New("invalid limit")), http.StatusBadRequest, "invalid limit"},
		{NewBusiness("missing", CodeNotFound), http.StatusNotFound, "missing"},
		{NewTooLarge("csv body too large"), http.StatusRequestEntityTooLarge, "csv body too large"},
	}

	for _, tc := range cases {
		gerr := tc.err.(*Error)
		if got := gerr.StatusCode(); got != tc.want {
			t.Fatalf("%s: expected status %d, got %d", gerr.String(), tc.want, got)
		}
		if got := gerr.Msg(); got != tc.msg {
			t.Fatalf("expected msg %q, got %q", tc.msg, got)
		}
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	validation := new(nil, "", TypeValidation, CodeInternal).(*Error)
	if got := validation.Error(); got != "Validation violation" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}

	server := new(nil, "", TypeServer, CodeInternal).(*Error)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("ingest: %w", NewUnauthorized())
	if got := As(wrapped).Code(); got != CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", got)
	}

	plain := errors.New("disk full")
	perr := As(plain)
	if perr.Code() != CodeInternal || !errors.Is(perr, plain) {
		t.Fatalf("expected plain error to become internal server error, got %s", perr.String())
	}
	if !strings.Contains(perr.String(), "ERROR_TYPE_SERVER") {
		t.Fatalf("expected server type in %q", perr.String())
	}
}

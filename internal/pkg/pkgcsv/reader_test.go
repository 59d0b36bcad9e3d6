package pkgcsv

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestReadRows(t *testing.T) {
	doc := "Title,Date\nfirst,2025-01-01\n\"second, with comma\",2025-01-02\nshort\n"

	header, rows, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"Title", "Date"}) {
		t.Fatalf("unexpected header: %v", header)
	}

	var got [][]string
	for row, err := range rows {
		if err != nil {
			t.Fatalf("row: %v", err)
		}
		got = append(got, row)
	}

	want := [][]string{
		{"first", "2025-01-01"},
		{"second, with comma", "2025-01-02"},
		{"short"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReadEmpty(t *testing.T) {
	header, rows, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if header != nil {
		t.Fatalf("expected no header, got %v", header)
	}
	for range rows {
		t.Fatalf("expected no rows")
	}
}

func TestReadBrokenRow(t *testing.T) {
	_, rows, err := Read(strings.NewReader("Title\n\"open\n"))
	if err != nil {
		t.Fatalf("header: %v", err)
	}

	var failed bool
	for _, err := range rows {
		if err != nil {
			failed = true
		}
	}
	if !failed {
		t.Fatalf("expected an error for an unterminated quote")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestReadHeaderError(t *testing.T) {
	_, _, err := Read(failingReader{})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
}

func TestBlank(t *testing.T) {
	if !Blank([]string{"", " ", "\t"}) {
		t.Fatalf("expected whitespace row to be blank")
	}
	if !Blank(nil) {
		t.Fatalf("expected empty row to be blank")
	}
	if Blank([]string{"", "x"}) {
		t.Fatalf("expected row with a value not to be blank")
	}
}

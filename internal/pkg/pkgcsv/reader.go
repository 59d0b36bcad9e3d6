package pkgcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Read reads the header row of r and returns it with a lazy sequence of the
// remaining rows. An empty document has no header and no rows.
//
// Rows are not checked against the header: a row with a different number of
// fields is yielded as is.
func Read(r io.Reader) ([]string, iter.Seq2[[]string, error], error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, func(func([]string, error) bool) {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	rows := func(yield func([]string, error) bool) {
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("read row: %w", err))
				return
			}

			if !yield(row, nil) {
				return
			}
		}
	}

	return header, rows, nil
}

// Blank reports whether every value of row is empty or whitespace.
func Blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

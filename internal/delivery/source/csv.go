package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgcsv"
)

// Read reads the header row of a csv document and returns it with a lazy
// sequence of the remaining rows as records. An empty document has no header
// and no rows.
//
// A row with a different number of fields than the header is yielded as is
// and rejected later by the encoder.
func Read(r io.Reader) ([]string, iter.Seq2[entity.Record, error], error) {
	header, rows, err := pkgcsv.Read(r)
	if err != nil {
		return nil, nil, err
	}

	records := func(yield func(entity.Record, error) bool) {
		for row, err := range rows {
			if err != nil {
				yield(entity.Record{}, err)
				return
			}
			if !yield(entity.Record{Fields: header, Values: row}, nil) {
				return
			}
		}
	}

	return header, records, nil
}

// Decode parses an encoded chunk payload back into its header and records.
func Decode(payload []byte) ([]string, entity.Chunk, error) {
	header, records, err := Read(bytes.NewReader(payload))
	if err != nil {
		return nil, entity.Chunk{}, err
	}

	var chunk entity.Chunk
	for rec, err := range records {
		if err != nil {
			return nil, entity.Chunk{}, err
		}
		chunk.Records = append(chunk.Records, rec)
	}

	return header, chunk, nil
}

// File is a csv file opened as a record source.
type File struct {
	f       *os.File
	header  []string
	records iter.Seq2[entity.Record, error]
}

// Open opens the csv file at path and reads its header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	header, records, err := Read(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{f: f, header: header, records: records}, nil
}

// Header returns the field names of the file, nil for an empty file.
func (s *File) Header() []string {
	return s.header
}

// Records returns the rows of the file in file order. It can be ranged once.
func (s *File) Records() iter.Seq2[entity.Record, error] {
	return s.records
}

// Close closes the underlying file.
func (s *File) Close() error {
	return s.f.Close()
}

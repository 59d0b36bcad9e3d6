package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
)

// ContentType is the media type of an encoded chunk.
const ContentType = "text/csv"

// Encode writes the header row followed by one row per record as csv.
// It fails with entity.ErrEncoding when a record does not match the header.
func Encode(header []string, chunk entity.Chunk) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}

	for i, rec := range chunk.Records {
		if !rec.Matches(header) {
			return nil, fmt.Errorf("%w: chunk %d row %d has %d values for fields %q, header is %q",
				entity.ErrEncoding, chunk.Seq, i+1, len(rec.Values), rec.Fields, header)
		}
		if err := w.Write(rec.Values); err != nil {
			return nil, fmt.Errorf("encode chunk %d row %d: %w", chunk.Seq, i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode chunk %d: %w", chunk.Seq, err)
	}

	return buf.Bytes(), nil
}

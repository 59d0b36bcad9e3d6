package usecase

import (
	"iter"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
)

// Batch groups records into chunks of size rows, keeping source order. The
// last chunk holds the remainder; an empty source yields no chunk. A source
// error is yielded once and ends the sequence. size < 1 is treated as 1.
func Batch(records iter.Seq2[entity.Record, error], size int) iter.Seq2[entity.Chunk, error] {
	if size < 1 {
		size = 1
	}

	return func(yield func(entity.Chunk, error) bool) {
		seq := 0
		buf := make([]entity.Record, 0, size)

		for rec, err := range records {
			if err != nil {
				yield(entity.Chunk{}, err)
				return
			}

			buf = append(buf, rec)
			if len(buf) < size {
				continue
			}

			seq++
			if !yield(entity.Chunk{Seq: seq, Records: buf}, nil) {
				return
			}
			buf = make([]entity.Record, 0, size)
		}

		if len(buf) > 0 {
			seq++
			yield(entity.Chunk{Seq: seq, Records: buf}, nil)
		}
	}
}

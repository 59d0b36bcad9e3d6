package entity

import "slices"

// Record is one flat row: an ordered set of field names and their values.
// Records of a run share the same Fields slice.
type Record struct {
	Fields []string
	Values []string
}

// Get returns the value of field, if the record has it.
func (r Record) Get(field string) (string, bool) {
	i := slices.Index(r.Fields, field)
	if i == -1 || i >= len(r.Values) {
		return "", false
	}
	return r.Values[i], true
}

// Matches reports whether the record has exactly the header's fields, in order,
// with one value per field.
func (r Record) Matches(header []string) bool {
	return slices.Equal(r.Fields, header) && len(r.Values) == len(header)
}

// Chunk is a bounded, ordered group of records sent in one request.
// Seq numbers chunks of a run from 1.
type Chunk struct {
	Seq     int
	Records []Record
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int {
	return len(c.Records)
}

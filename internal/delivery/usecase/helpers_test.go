package usecase

import (
	"errors"
	"fmt"
	"iter"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery/entity"
)

var testHeader = []string{"Title", "Date", "Creator", "Link", "Description"}

func makeRecords(n int) []entity.Record {
	records := make([]entity.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, entity.Record{
			Fields: testHeader,
			Values: []string{
				fmt.Sprintf("post %d", i),
				"2025-01-02T15:04:05Z",
				"someone@example.edu",
				fmt.Sprintf("https://lists.example.edu/%d", i),
				"body",
			},
		})
	}
	return records
}

func seqOf(records []entity.Record) iter.Seq2[entity.Record, error] {
	return func(yield func(entity.Record, error) bool) {
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

var errSourceBroken = errors.New("source broken")

// failingAfter yields n records and then errSourceBroken.
func failingAfter(records []entity.Record, n int) iter.Seq2[entity.Record, error] {
	return func(yield func(entity.Record, error) bool) {
		for _, rec := range records[:n] {
			if !yield(rec, nil) {
				return
			}
		}
		yield(entity.Record{}, errSourceBroken)
	}
}

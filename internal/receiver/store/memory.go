package store

import (
	"context"
	"slices"
	"sync"

	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/entity"
	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/usecase"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[string]*entity.Message
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		messages: make(map[string]*entity.Message),
	}
}

func (s *InMemoryStore) Save(ctx context.Context, msg entity.Message) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.messages[msg.ID]; ok {
		existing.UpdatedAt = msg.UpdatedAt
		return true, nil
	}

	s.messages[msg.ID] = &msg

	return false, nil
}

func (s *InMemoryStore) List(ctx context.Context, filter usecase.ListFilter) ([]entity.Message, int, error) {
	s.mu.RLock()
	matched := make([]entity.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		if filter.Matches(*msg) {
			matched = append(matched, *msg)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b entity.Message) int {
		if c := b.SentAt.Compare(a.SentAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	return matched[start:end], total, nil
}

// Len returns the number of stored messages.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}

package usecase

import (
	"strings"
	"time"

	"github.com/m4ur1n0/rtvf-information-automation/internal/receiver/entity"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ListFilter selects stored messages. Zero fields do not filter.
type ListFilter struct {
	Query string
	Since time.Time
	Until time.Time

	Limit  int
	Offset int
}

// Matches reports whether msg passes every set field of f.
func (f ListFilter) Matches(msg entity.Message) bool {
	if !f.Since.IsZero() && msg.SentAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && msg.SentAt.After(f.Until) {
		return false
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(msg.Subject), q) && !strings.Contains(strings.ToLower(msg.BodyText), q) {
			return false
		}
	}

	return true
}

type ListResult struct {
	Messages []entity.Message
	Limit    int
	Offset   int
	Total    int
}

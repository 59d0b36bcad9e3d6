package entity

import "time"

// Message is one listserv post stored by the receiver.
type Message struct {
	ID                string
	ProviderMessageID string
	Source            string
	Listserv          string

	FromEmail string
	FromName  string
	ReplyTo   string

	Subject   string
	BodyText  string
	BodyHTML  string
	ThreadKey string

	SentAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

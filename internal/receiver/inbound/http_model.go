package inbound

import "github.com/m4ur1n0/rtvf-information-automation/internal/receiver/entity"

type WebhookResponse struct {
	OK         bool   `json:"ok"`
	Mode       string `json:"mode"`
	Inserted   int    `json:"inserted"`
	Deduped    int    `json:"deduped"`
	Failed     int    `json:"failed"`
	SkippedOld int    `json:"skippedOld"`
	Total      int    `json:"total"`
}

type WebhookError struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type Email struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	BodyText  string `json:"body_text"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	Listserv  string `json:"listserv"`
	ThreadKey string `json:"thread_key"`
	SentAt    int64  `json:"sent_at"`
}

type EmailsResponse struct {
	Emails []Email `json:"emails"`
	limit  int
	offset int
	total  int
}

func (r EmailsResponse) Meta() map[string]any {
	return map[string]any{
		"limit":  r.limit,
		"offset": r.offset,
		"total":  r.total,
	}
}

func toHTTPEmail(msg entity.Message) Email {
	return Email{
		ID:        msg.ID,
		Subject:   msg.Subject,
		BodyText:  msg.BodyText,
		FromEmail: msg.FromEmail,
		FromName:  msg.FromName,
		Listserv:  msg.Listserv,
		ThreadKey: msg.ThreadKey,
		SentAt:    msg.SentAt.Unix(),
	}
}

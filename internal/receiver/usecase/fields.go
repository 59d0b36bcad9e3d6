package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Field aliases, in lookup order. The first non-blank value wins.
var (
	aliasSubject   = []string{"subject", "Subject", "Title", "title"}
	aliasBodyText  = []string{"body_text", "body", "text", "Body", "content", "Description", "description"}
	aliasBodyHTML  = []string{"body_html", "html", "BodyHTML"}
	aliasFromEmail = []string{"from_email", "from", "From", "sender", "Creator", "creator"}
	aliasFromName  = []string{"from_name", "FromName", "sender_name"}
	aliasReplyTo   = []string{"reply_to", "ReplyTo"}
	aliasListserv  = []string{"listserv", "Listserv", "list", "list_id"}
	aliasSource    = []string{"source", "Source"}
	aliasMessageID = []string{"provider_message_id", "message_id", "Message-Id", "message-id", "Link", "link"}
	aliasSentAt    = []string{"sent_at", "SentAt", "date", "Date", "timestamp", "Timestamp"}
)

const (
	defaultSubject  = "(no subject)"
	defaultListserv = "csv-import"
	defaultSource   = "manual"

	maxBodyRunes = 8000
	idBodyPrefix = 256
)

type row map[string]string

func newRow(header, values []string) row {
	r := make(row, len(header))
	for i, name := range header {
		if i < len(values) {
			r[strings.TrimSpace(name)] = values[i]
		} else {
			r[strings.TrimSpace(name)] = ""
		}
	}
	return r
}

func (r row) pick(aliases []string) (string, bool) {
	for _, k := range aliases {
		if v, ok := r[k]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

func (r row) pickOr(aliases []string, fallback string) string {
	if v, ok := r.pick(aliases); ok {
		return v
	}
	return fallback
}

var sentAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseSentAt reads epoch seconds or one of the common date layouts. A
// blank or unreadable value means now.
func parseSentAt(v string, now time.Time) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return now
	}

	if isDigits(v) {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return time.Unix(sec, 0).UTC()
		}
		return now
	}

	for _, layout := range sentAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}

	return now
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reReplyPrefix = regexp.MustCompile(`(?i)^(re|fwd|fw)\s*:\s*`)
	reListTag     = regexp.MustCompile(`^\[[^\]]+\]\s*`)
	reBumpSuffix  = regexp.MustCompile(`(?i)\(\s*bump\s*\)\s*$`)
	reBumpWord    = regexp.MustCompile(`(?i)\bbump\b\s*$`)
)

func normalizeSubject(subject string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(subject, " "))
}

// threadKey reduces a subject to the part shared by replies, forwards and
// bumps of the same post.
func threadKey(subject string) string {
	s := strings.ToLower(normalizeSubject(subject))

	for {
		next := reReplyPrefix.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}

	s = reListTag.ReplaceAllString(s, "")
	s = reBumpSuffix.ReplaceAllString(s, "")
	s = reBumpWord.ReplaceAllString(s, "")

	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

var quoteMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\nOn .* wrote:\n`),
	regexp.MustCompile(`(?i)\n&gt;.*wrote:\n`),
	regexp.MustCompile(`(?i)\nFrom: .*?\nSent: .*?\nTo: .*?\nSubject: .*?\n`),
	regexp.MustCompile(`(?i)\n-----Original Message-----\n`),
	regexp.MustCompile(`\n_{2,}\n`),
	regexp.MustCompile(`\n-{3,}\n`),
	regexp.MustCompile(`\n> .*\n(> .*\n)+`),
	regexp.MustCompile(`\n&gt; .*\n(&gt; .*\n)+`),
}

// stripQuotedEmail keeps the new part of a reply: everything before the
// first quote marker, trimmed and capped at maxBodyRunes.
func stripQuotedEmail(text string) string {
	cut := len(text)
	for _, re := range quoteMarkers {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}

	return truncateRunes(strings.TrimSpace(text[:cut]), maxBodyRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// messageID derives the stable id of a message: the hash of the provider id
// when there is one, otherwise of its listserv, send time, thread and the
// start of its body.
func messageID(providerID, listserv string, sentAt time.Time, thread, body string) string {
	key := providerID
	if key == "" {
		key = listserv + "|" + strconv.FormatInt(sentAt.Unix(), 10) + "|" + thread + "|" + truncateRunes(body, idBodyPrefix)
	}

	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

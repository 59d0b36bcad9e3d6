package feed

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the text content of an html fragment: every text node with
// surrounding space trimmed, empty ones dropped, joined by a single space.
func Text(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var parts []string
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.StartTagToken:
			if isRawText(z) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 && isRawText(z) {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			if s := strings.TrimSpace(string(z.Text())); s != "" {
				parts = append(parts, s)
			}
		}
	}
}

func isRawText(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

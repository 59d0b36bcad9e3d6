package pkgrouter

import "strings"

// IsCSV reports whether a Content-Type header announces a csv upload.
// Raw octet streams are accepted too, as some clients send csv that way.
func IsCSV(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/csv") || strings.Contains(ct, "application/octet-stream")
}

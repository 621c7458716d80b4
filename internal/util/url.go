package util

import (
	"net/url"
	"strings"
)

// QueryParam is one key/value pair of an ordered query string.
type QueryParam struct {
	Key   string
	Value string
}

// BuildURL appends params to base in the given order, URL-encoding each
// value. Params with an empty value are skipped.
func BuildURL(base string, params ...QueryParam) string {
	var b strings.Builder
	b.WriteString(base)

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
		sep = "&"
	}
	return b.String()
}

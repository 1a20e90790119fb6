package helpers

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// TruncateRunes shortens s to at most n runes
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// ResolveURL resolves href against the page it was found on.
// Unparsable input is returned trimmed but otherwise untouched.
func ResolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

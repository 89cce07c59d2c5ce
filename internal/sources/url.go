package sources

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s is an absolute http or https URL with a host.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return parsed.Host != ""
}

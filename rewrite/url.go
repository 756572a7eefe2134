// Package rewrite implements the content-rewriting engine of the proxy:
// URL validation and resolution, the opaque resource-identifier codec,
// HTML and CSS rewriting, and the upstream fetcher.
package rewrite

import (
	"net/url"
	"strings"
)

// Pseudo-schemes that are never fetchable through the proxy.
var disallowedPrefixes = []string{"blob:", "data:", "javascript:", "mailto:", "tel:", "file:"}

// IsValid reports whether raw is safe and well-formed to proxy: an absolute
// http(s) URL with a host and without embedded credentials. Parse failures
// count as invalid.
func IsValid(raw string) bool {
	if raw == "" {
		return false
	}
	lower := strings.ToLower(raw)
	for _, p := range disallowedPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	if u.User != nil {
		return false
	}
	return true
}

// Resolve converts ref into an absolute URL against base. An empty ref
// resolves to the base itself; an unparseable base or ref yields "".
func Resolve(base, ref string) string {
	if ref == "" {
		return base
	}
	bu, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ru, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return bu.ResolveReference(ru).String()
}

// NormalizeTarget prepares user input for validation: bare hostnames get an
// https:// scheme. Input already carrying a scheme, including a disallowed
// one, is left for IsValid to judge.
func NormalizeTarget(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	for _, p := range disallowedPrefixes {
		if strings.HasPrefix(lower, p) {
			return s
		}
	}
	return "https://" + s
}

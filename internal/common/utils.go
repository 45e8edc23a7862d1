package common

import (
	"strings"
)

// NormalizeHostname lowercases a hostname, trims whitespace and trailing
// dots, and strips a wildcard marker. Returns false if the result is not a
// usable hostname under rootDomain.
func NormalizeHostname(name, rootDomain string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "*.")
	name = strings.TrimSuffix(name, ".")
	rootDomain = strings.ToLower(strings.TrimSpace(rootDomain))

	if name == "" || strings.ContainsAny(name, " /?#@") {
		return "", false
	}
	if name != rootDomain && !strings.HasSuffix(name, "."+rootDomain) {
		return "", false
	}
	return name, true
}

// SubdomainLabel returns the leftmost label of a hostname under rootDomain,
// or "" when the hostname is the root itself.
func SubdomainLabel(hostname, rootDomain string) string {
	rest := strings.TrimSuffix(hostname, rootDomain)
	rest = strings.TrimSuffix(rest, ".")
	if rest == "" {
		return ""
	}
	labels := strings.Split(rest, ".")
	return labels[0]
}

// Truncate shortens s to at most n runes. Extracted text fields are capped
// the same way the upstream page extractor capped them.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

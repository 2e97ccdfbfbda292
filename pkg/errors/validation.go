package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidatePrefix validates a bucket listing prefix such as "pub/ruby/".
//
// The rules are conservative:
//   - No empty prefixes
//   - Must end with "/" so it names a directory
//   - No leading "/"
//   - No control characters
//   - No path traversal sequences (.., //)
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidConfig, "prefix cannot be empty")
	}
	if !strings.HasSuffix(prefix, "/") {
		return New(ErrCodeInvalidConfig, "prefix %q must end with /", prefix)
	}
	if strings.HasPrefix(prefix, "/") {
		return New(ErrCodeInvalidConfig, "prefix %q must be relative", prefix)
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "prefix contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(prefix, pattern) {
			return New(ErrCodeInvalidConfig, "prefix contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateBaseURL validates the listing endpoint URL.
// Only absolute http and https URLs without query strings are accepted.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "base URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid base URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidConfig, "base URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "base URL %q has no host", raw)
	}
	if u.RawQuery != "" {
		return New(ErrCodeInvalidConfig, "base URL %q must not carry a query", raw)
	}
	return nil
}

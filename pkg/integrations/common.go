package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single HTTP request, connect to last byte.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested listing doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body cannot be decoded.
	ErrDecode = errors.New("decode error")
)

// NewHTTPClient creates an HTTP client with the given request timeout.
// A timeout of zero or less means [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

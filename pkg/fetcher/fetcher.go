// Package fetcher issues single HTTP GETs with a per-request timeout and
// classifies failures as transient (worth one retry) or definitive.
package fetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"leadharvest/pkg/caching"
)

// userAgent mirrors a mainstream browser; many rental sites reject the Go
// default agent outright.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Error is a classified fetch failure. Transient errors (timeouts,
// connection resets, 5xx, 429) may be retried once; definitive errors (DNS,
// TLS, other 4xx) must not be.
type Error struct {
	Reason     string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch failed: %s (status %d)", e.Reason, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch failed: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransient reports whether err is a fetch error worth one retry.
func IsTransient(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Transient
}

// Reason returns the failure reason tag for err, or "error" for unclassified
// errors.
func Reason(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return "error"
}

type Fetcher struct {
	client *http.Client
	cache  *caching.Cache
}

// NewFetcher builds a fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// WithCache attaches a raw-HTML cache. Cached payloads bypass the network.
func (f *Fetcher) WithCache(c *caching.Cache) *Fetcher {
	f.cache = c
	return f
}

// Get fetches rawURL and returns the body and HTTP status. A non-nil error
// is always a *Error carrying the failure classification.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, int, error) {
	if body, hit := f.cache.Get(rawURL); hit {
		return body, http.StatusOK, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, &Error{Reason: "bad_url", Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if fe := classifyStatus(resp.StatusCode); fe != nil {
		return nil, resp.StatusCode, fe
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, &Error{Reason: "read_error", StatusCode: resp.StatusCode, Transient: true, Err: err}
	}

	if f.cache != nil {
		// Cache write failures are not fetch failures.
		_ = f.cache.Set(rawURL, body)
	}
	return body, resp.StatusCode, nil
}

func classifyStatus(status int) *Error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusTooManyRequests:
		return &Error{Reason: "http_429", StatusCode: status, Transient: true}
	case status >= 500:
		return &Error{Reason: fmt.Sprintf("http_%d", status), StatusCode: status, Transient: true}
	default:
		return &Error{Reason: fmt.Sprintf("http_%d", status), StatusCode: status}
	}
}

func classifyTransportError(err error) *Error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Reason: "dns_error", Err: err}
	}

	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &recordErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &hostnameErr) {
		return &Error{Reason: "tls_error", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Reason: "timeout", Transient: true, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Reason: "timeout", Transient: true, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Reason: "cancelled", Err: err}
	}

	// Connection refused/reset and friends.
	return &Error{Reason: "connection_error", Transient: true, Err: err}
}

// Package httpclient provides shared HTTP client defaults for calls to
// external providers.
package httpclient

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a whole request/response exchange.
	DefaultTimeout = 30 * time.Second
	// connectTimeout bounds connection establishment.
	connectTimeout = 5 * time.Second
)

// New returns an HTTP client with bounded connect and overall timeouts.
// A zero timeout selects DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: connectTimeout,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// HTTPError records what a provider answered when a call came back with an
// unexpected status, keeping the code and URL available to callers that wrap
// it into the service error taxonomy.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// NewHTTPError builds an HTTPError for a failed provider call.
func NewHTTPError(statusCode int, url, message string) error {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Message:    message,
	}
}

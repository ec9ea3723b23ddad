// Package httputil provides shared HTTP client plumbing for the upstream
// API clients.
package httputil

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// NewClient returns an HTTP client with a tuned transport and an overall
// per-request timeout.
func NewClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &http.Client{Timeout: timeout, Transport: tr}
}

// UpstreamError reports a failed call to an upstream API, either a transport
// failure (Err set) or an unexpected HTTP status (Status set).
type UpstreamError struct {
	API      string
	Endpoint string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s API request to %s failed: %v", e.API, e.Endpoint, e.Err)
	}

	return fmt.Sprintf("%s API returned status %d for %s", e.API, e.Status, e.Endpoint)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

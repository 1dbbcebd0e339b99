package main

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// loggingTransport logs outgoing API calls made for imports and insights.
type loggingTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := t.logger.With("method", req.Method, "host", req.URL.Host, "path", req.URL.Path)
	logger.Debug("api request")

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Error("api request failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warn("api request rejected", "status", resp.Status, "duration", time.Since(start))
	} else {
		logger.Debug("api response", "status", resp.Status, "duration", time.Since(start))
	}

	return resp, nil
}

// newLoggingTransport wraps next, or http.DefaultTransport when next is nil.
func newLoggingTransport(next http.RoundTripper, logger *log.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

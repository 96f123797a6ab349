package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultRetryCount     = 2
	defaultRetryWait      = 200 * time.Millisecond
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. Requests time out after
// timeout (15s when not positive) and transport errors are retried twice.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second)
//	resp, err := client.R().Get("/api/health")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &HTTPClient{Client: resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryWait),
	}
}

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every console request.
const UserAgent = "commerce-console"

// HTTPClient is a wrapper around resty.Client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client rooted at baseURL with the
// given timeout, JSON content negotiation and the console user agent.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}

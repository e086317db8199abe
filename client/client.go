package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ThrottledHttpClient serializes requests against an external site and keeps
// them under a fixed request rate. The lodestone has no published API and no
// rate limit headers, so the budget is ours to enforce.
type ThrottledHttpClient struct {
	mu                sync.Mutex
	requestTimestamps []time.Time
	baseURL           *url.URL
	maxRequestsPerSec float64
	userAgent         string
	client            *http.Client
}

func NewThrottledHttpClient(baseURL *url.URL, userAgent string, maxRequestsPerSec float64) *ThrottledHttpClient {
	return &ThrottledHttpClient{
		requestTimestamps: make([]time.Time, 0),
		baseURL:           baseURL,
		maxRequestsPerSec: maxRequestsPerSec,
		userAgent:         userAgent,
		client:            &http.Client{Timeout: 30 * time.Second},
	}
}

type RequestArgs struct {
	Endpoint    string
	PathParams  []string
	QueryParams map[string]string
	Headers     map[string]string
}

func (c *ThrottledHttpClient) SendRequest(ctx context.Context, requestArgs RequestArgs) (*http.Response, error) {
	if err := c.waitUntilRequestAllowed(ctx); err != nil {
		return nil, err
	}

	pathParams := make([]any, len(requestArgs.PathParams))
	for i, v := range requestArgs.PathParams {
		pathParams[i] = v
	}
	requestUrl := c.baseURL.ResolveReference(&url.URL{Path: c.baseURL.Path + fmt.Sprintf(requestArgs.Endpoint, pathParams...)})
	if requestArgs.QueryParams != nil {
		query := requestUrl.Query()
		for k, v := range requestArgs.QueryParams {
			query.Add(k, v)
		}
		requestUrl.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", requestUrl.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range requestArgs.Headers {
		req.Header.Set(k, v)
	}

	return c.client.Do(req)
}

func (c *ThrottledHttpClient) waitUntilRequestAllowed(ctx context.Context) error {
	for {
		c.mu.Lock()
		if !c.isRateLimited() {
			c.requestTimestamps = append(c.requestTimestamps, time.Now())
			c.pruneTimestamps()
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (c *ThrottledHttpClient) isRateLimited() bool {
	start := time.Now().Add(-time.Second / time.Duration(c.maxRequestsPerSec))
	recent := 0
	for _, t := range c.requestTimestamps {
		if t.After(start) {
			recent++
		}
	}
	return recent >= 1
}

func (c *ThrottledHttpClient) pruneTimestamps() {
	cutoff := time.Now().Add(-time.Minute)
	kept := c.requestTimestamps[:0]
	for _, t := range c.requestTimestamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	c.requestTimestamps = kept
}

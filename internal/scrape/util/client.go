package util

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewHTTPClient returns the client connectors share.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// Get performs a rate-limited GET with browser-like headers. Callers own the
// response body.
func Get(ctx context.Context, hc *http.Client, lim *HostLimiter, rawURL string, extra map[string]string) (*http.Response, error) {
	if err := lim.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", rawURL, res.StatusCode)
	}
	return res, nil
}

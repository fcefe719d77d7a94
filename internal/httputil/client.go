// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the API clients.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NewClient returns an HTTP client with the given request timeout. A zero
// or negative timeout falls back to 15 s: a hung upstream must not hang
// the caller indefinitely.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// GetJSON issues a GET for reqURL with the given User-Agent and decodes
// the JSON response body into v. A non-2xx status is an error; the body
// is not inspected further. There is no retry: a failed call surfaces to
// the caller immediately.
func GetJSON(ctx context.Context, client *http.Client, reqURL, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

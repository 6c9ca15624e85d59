// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the upstream clients.
// Every outbound call goes through here so that one timeout policy and one
// error mapping apply to all three registries. No call is ever retried; a
// failure either degrades at the item boundary or propagates once.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/medbridge/pkg/types"
)

// Get issues a GET with the given headers and returns the response body.
// Errors are mapped onto the shared taxonomy:
//
//	deadline exceeded        → ErrUpstreamTimeout
//	other transport failure  → ErrUpstreamUnavailable
//	HTTP 404                 → ErrNotFound
//	other non-2xx            → ErrUpstreamUnavailable
func Get(ctx context.Context, client *http.Client, url, userAgent string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", types.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: reading body: %v", types.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: reading body: %v", types.ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: HTTP 404", types.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: HTTP %d", types.ErrUpstreamUnavailable, resp.StatusCode)
	}

	return body, nil
}

// GetJSON issues a GET and decodes the JSON response body into v. A body
// that cannot be decoded at the top level maps to ErrMalformedPayload;
// missing fields inside a decodable payload are left to the callers'
// defaults.
func GetJSON(ctx context.Context, client *http.Client, url, userAgent string, header http.Header, v any) error {
	body, err := Get(ctx, client, url, userAgent, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrMalformedPayload, err)
	}
	return nil
}

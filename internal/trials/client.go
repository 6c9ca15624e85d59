// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trials queries the clinical-trial registry and normalizes its
// deeply nested study records into canonical trials.
package trials

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/internal/httputil"
	"github.com/pdiddy/medbridge/pkg/types"
)

// Registry endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	registryAPIBase = "https://clinicaltrials.gov/api/v2/studies"
	studyBase       = "https://clinicaltrials.gov/study/"
)

// nctIDPattern matches registry study identifiers: "NCT" followed by
// digits, case-insensitively ("nct999" is accepted).
var nctIDPattern = regexp.MustCompile(`(?i)^NCT\d+$`)

// IsNCTID reports whether s has the shape of a registry study identifier.
func IsNCTID(s string) bool {
	return nctIDPattern.MatchString(s)
}

// Client queries the trial registry.
type Client struct {
	http *http.Client
	log  *zap.Logger
	cfg  types.TrialsConfig
}

// NewClient returns a registry client using the shared outbound HTTP
// client.
func NewClient(httpClient *http.Client, log *zap.Logger, cfg types.TrialsConfig) *Client {
	return &Client{http: httpClient, log: log, cfg: cfg}
}

type studiesResponse struct {
	Studies []RawStudy `json:"studies"`
}

type studyResponse = RawStudy

// Search issues one registry query for the condition, optionally filtered
// by location, and normalizes each hit independently. A record that fails
// normalization is logged and skipped; it never aborts the batch. Output
// order matches upstream order.
func (c *Client) Search(ctx context.Context, condition, location string, maxResults int) ([]types.Trial, error) {
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"query.cond": {condition},
		"pageSize":   {fmt.Sprintf("%d", maxResults)},
	}
	if location != "" {
		params.Set("query.locn", location)
	}

	var resp studiesResponse
	reqURL := registryAPIBase + "?" + params.Encode()
	if err := httputil.GetJSON(ctx, c.http, reqURL, c.cfg.UserAgent, nil, &resp); err != nil {
		return nil, fmt.Errorf("trial registry search: %w", err)
	}

	trials := make([]types.Trial, 0, len(resp.Studies))
	for i, study := range resp.Studies {
		trial, err := Normalize(study)
		if err != nil {
			c.log.Warn("skipping unnormalizable study record",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		trials = append(trials, trial)
	}
	return trials, nil
}

// Get fetches a single study by NCT id. The shape check runs before any
// network call; an upstream 404 maps to ErrNotFound.
func (c *Client) Get(ctx context.Context, nctID string) (types.Trial, error) {
	if !IsNCTID(nctID) {
		return types.Trial{}, fmt.Errorf("%w: %q is not an NCT id", types.ErrInvalidIdentifier, nctID)
	}

	var resp studyResponse
	reqURL := registryAPIBase + "/" + url.PathEscape(nctID)
	if err := httputil.GetJSON(ctx, c.http, reqURL, c.cfg.UserAgent, nil, &resp); err != nil {
		return types.Trial{}, fmt.Errorf("trial registry fetch %s: %w", nctID, err)
	}

	trial, err := Normalize(resp)
	if err != nil {
		return types.Trial{}, fmt.Errorf("%w: %v", types.ErrMalformedPayload, err)
	}
	return trial, nil
}

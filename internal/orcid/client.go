// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orcid resolves researcher identities against the public
// identity registry. Searches yield stub-level profiles cheaply; when
// detail fetching is enabled each hit is expanded concurrently, and a
// failed expansion degrades that one hit back to its stub instead of
// failing the batch.
package orcid

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/internal/httputil"
	"github.com/pdiddy/medbridge/internal/parallel"
	"github.com/pdiddy/medbridge/pkg/types"
)

// orcidAPIBase is the public registry endpoint. Declared as a var so
// tests can substitute an httptest server.
var orcidAPIBase = "https://pub.orcid.org/v3.0"

// Client queries the identity registry.
type Client struct {
	http *http.Client
	log  *zap.Logger
	cfg  types.ResearchersConfig
}

// NewClient returns a registry client using the shared outbound HTTP
// client.
func NewClient(httpClient *http.Client, log *zap.Logger, cfg types.ResearchersConfig) *Client {
	return &Client{http: httpClient, log: log, cfg: cfg}
}

func jsonHeader() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	return h
}

type searchResponse struct {
	Result []identityStub `json:"result"`
}

// Search returns up to maxResults profiles for the query. With
// fetchDetails false every profile is stub-derived. With fetchDetails
// true one full-record fetch fans out per hit; a hit whose fetch fails is
// logged and kept at stub level, so the result always holds one entry per
// stub, in stub order.
func (c *Client) Search(ctx context.Context, query string, maxResults int, fetchDetails bool) ([]types.ResearcherProfile, error) {
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"q":    {query},
		"rows": {fmt.Sprintf("%d", maxResults)},
	}

	var resp searchResponse
	reqURL := orcidAPIBase + "/search/?" + params.Encode()
	if err := httputil.GetJSON(ctx, c.http, reqURL, c.cfg.UserAgent, jsonHeader(), &resp); err != nil {
		return nil, fmt.Errorf("identity search: %w", err)
	}

	if !fetchDetails {
		profiles := make([]types.ResearcherProfile, len(resp.Result))
		for i, stub := range resp.Result {
			profiles[i] = normalizeStub(stub)
		}
		return profiles, nil
	}

	outcomes := parallel.Map(ctx, resp.Result, func(ctx context.Context, stub identityStub) (types.ResearcherProfile, error) {
		return c.GetProfile(ctx, stub.OrcidIdentifier.Path)
	})

	profiles := make([]types.ResearcherProfile, len(resp.Result))
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			c.log.Warn("detail fetch failed, keeping stub-level profile",
				zap.String("orcid", resp.Result[i].OrcidIdentifier.Path),
				zap.Error(outcome.Err))
			profiles[i] = normalizeStub(resp.Result[i])
			continue
		}
		profiles[i] = outcome.Value
	}
	return profiles, nil
}

// GetProfile fetches and normalizes one full identity record. An
// upstream 404 maps to ErrNotFound and an exceeded deadline to
// ErrUpstreamTimeout.
func (c *Client) GetProfile(ctx context.Context, orcid string) (types.ResearcherProfile, error) {
	var rec record
	reqURL := orcidAPIBase + "/" + url.PathEscape(orcid) + "/record"
	if err := httputil.GetJSON(ctx, c.http, reqURL, c.cfg.UserAgent, jsonHeader(), &rec); err != nil {
		return types.ResearcherProfile{}, fmt.Errorf("identity record %s: %w", orcid, err)
	}

	profile := normalizeRecord(rec)
	if profile.ORCID == "" {
		profile.ORCID = orcid
	}
	return profile, nil
}

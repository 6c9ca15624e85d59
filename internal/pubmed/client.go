// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities literature engine through a
// three-stage pipeline: id search, bulk summary fetch, and bulk abstract
// extraction. Summaries and abstracts both depend only on the id list and
// are fetched concurrently, then merged by id.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/internal/httputil"
	"github.com/pdiddy/medbridge/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	esearchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	esummaryBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
	efetchBase   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const recordBase = "https://pubmed.ncbi.nlm.nih.gov/"

// minPMIDLength is the digit count below which an all-numeric string is
// assumed to be an internal database id rather than a PMID.
const minPMIDLength = 7

// IsPMID reports whether s looks like an engine record identifier:
// all digits, at least seven of them. This is a heuristic and can
// misclassify long numeric internal ids; removing the ambiguity needs an
// explicit namespace prefix, which the stored data does not carry.
func IsPMID(s string) bool {
	if len(s) < minPMIDLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Client queries the literature engine.
type Client struct {
	http *http.Client
	log  *zap.Logger
	cfg  types.PublicationsConfig
}

// NewClient returns an engine client using the shared outbound HTTP
// client.
func NewClient(httpClient *http.Client, log *zap.Logger, cfg types.PublicationsConfig) *Client {
	return &Client{http: httpClient, log: log, cfg: cfg}
}

// baseParams returns the common query parameters, including the optional
// api key and contact email.
func (c *Client) baseParams() url.Values {
	params := url.Values{"db": {"pubmed"}}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	return params
}

type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	IDList []string `json:"idlist"`
}

// searchIDs runs the id-search stage and returns the relevance-ordered id
// list.
func (c *Client) searchIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", maxResults))
	params.Set("sort", "relevance")

	var resp esearchResponse
	if err := httputil.GetJSON(ctx, c.http, esearchBase+"?"+params.Encode(), c.cfg.UserAgent, nil, &resp); err != nil {
		return nil, fmt.Errorf("id search: %w", err)
	}
	return resp.Result.IDList, nil
}

// esummaryResponse keys each summary by its id inside "result"; the
// "uids" entry is skipped during decoding.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type docSummary struct {
	Title           string          `json:"title"`
	Authors         []summaryAuthor `json:"authors"`
	PubDate         string          `json:"pubdate"`
	FullJournalName string          `json:"fulljournalname"`
	Source          string          `json:"source"`
	ELocationID     string          `json:"elocationid"`
}

type summaryAuthor struct {
	Name string `json:"name"`
}

// fetchSummaries runs the bulk summary stage for all ids in one call.
func (c *Client) fetchSummaries(ctx context.Context, ids []string) (map[string]docSummary, error) {
	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	var resp esummaryResponse
	if err := httputil.GetJSON(ctx, c.http, esummaryBase+"?"+params.Encode(), c.cfg.UserAgent, nil, &resp); err != nil {
		return nil, fmt.Errorf("summary fetch: %w", err)
	}

	summaries := make(map[string]docSummary, len(ids))
	for id, raw := range resp.Result {
		if id == "uids" {
			continue
		}
		var s docSummary
		if err := json.Unmarshal(raw, &s); err != nil {
			c.log.Warn("skipping undecodable summary entry", zap.String("pmid", id), zap.Error(err))
			continue
		}
		summaries[id] = s
	}
	return summaries, nil
}

// fetchAbstracts runs the bulk abstract stage for all ids in one call and
// extracts per-record text from the markup document.
func (c *Client) fetchAbstracts(ctx context.Context, ids []string) (map[string]string, error) {
	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("rettype", "abstract")
	params.Set("retmode", "xml")

	body, err := httputil.Get(ctx, c.http, efetchBase+"?"+params.Encode(), c.cfg.UserAgent, nil)
	if err != nil {
		return nil, fmt.Errorf("abstract fetch: %w", err)
	}
	return parseAbstracts(string(body)), nil
}

// Search runs the full pipeline. An empty id search short-circuits to an
// empty result without invoking the later stages. Records without a title
// are dropped; relevance scores derive from id-list position, so the top
// hit scores 1.0 and scores strictly decrease with rank.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	ids, err := c.searchIDs(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.Publication{}, nil
	}

	// Summaries and abstracts depend only on the id list; fetch both at
	// once and join after both settle.
	var (
		wg          sync.WaitGroup
		summaries   map[string]docSummary
		abstracts   map[string]string
		summaryErr  error
		abstractErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		summaries, summaryErr = c.fetchSummaries(ctx, ids)
	}()
	go func() {
		defer wg.Done()
		abstracts, abstractErr = c.fetchAbstracts(ctx, ids)
	}()
	wg.Wait()

	if summaryErr != nil {
		return nil, summaryErr
	}
	if abstractErr != nil {
		return nil, abstractErr
	}

	total := len(ids)
	results := make([]types.Publication, 0, total)
	for i, id := range ids {
		summary, ok := summaries[id]
		if !ok || strings.TrimSpace(summary.Title) == "" {
			continue
		}

		abstract, ok := abstracts[id]
		if !ok || abstract == "" {
			abstract = types.NoAbstract
		}

		results = append(results, types.Publication{
			PMID:           id,
			Title:          summary.Title,
			Authors:        formatAuthors(summary.Authors),
			Journal:        journalOf(summary),
			PubDate:        summary.PubDate,
			Abstract:       abstract,
			DOI:            doiOf(summary.ELocationID),
			URL:            recordBase + id + "/",
			RelevanceScore: 1.0 - float64(i)/float64(total),
		})
	}
	return results, nil
}

// GetByPMID fetches a single record through an id-scoped search. The
// shape check runs before any network call; an empty result maps to
// ErrNotFound.
func (c *Client) GetByPMID(ctx context.Context, pmid string) (types.Publication, error) {
	if !IsPMID(pmid) {
		return types.Publication{}, fmt.Errorf("%w: %q is not a PMID", types.ErrInvalidIdentifier, pmid)
	}

	results, err := c.Search(ctx, pmid+"[uid]", 1)
	if err != nil {
		return types.Publication{}, err
	}
	if len(results) == 0 {
		return types.Publication{}, fmt.Errorf("%w: PMID %s", types.ErrNotFound, pmid)
	}
	return results[0], nil
}

// formatAuthors joins the first three author names with ", " and appends
// " et al." when more exist.
func formatAuthors(authors []summaryAuthor) string {
	names := make([]string, 0, 3)
	for _, a := range authors {
		if a.Name == "" {
			continue
		}
		if len(names) == 3 {
			return strings.Join(names, ", ") + " et al."
		}
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// journalOf prefers the full journal name over the short source name.
func journalOf(s docSummary) string {
	if s.FullJournalName != "" {
		return s.FullJournalName
	}
	return s.Source
}

// doiOf extracts a bare DOI from the elocationid field, which upstream
// reports as "doi: 10.xxxx/yyyy".
func doiOf(elocation string) string {
	e := strings.TrimSpace(elocation)
	if e == "" {
		return ""
	}
	e = strings.TrimPrefix(e, "doi:")
	e = strings.TrimSpace(e)
	if strings.HasPrefix(e, "10.") {
		return e
	}
	return ""
}

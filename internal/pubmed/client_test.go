// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/medbridge/pkg/types"
)

func TestIsPMID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"1234567", true},
		{"38012345", true},
		{"123456", false}, // too short
		{"NCT1234567", false},
		{"12345a7", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPMID(tt.id); got != tt.want {
			t.Errorf("IsPMID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"A", "B", "C", "D"}, "A, B, C et al."},
		{[]string{"A", "B", "C"}, "A, B, C"},
		{[]string{"A", "B"}, "A, B"},
		{nil, ""},
	}
	for _, tt := range tests {
		authors := make([]summaryAuthor, len(tt.names))
		for i, n := range tt.names {
			authors[i] = summaryAuthor{Name: n}
		}
		if got := formatAuthors(authors); got != tt.want {
			t.Errorf("formatAuthors(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

// pipelineServer serves all three endpoints and counts calls per stage.
type pipelineServer struct {
	ts            *httptest.Server
	searchCalls   atomic.Int32
	summaryCalls  atomic.Int32
	abstractCalls atomic.Int32
}

func newPipelineServer(t *testing.T, ids []string, summaryJSON, abstractXML string) *pipelineServer {
	t.Helper()
	ps := &pipelineServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, _ *http.Request) {
		ps.searchCalls.Add(1)
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = fmt.Sprintf("%q", id)
		}
		fmt.Fprintf(w, `{"esearchresult": {"idlist": [%s]}}`, strings.Join(quoted, ","))
	})
	mux.HandleFunc("/esummary.fcgi", func(w http.ResponseWriter, _ *http.Request) {
		ps.summaryCalls.Add(1)
		w.Write([]byte(summaryJSON))
	})
	mux.HandleFunc("/efetch.fcgi", func(w http.ResponseWriter, _ *http.Request) {
		ps.abstractCalls.Add(1)
		w.Write([]byte(abstractXML))
	})
	ps.ts = httptest.NewServer(mux)
	esearchBase = ps.ts.URL + "/esearch.fcgi"
	esummaryBase = ps.ts.URL + "/esummary.fcgi"
	efetchBase = ps.ts.URL + "/efetch.fcgi"
	return ps
}

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(ts.Client(), zap.NewNop(), types.PublicationsConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		MaxResults: 10,
	})
}

func summaryEntry(id, title string, authors ...string) string {
	quoted := make([]string, len(authors))
	for i, a := range authors {
		quoted[i] = fmt.Sprintf(`{"name": %q}`, a)
	}
	return fmt.Sprintf(`%q: {"title": %q, "authors": [%s], "pubdate": "2024 Jan", "fulljournalname": "Test Journal", "elocationid": "doi: 10.1000/t%s"}`,
		id, title, strings.Join(quoted, ","), id)
}

func articleBlock(id, abstract string) string {
	if abstract == "" {
		return fmt.Sprintf("<PubmedArticle><PMID>%s</PMID></PubmedArticle>", id)
	}
	return fmt.Sprintf("<PubmedArticle><PMID>%s</PMID><AbstractText>%s</AbstractText></PubmedArticle>", id, abstract)
}

func TestSearchEmptyShortCircuits(t *testing.T) {
	ps := newPipelineServer(t, nil, "{}", "")
	defer ps.ts.Close()

	got, err := newTestClient(ps.ts).Search(context.Background(), "no hits", 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(results) = %d, want 0", len(got))
	}
	if n := ps.summaryCalls.Load(); n != 0 {
		t.Errorf("summary stage called %d times on empty id list", n)
	}
	if n := ps.abstractCalls.Load(); n != 0 {
		t.Errorf("abstract stage called %d times on empty id list", n)
	}
}

func TestSearchScoresAndMerge(t *testing.T) {
	ids := []string{"10000001", "10000002", "10000003", "10000004"}
	summaryJSON := fmt.Sprintf(`{"result": {"uids": ["10000001","10000002","10000003","10000004"], %s, %s, %s, %s}}`,
		summaryEntry("10000001", "First", "Ada Lovelace", "Grace Hopper"),
		summaryEntry("10000002", "Second", "A", "B", "C", "D"),
		summaryEntry("10000003", "Third"),
		summaryEntry("10000004", "Fourth"),
	)
	abstractXML := articleBlock("10000001", "An abstract.") +
		articleBlock("10000002", "") +
		articleBlock("10000003", "Another.") +
		articleBlock("10000004", "")
	ps := newPipelineServer(t, ids, summaryJSON, abstractXML)
	defer ps.ts.Close()

	got, err := newTestClient(ps.ts).Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(got))
	}

	wantScores := []float64{1.0, 0.75, 0.5, 0.25}
	for i, want := range wantScores {
		if math.Abs(got[i].RelevanceScore-want) > 1e-9 {
			t.Errorf("score[%d] = %f, want %f", i, got[i].RelevanceScore, want)
		}
	}

	if got[0].Authors != "Ada Lovelace, Grace Hopper" {
		t.Errorf("Authors[0] = %q", got[0].Authors)
	}
	if got[1].Authors != "A, B, C et al." {
		t.Errorf("Authors[1] = %q", got[1].Authors)
	}
	if got[0].Abstract != "An abstract." {
		t.Errorf("Abstract[0] = %q", got[0].Abstract)
	}
	if got[1].Abstract != types.NoAbstract {
		t.Errorf("Abstract[1] = %q, want sentinel", got[1].Abstract)
	}
	if got[0].DOI != "10.1000/t10000001" {
		t.Errorf("DOI[0] = %q", got[0].DOI)
	}
	if got[0].URL != "https://pubmed.ncbi.nlm.nih.gov/10000001/" {
		t.Errorf("URL[0] = %q", got[0].URL)
	}

	// Each bulk stage runs exactly once.
	if n := ps.summaryCalls.Load(); n != 1 {
		t.Errorf("summary stage called %d times, want 1", n)
	}
	if n := ps.abstractCalls.Load(); n != 1 {
		t.Errorf("abstract stage called %d times, want 1", n)
	}
}

func TestSearchDropsUntitled(t *testing.T) {
	ids := []string{"10000001", "10000002"}
	summaryJSON := fmt.Sprintf(`{"result": {%s, %s}}`,
		summaryEntry("10000001", ""),
		summaryEntry("10000002", "Keeps title"),
	)
	ps := newPipelineServer(t, ids, summaryJSON, "")
	defer ps.ts.Close()

	got, err := newTestClient(ps.ts).Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(got))
	}
	if got[0].PMID != "10000002" {
		t.Errorf("PMID = %q", got[0].PMID)
	}
	// The survivor keeps its id-list-position score.
	if math.Abs(got[0].RelevanceScore-0.5) > 1e-9 {
		t.Errorf("score = %f, want 0.5", got[0].RelevanceScore)
	}
}

func TestGetByPMID(t *testing.T) {
	ids := []string{"12345678"}
	summaryJSON := fmt.Sprintf(`{"result": {%s}}`, summaryEntry("12345678", "Single"))
	ps := newPipelineServer(t, ids, summaryJSON, articleBlock("12345678", "Text."))
	defer ps.ts.Close()

	pub, err := newTestClient(ps.ts).GetByPMID(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("GetByPMID() error: %v", err)
	}
	if pub.Title != "Single" {
		t.Errorf("Title = %q", pub.Title)
	}
	if pub.RelevanceScore != 1.0 {
		t.Errorf("RelevanceScore = %f, want 1.0", pub.RelevanceScore)
	}
}

func TestGetByPMIDNotFound(t *testing.T) {
	ps := newPipelineServer(t, nil, "{}", "")
	defer ps.ts.Close()

	_, err := newTestClient(ps.ts).GetByPMID(context.Background(), "99999999")
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("GetByPMID() error = %v, want ErrNotFound", err)
	}
}

func TestGetByPMIDRejectsBadShape(t *testing.T) {
	ps := newPipelineServer(t, nil, "{}", "")
	defer ps.ts.Close()

	_, err := newTestClient(ps.ts).GetByPMID(context.Background(), "123")
	if !errors.Is(err, types.ErrInvalidIdentifier) {
		t.Fatalf("GetByPMID() error = %v, want ErrInvalidIdentifier", err)
	}
	if n := ps.searchCalls.Load(); n != 0 {
		t.Errorf("upstream called %d times for an invalid id", n)
	}
}

func TestSearchSummaryFailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"esearchresult": {"idlist": ["10000001"]}}`))
	})
	mux.HandleFunc("/esummary.fcgi", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/efetch.fcgi", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(articleBlock("10000001", "Text.")))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	esearchBase = ts.URL + "/esearch.fcgi"
	esummaryBase = ts.URL + "/esummary.fcgi"
	efetchBase = ts.URL + "/efetch.fcgi"

	_, err := newTestClient(ts).Search(context.Background(), "anything", 10)
	if !errors.Is(err, types.ErrUpstreamUnavailable) {
		t.Errorf("Search() error = %v, want ErrUpstreamUnavailable", err)
	}
}
